package advice_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/braincap/internal/domain/advice"
	"github.com/okian/braincap/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuiltin(t *testing.T) {
	Convey("Given the embedded rule table", t, func() {
		tbl, err := advice.Builtin()

		Convey("Then it should parse and validate", func() {
			So(err, ShouldBeNil)
			So(tbl.Rules, ShouldHaveLength, 9)
			So(tbl.DefaultLanguage, ShouldEqual, model.LanguageJapanese)
			So(tbl.Languages(), ShouldResemble, []model.Language{model.LanguageJapanese, model.LanguageEnglish})
		})

		Convey("Then every rule should carry both text sets", func() {
			for _, r := range tbl.Rules {
				So(r.Text[model.LanguageJapanese].Title, ShouldNotBeEmpty)
				So(r.Text[model.LanguageEnglish].Title, ShouldNotBeEmpty)
				So(r.Text[model.LanguageEnglish].Actions, ShouldHaveLength, 3)
			}
		})

		Convey("Then repeated calls should share one parse", func() {
			again, _ := advice.Builtin()
			So(again, ShouldPointTo, tbl)
		})
	})
}

func TestParseTable_Invalid(t *testing.T) {
	Convey("Given rule documents that break the table rules", t, func() {
		cases := []struct{ name, doc string }{
			{"gap", strings.Replace(minimalTable, "score_min: 0\n    score_max: 100\n    severity: low",
				"score_min: 10\n    score_max: 100\n    severity: low", 1)},
			{"short", strings.Replace(minimalTable, "score_max: 100\n    severity: high",
				"score_max: 90\n    severity: high", 1)},
			{"severity", strings.Replace(minimalTable, "severity: medium", "severity: urgent", 1)},
			{"pillar", strings.Replace(minimalTable, "pillar: skills", "pillar: focus", 1)},
			{"range", strings.Replace(minimalTable, "score_max: 100\n    severity: medium", "score_max: 120\n    severity: medium", 1)},
			{"text", strings.Replace(minimalTable, "ja: {title: 技能}", "en: {title: Skills}", 1)},
			{"bands", strings.Replace(minimalTable, "min: 0, color", "min: 10, color", 1)},
		}
		for _, c := range cases {
			_, err := advice.ParseTable([]byte(c.doc))
			Convey("When the document has a bad "+c.name, func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, advice.ErrInvalidTable), ShouldBeTrue)
			})
		}

		Convey("When the document is not YAML", func() {
			_, err := advice.ParseTable([]byte("rules: ["))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseTable_Overlap(t *testing.T) {
	Convey("Given rules that overlap on their boundaries", t, func() {
		_, err := advice.ParseTable([]byte(strings.Replace(minimalTable,
			"  - pillar: health\n", "  - pillar: drivers\n    score_min: 40\n    score_max: 65\n    severity: medium\n    text: {ja: {title: 中}}\n  - pillar: health\n", 1)))

		Convey("Then the table should still be accepted", func() {
			So(err, ShouldBeNil)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a rule file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		So(os.WriteFile(path, []byte(minimalTable), 0o600), ShouldBeNil)

		tbl, err := advice.LoadFile(path)
		So(err, ShouldBeNil)
		So(tbl.Rules, ShouldHaveLength, 3)

		Convey("When the file does not exist", func() {
			_, err := advice.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
