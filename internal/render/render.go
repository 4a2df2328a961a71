// Package render produces Markdown output from assessment reports.
package render

import (
	"fmt"
	"strings"

	service "github.com/okian/braincap/internal/app"
	"github.com/okian/braincap/internal/domain/advice"
	"github.com/okian/braincap/internal/domain/model"
)

type labels struct {
	title, date, latest, tests, benchmark string
	advice, actions, total, score, none   string
	disclaimer                            string
	pillars                               map[model.Pillar]string
}

var text = map[model.Language]labels{
	model.LanguageJapanese: {
		title:     "Personal Brain Capital Monitor (PBCM)",
		date:      "レポート生成日",
		latest:    "最新スコア",
		tests:     "認知テスト",
		benchmark: "同年代の平均",
		advice:    "改善提案",
		actions:   "アクション",
		total:     "総合 Brain Capital Score",
		score:     "スコア",
		none:      "-",
		pillars: map[model.Pillar]string{
			model.PillarDrivers: "Brain Capital Drivers (生活習慣)",
			model.PillarHealth:  "Brain Health (脳の健康)",
			model.PillarSkills:  "Brain Skills (認知・非認知スキル)",
		},
		disclaimer: "【免責事項】このレポートは個人の自己改善目的のみに使用されます。医療診断・医療行為ではありません。" +
			"健康上の懸念がある場合は医療専門家にご相談ください。",
	},
	model.LanguageEnglish: {
		title:     "Personal Brain Capital Monitor (PBCM)",
		date:      "Report date",
		latest:    "Latest scores",
		tests:     "Cognitive tests",
		benchmark: "Peer average",
		advice:    "Suggestions",
		actions:   "Actions",
		total:     "Total Brain Capital Score",
		score:     "Score",
		none:      "-",
		pillars: map[model.Pillar]string{
			model.PillarDrivers: "Brain Capital Drivers (lifestyle)",
			model.PillarHealth:  "Brain Health (mental health)",
			model.PillarSkills:  "Brain Skills (cognitive and soft skills)",
		},
		disclaimer: "Disclaimer: this report is for personal self-improvement only. It is not a medical diagnosis " +
			"or treatment. Please consult a healthcare professional about any health concern.",
	},
}

func labelsFor(lang model.Language) labels {
	if l, ok := text[lang]; ok {
		return l
	}
	return text[model.DefaultLanguage]
}

// Markdown renders a report in the report's language.
func Markdown(r *service.Report) string {
	l := labelsFor(r.Language)
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l.title)
	fmt.Fprintf(&b, "%s: %s\n\n", l.date, r.TakenAt.Format("2006-01-02"))

	fmt.Fprintf(&b, "## %s\n\n", l.latest)
	fmt.Fprintf(&b, "| | %s | %s |\n|---|---|---|\n", l.score, l.benchmark)
	bench := map[model.Pillar]float64{
		model.PillarDrivers: r.Benchmark.Drivers,
		model.PillarHealth:  r.Benchmark.Health,
		model.PillarSkills:  r.Benchmark.Skills,
	}
	for _, p := range model.Pillars() {
		fmt.Fprintf(&b, "| %s | %s | %.1f |\n", l.pillars[p], scoreCell(r.Pillars.Get(p), r.Bands[p], l), bench[p])
	}
	fmt.Fprintf(&b, "| **%s** | %s | %.1f |\n\n", l.total, scoreCell(r.Total, advice.BandLabel{}, l), r.Benchmark.Total)

	if len(r.Tests) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", l.tests)
		for _, kind := range []string{"attention", "memory", "flexibility"} {
			if v, ok := r.Tests[kind]; ok {
				fmt.Fprintf(&b, "- %s: %.1f/100\n", kind, v)
			}
		}
		b.WriteString("\n")
	}

	if len(r.Advice) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", l.advice)
		for _, rec := range r.Advice {
			renderAdvice(&b, rec, l)
		}
	}

	fmt.Fprintf(&b, "---\n\n_%s_\n", l.disclaimer)
	return b.String()
}

// Advice renders advice records on their own, e.g. for a stored snapshot.
func Advice(recs []advice.Record, lang model.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.advice)
	for _, rec := range recs {
		renderAdvice(&b, rec, l)
	}
	return b.String()
}

// Rules renders a rule table as a Markdown table in lang, falling back to
// each rule's default text.
func Rules(rules []advice.Rule, lang, fallback model.Language) string {
	var b strings.Builder
	b.WriteString("| Pillar | Range | Severity | Title |\n|---|---|---|---|\n")
	for _, r := range rules {
		txt, ok := r.Text[lang]
		if !ok {
			txt = r.Text[fallback]
		}
		fmt.Fprintf(&b, "| %s | %g-%g | %s | %s |\n", r.Pillar, r.ScoreMin, r.ScoreMax, r.Severity, txt.Title)
	}
	return b.String()
}

func scoreCell(v *float64, band advice.BandLabel, l labels) string {
	if v == nil {
		return l.none
	}
	if band.Label == "" {
		return fmt.Sprintf("%.1f/100", *v)
	}
	return fmt.Sprintf("%.1f/100 (%s)", *v, band.Label)
}

func renderAdvice(b *strings.Builder, rec advice.Record, l labels) {
	fmt.Fprintf(b, "### %s [%s]\n\n", rec.Title, rec.Severity)
	fmt.Fprintf(b, "%s\n\n", rec.Body)
	if len(rec.Actions) > 0 {
		fmt.Fprintf(b, "**%s:**\n", l.actions)
		for _, a := range rec.Actions {
			fmt.Fprintf(b, "- %s\n", a)
		}
		b.WriteString("\n")
	}
	if rec.Disclaimer != "" {
		fmt.Fprintf(b, "> %s\n\n", rec.Disclaimer)
	}
}
