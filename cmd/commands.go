package main

import (
	"fmt"
	"strings"

	service "github.com/okian/braincap/internal/app"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
	"github.com/okian/braincap/internal/render"
	"github.com/okian/braincap/internal/sample"
	"github.com/okian/braincap/pkg/logger"
	"github.com/spf13/cobra"
)

func newAssessCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "assess <file|->",
		Short: "Score one assessment (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var a service.Assessment
			if err := loadInput(cmd, args[0], &a); err != nil {
				return err
			}
			r, err := c.svc.Assess(cmd.Context(), a)
			if err != nil {
				return exitError(exitInput, "%v", err)
			}
			return c.writeOutput(cmd, r, func() string { return render.Markdown(r) })
		},
	}
}

func newBatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file|->",
		Short: "Score a list of assessments concurrently, skipping duplicate submission IDs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var items []service.Assessment
			if err := loadInput(cmd, args[0], &items); err != nil {
				return err
			}
			results, err := c.svc.AssessBatch(ctx, items)
			if err != nil {
				return exitError(exitFailed, "%v", err)
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				c.log.Warn(ctx, "some assessments failed",
					logger.Int("failed", failed),
					logger.Int("total", len(results)),
				)
			}
			return c.writeOutput(cmd, results, func() string { return batchMarkdown(results) })
		},
	}
}

func batchMarkdown(results []service.BatchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		switch {
		case r.Report != nil:
			parts = append(parts, render.Markdown(r.Report))
		case r.Duplicate:
			parts = append(parts, fmt.Sprintf("Item %d: duplicate submission, skipped.\n", r.Index))
		default:
			parts = append(parts, fmt.Sprintf("Item %d: %s\n", r.Index, r.Error))
		}
	}
	return joinSections(parts)
}

// testsInput is a cognitive-test batch with optional skills survey answers.
type testsInput struct {
	Attention    *scoring.Attention   `json:"attention,omitempty" yaml:"attention,omitempty"`
	Memory       *scoring.Memory      `json:"memory,omitempty" yaml:"memory,omitempty"`
	Flexibility  *scoring.Flexibility `json:"flexibility,omitempty" yaml:"flexibility,omitempty"`
	SkillsSurvey scoring.Responses    `json:"skills_survey,omitempty" yaml:"skills_survey,omitempty"`
}

func newTestsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tests <file|->",
		Short: "Score cognitive tests and the skills pillar they imply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in testsInput
			if err := loadInput(cmd, args[0], &in); err != nil {
				return err
			}
			tests := &service.CognitiveTests{Attention: in.Attention, Memory: in.Memory, Flexibility: in.Flexibility}
			r, err := c.svc.ScoreTests(cmd.Context(), tests, in.SkillsSurvey)
			if err != nil {
				return exitError(exitInput, "%v", err)
			}
			return c.writeOutput(cmd, r, func() string {
				var b strings.Builder
				b.WriteString("| Test | Score |\n|---|---|\n")
				for _, k := range []scoring.TestKind{scoring.TestAttention, scoring.TestMemory, scoring.TestFlexibility} {
					if v, ok := r.Tests[string(k)]; ok {
						fmt.Fprintf(&b, "| %s | %.1f |\n", k, v)
					}
				}
				fmt.Fprintf(&b, "| **skills** | %.1f |\n", r.Skills)
				return b.String()
			})
		},
	}
}

type adviseFlags struct {
	drivers, health, skills float64
	lang                    string
}

func newAdviseCmd(c *cli) *cobra.Command {
	f := &adviseFlags{}
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Recommend actions for pillar scores; unset pillars count as 50",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var scores service.PillarScores
			if flags.Changed("drivers") {
				scores.Drivers = &f.drivers
			}
			if flags.Changed("health") {
				scores.Health = &f.health
			}
			if flags.Changed("skills") {
				scores.Skills = &f.skills
			}
			recs := c.svc.Recommend(cmd.Context(), scores, model.Language(f.lang))
			lang := model.ParseLanguage(c.cfg.DefaultLanguage)
			if len(recs) > 0 {
				lang = recs[0].Language
			}
			return c.writeOutput(cmd, recs, func() string { return render.Advice(recs, lang) })
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&f.drivers, "drivers", 0, "Brain Capital Drivers score (0-100)")
	flags.Float64Var(&f.health, "health", 0, "Brain Health score (0-100)")
	flags.Float64Var(&f.skills, "skills", 0, "Brain Skills score (0-100)")
	flags.StringVar(&f.lang, "lang", "", "Language tag, e.g. ja or en-US (default: config default_language)")
	return cmd
}

func newBenchmarkCmd(c *cli) *cobra.Command {
	var age int
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Show peer reference scores for an age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var agePtr *int
			if cmd.Flags().Changed("age") {
				agePtr = &age
			}
			b := c.svc.Scorer().Benchmark(agePtr)
			return c.writeOutput(cmd, b, func() string {
				return fmt.Sprintf("| Bracket | Drivers | Health | Skills | Total |\n|---|---|---|---|---|\n| %s | %s | %s | %s | %s |\n",
					b.Bracket, fmtScore(&b.Drivers), fmtScore(&b.Health), fmtScore(&b.Skills), fmtScore(&b.Total))
			})
		},
	}
	cmd.Flags().IntVar(&age, "age", 0, "Age in years (default bracket when unset)")
	return cmd
}

func newRulesCmd(c *cli) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the advice rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			advisor := c.svc.Advisor()
			rules := advisor.Rules()
			return c.writeOutput(cmd, rules, func() string {
				resolved, _ := advisor.Resolve(model.Language(lang))
				return render.Rules(rules, resolved, advisor.DefaultLanguage())
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Language for rule titles in md output")
	return cmd
}

type sampleFlags struct {
	count      int
	seed       uint64
	duplicates float64
}

func newSampleCmd(c *cli) *cobra.Command {
	f := &sampleFlags{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate synthetic assessments usable as batch input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.count <= 0 {
				return exitError(exitUsage, "--count must be positive")
			}
			if f.duplicates < 0 || f.duplicates > 1 {
				return exitError(exitUsage, "--duplicates must be between 0 and 1")
			}
			items := sample.NewGenerator(
				sample.WithSeed(f.seed),
				sample.WithDuplicateRate(f.duplicates),
				sample.WithScorer(c.svc.Scorer()),
			).Generate(f.count)
			c.log.Debug(cmd.Context(), "generated sample assessments", logger.Int("count", len(items)))
			return c.writeOutput(cmd, items, func() string {
				var b strings.Builder
				b.WriteString("| Submission | User | Survey | Language |\n|---|---|---|---|\n")
				for _, a := range items {
					fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.SubmissionID, a.UserID, a.SurveyType, a.Language)
				}
				return b.String()
			})
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&f.count, "count", 10, "Number of assessments")
	flags.Uint64Var(&f.seed, "seed", 1, "Random seed")
	flags.Float64Var(&f.duplicates, "duplicates", 0, "Share of items reusing an earlier submission ID (0-1)")
	return cmd
}
