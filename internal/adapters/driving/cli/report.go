package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
	"github.com/custodia-labs/corpusmix-cli/internal/core/services"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// styled reports whether stdout is a terminal. Piped output stays plain
// so reports remain grep-able.
func styled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, s string) string {
	if !styled() {
		return s
	}
	return style.Render(s)
}

// renderPlan prints weights, percentages and counts per source.
func renderPlan(cmd *cobra.Command, spec *domain.MixSpec, plan domain.Plan) {
	cmd.Println(render(headerStyle, "Allocation plan"))
	for i, src := range spec.Sources() {
		line := fmt.Sprintf("  %d. %-30s", src.Ordinal, src.Name())
		if plan.Weights != nil {
			line += fmt.Sprintf("  weight %.4f", plan.Weights[i])
		}
		line += fmt.Sprintf("  %3d%%", plan.Percentages[i])
		if plan.Counts != nil {
			line += fmt.Sprintf("  %6d items", plan.Counts[i])
		}
		cmd.Println(line)
	}
	if plan.Counts != nil {
		total := 0
		for _, c := range plan.Counts {
			total += c
		}
		cmd.Println(render(totalStyle, fmt.Sprintf("  total %d items", total)))
	}
}

// renderReport prints the post-run summary: selection outcome, warnings,
// and the duration table with per-source share of the grand total.
func renderReport(cmd *cobra.Command, spec *domain.MixSpec, report *domain.MixReport) {
	renderPlan(cmd, spec, report.Plan)

	if len(report.Warnings) > 0 {
		cmd.Println()
		for _, w := range report.Warnings {
			cmd.Println(render(warnStyle, "  warning: "+w))
		}
	}

	cmd.Println()
	cmd.Println(render(headerStyle, "Duration summary"))
	for _, res := range report.Results {
		if res.Skipped {
			cmd.Printf("  %d. %-30s  skipped\n", res.Source.Ordinal, res.Source.Name())
			continue
		}
		if !res.HasDuration {
			cmd.Printf("  %d. %-30s  %6d items  no duration information\n",
				res.Source.Ordinal, res.Source.Name(), res.Selected)
			continue
		}
		cmd.Printf("  %d. %-30s  %6d items  %10.1fs  %5.1f%%  %s\n",
			res.Source.Ordinal, res.Source.Name(), res.Selected,
			res.DurationSeconds, report.DurationShare(res),
			services.FormatDuration(res.DurationSeconds))
	}
	grand := report.TotalDuration()
	cmd.Println(render(totalStyle, fmt.Sprintf("  total %.1fs (%s)", grand, services.FormatDuration(grand))))
	cmd.Printf("\nMerged %s into %s\n", pluralSources(len(report.Results)), report.Destination)
}

func pluralSources(n int) string {
	if n == 1 {
		return "1 source"
	}
	return fmt.Sprintf("%d sources", n)
}

// renderRun prints one persisted run manifest.
func renderRun(cmd *cobra.Command, run *domain.Run) {
	cmd.Println(render(headerStyle, fmt.Sprintf("Run %s (%s)", run.ID, run.Pass)))
	cmd.Printf("  started:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	cmd.Printf("  destination: %s\n", run.Destination)
	cmd.Printf("  unit=%s seed=%d prefix=%s weights=%s target=%d\n",
		run.Unit, run.Seed, run.PrefixMode, run.WeightMode, run.TargetTotal)
	cmd.Printf("  status:      %s\n", run.Status)
	if run.Error != "" {
		cmd.Println(render(warnStyle, "  error:       "+run.Error))
	}
	for _, src := range run.Sources {
		var notes []string
		if src.Capped {
			notes = append(notes, "capped")
		}
		if src.Skipped {
			notes = append(notes, "skipped")
		}
		suffix := ""
		if len(notes) > 0 {
			suffix = "  (" + strings.Join(notes, ", ") + ")"
		}
		cmd.Printf("  %d. %-30s  %d/%d  %s%s\n", src.Ordinal, src.Path,
			src.Selected, src.Requested, services.FormatDuration(src.DurationSeconds), suffix)
	}
}
