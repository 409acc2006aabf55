package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/acadeploy/internal/config"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/destroy"
	"github.com/imamik/acadeploy/internal/util/naming"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(0, 1)
)

const (
	okMark   = "[OK]"
	failMark = "[!!]"
	warnMark = "[??]"
	skipMark = "[--]"
)

func rule(width int) string {
	return dimStyle.Render("  " + strings.Repeat("─", width))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// renderGeneratedKey shows a generated encryption key once.
func renderGeneratedKey(key string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(warnStyle.Render("  No ENCRYPTION_KEY was supplied, a new key was generated:"))
	b.WriteString("\n\n")
	b.WriteString(keyStyle.Render(key))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Store it and pass it as ENCRYPTION_KEY on every later run."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Data written with this key cannot be read with any other key."))
	b.WriteString("\n\n")
	return b.String()
}

// renderDeploySummary produces the final block of a deploy run.
func renderDeploySummary(cfg *config.Config, state *provisioning.State, outcome provisioning.Outcome, runErr error) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  acadeploy: %s", cfg.AppName)))
	b.WriteString("\n")
	b.WriteString(rule(30))
	b.WriteString("\n")

	for _, r := range state.Records {
		mark, status := skipMark, "reused"
		switch {
		case r.CreatedByRun:
			mark, status = okMark, "created"
		case r.ExistedBeforeRun && r.Kind == provisioning.KindContainerApp && outcome == provisioning.OutcomeSucceeded:
			mark, status = okMark, "updated"
		}
		fmt.Fprintf(&b, "    %s %-16s %-24s %s\n", mark, r.Kind, r.Name, dimStyle.Render(status))
	}

	b.WriteString("\n")
	switch outcome {
	case provisioning.OutcomeSucceeded:
		b.WriteString(okStyle.Render("  Deployment succeeded"))
		b.WriteString("\n")
		if endpoint := naming.Endpoint(state.AppFQDN); endpoint != "" {
			b.WriteString("  Endpoint: ")
			b.WriteString(sectionStyle.Render(endpoint))
			b.WriteString("\n")
		}
	case provisioning.OutcomeFailedWithRollback:
		b.WriteString(failStyle.Render("  Deployment failed, resource group deletion requested"))
		b.WriteString("\n")
	default:
		b.WriteString(failStyle.Render("  Deployment failed, manual cleanup may be required"))
		b.WriteString("\n")
	}
	if runErr != nil {
		b.WriteString(dimStyle.Render("  " + firstLine(runErr.Error())))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTeardownSummary lists every teardown step.
func renderTeardownSummary(cfg *config.Config, report *destroy.Report) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  acadeploy teardown: %s", cfg.ResourceGroup)))
	b.WriteString("\n")
	b.WriteString(rule(30))
	b.WriteString("\n")

	for _, s := range report.Steps {
		mark := skipMark
		switch s.Status {
		case destroy.StatusDeleted:
			mark = okStyle.Render(okMark)
		case destroy.StatusFailed:
			mark = failStyle.Render(failMark)
		case destroy.StatusKept, destroy.StatusDeclined:
			mark = warnStyle.Render(warnMark)
		}
		line := fmt.Sprintf("    %s %-16s %-24s %s", mark, s.Kind, s.Name, s.Status)
		if s.Detail != "" {
			line += dimStyle.Render(" (" + firstLine(s.Detail) + ")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if report.HasErrors() {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  Teardown finished with %d failed step(s), manual cleanup may be required", len(report.Errors))))
	} else {
		b.WriteString(okStyle.Render("  Teardown finished"))
	}
	b.WriteString("\n")
	return b.String()
}

// renderDoctor renders the checks grouped by section.
func renderDoctor(checks []doctorCheck) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  acadeploy doctor"))
	b.WriteString("\n")
	b.WriteString(rule(30))
	b.WriteString("\n")

	section := ""
	for _, c := range checks {
		if c.Section != section {
			section = c.Section
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("  " + section))
			b.WriteString("\n")
		}
		var mark string
		switch c.Status {
		case checkOK:
			mark = okStyle.Render(okMark)
		case checkWarn:
			mark = warnStyle.Render(warnMark)
		default:
			mark = failStyle.Render(failMark)
		}
		fmt.Fprintf(&b, "    %s %-22s %s\n", mark, c.Name, dimStyle.Render(c.Detail))
	}
	b.WriteString("\n")
	return b.String()
}
