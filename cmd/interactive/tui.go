package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ningkaiyang/Clash-Level-Calculator/internal/models"
	"github.com/ningkaiyang/Clash-Level-Calculator/internal/optimizer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// browser is the interactive comparison view: one tab per regime, the
// cursor scrolls through that regime's upgrade steps.
type browser struct {
	results []optimizer.RegimeResult
	best    models.Regime
	tab     int
	cursor  int
	offset  int
	height  int
}

func newBrowser(results []optimizer.RegimeResult) browser {
	return browser{
		results: results,
		best:    optimizer.RankByXP(results)[0].Regime,
		height:  24,
	}
}

func (b browser) Init() tea.Cmd {
	return nil
}

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.height = msg.Height
		b.clampCursor()
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return b, tea.Quit
		case "right", "l", "tab":
			b.tab = (b.tab + 1) % len(b.results)
			b.cursor, b.offset = 0, 0
		case "left", "h", "shift+tab":
			b.tab = (b.tab + len(b.results) - 1) % len(b.results)
			b.cursor, b.offset = 0, 0
		case "down", "j":
			b.cursor++
			b.clampCursor()
		case "up", "k":
			b.cursor--
			b.clampCursor()
		case "home", "g":
			b.cursor = 0
			b.clampCursor()
		case "end", "G":
			b.cursor = len(b.current().Plan.Steps) - 1
			b.clampCursor()
		}
	}
	return b, nil
}

func (b browser) View() string {
	var v strings.Builder

	v.WriteString(titleStyle.Render("Clash Level Calculator · Regime Comparison"))
	v.WriteString("\n\n")

	tabs := make([]string, len(b.results))
	for i, r := range b.results {
		label := r.Title
		if r.Regime == b.best {
			label = "★ " + label
		}
		if i == b.tab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	v.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	v.WriteString("\n\n")

	current := b.current()
	plan := current.Plan

	summary := fmt.Sprintf("%d upgrades   %s XP   %s gold   %s gems   king %d (+%s XP)",
		len(plan.Steps),
		formatInt(plan.TotalXPGained),
		formatInt(plan.TotalGoldSpent),
		formatInt(plan.TotalGemsSpent),
		plan.FinalProfile.KingLevel,
		formatInt(plan.FinalProfile.XPIntoLevel))
	if current.Regime == b.best {
		summary = bestStyle.Render("best · ") + summary
	}
	v.WriteString(summaryStyle.Render(summary))
	v.WriteString("\n")

	if len(plan.Steps) == 0 {
		v.WriteString(warnStyle.Render("No affordable upgrades in this regime."))
		v.WriteString("\n")
	} else {
		visible := b.visibleRows()
		end := b.offset + visible
		if end > len(plan.Steps) {
			end = len(plan.Steps)
		}
		for i := b.offset; i < end; i++ {
			line := fmt.Sprintf("%3d. %s", i+1, stepLine(plan.Steps[i]))
			if i == b.cursor {
				v.WriteString(cursorStyle.Render("> " + line))
			} else {
				v.WriteString(stepStyle.Render("  " + line))
			}
			v.WriteString("\n")
		}
		if end < len(plan.Steps) {
			v.WriteString(warnStyle.Render(fmt.Sprintf("  … %d more", len(plan.Steps)-end)))
			v.WriteString("\n")
		}
	}

	if plan.Truncated {
		v.WriteString(warnStyle.Render("Plan cut at the step ceiling."))
		v.WriteString("\n")
	}

	v.WriteString(helpStyle.Render("←/→ regime · ↑/↓ step · g/G first/last · q quit"))
	return v.String()
}

func (b browser) current() optimizer.RegimeResult {
	return b.results[b.tab]
}

// visibleRows leaves room for the title, tabs, summary and help lines.
func (b browser) visibleRows() int {
	rows := b.height - 9
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (b *browser) clampCursor() {
	steps := len(b.current().Plan.Steps)
	if steps == 0 {
		b.cursor, b.offset = 0, 0
		return
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= steps {
		b.cursor = steps - 1
	}
	visible := b.visibleRows()
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+visible {
		b.offset = b.cursor - visible + 1
	}
}

// runBrowser blocks until the user quits the comparison view.
func runBrowser(results []optimizer.RegimeResult) error {
	_, err := tea.NewProgram(newBrowser(results), tea.WithAltScreen()).Run()
	return err
}
