package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/benefitsim/internal/compare"
	"github.com/planwise/benefitsim/internal/domain"
)

// Model is the interactive comparison browser: a ranked policy list on the
// left and a cost breakdown for the selected policy on the right.
type Model struct {
	result      *compare.ComparisonResult
	cursorIndex int
	width       int
	height      int
}

// New creates a browser model over an already-computed comparison
func New(result *compare.ComparisonResult) Model {
	return Model{result: result}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"))):
			return m, tea.Quit

		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursorIndex > 0 {
				m.cursorIndex--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursorIndex < len(m.result.Analyses)-1 {
				m.cursorIndex++
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the browser
func (m Model) View() string {
	if m.result == nil || len(m.result.Analyses) == 0 {
		return BorderStyle.Render(SubtleStyle.Render("No policies to browse"))
	}

	list := m.renderList()
	detail := m.renderDetail(&m.result.Analyses[m.cursorIndex])

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		BorderStyle.Render(list),
		BorderStyle.Render(detail))

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Policy Comparison"))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render("↑/↓ to navigate • q to quit"))
	sb.WriteString("\n")
	return sb.String()
}

// renderList shows the ranked policies with the best-value pick marked
func (m Model) renderList() string {
	var sb strings.Builder
	sb.WriteString(HighlightStyle.Render("Ranked by total annual cost"))
	sb.WriteString("\n\n")

	for idx, a := range m.result.Analyses {
		if idx == m.cursorIndex {
			sb.WriteString(HighlightStyle.Render("❯ "))
		} else {
			sb.WriteString("  ")
		}

		line := fmt.Sprintf("%-26s $%s", truncate(a.PolicyName, 26), a.Annual.TotalCosts.StringFixed(0))
		if a.PolicyID == m.result.Recommendation.BestValue {
			line = WinnerStyle.Render(line + " ★")
		} else if idx == m.cursorIndex {
			line = HighlightStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render(wrap(m.result.Recommendation.Summary, 44)))
	return sb.String()
}

// renderDetail shows the selected policy's cost breakdown
func (m Model) renderDetail(a *domain.CostAnalysis) string {
	var sb strings.Builder

	sb.WriteString(HighlightStyle.Render(fmt.Sprintf("%s (%s)", a.PolicyName, a.PolicyType)))
	sb.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Premiums", "$" + a.Annual.Premiums.StringFixed(0)},
		{"Treatment costs", "$" + a.Annual.TreatmentCosts.StringFixed(0)},
		{"Medication costs", "$" + a.Annual.MedicationCosts.StringFixed(0)},
		{"Total annual cost", "$" + a.Annual.TotalCosts.StringFixed(0)},
		{"Effective monthly", "$" + a.KeyMetrics.EffectiveMonthlyCost.StringFixed(2)},
		{"Deductible met (ind)", "$" + a.DeductibleProgress.Individual.StringFixed(0)},
		{"Deductible met (fam)", "$" + a.DeductibleProgress.Family.StringFixed(0)},
		{"OOP progress (ind)", "$" + a.OOPProgress.Individual.StringFixed(0)},
		{"OOP progress (fam)", "$" + a.OOPProgress.Family.StringFixed(0)},
		{"Risk protection", string(a.KeyMetrics.RiskProtection)},
	}

	for _, row := range rows {
		sb.WriteString(SubtleStyle.Render(fmt.Sprintf("%-22s", row.label)))
		sb.WriteString(row.value)
		sb.WriteString("\n")
	}

	if a.HSAEligible {
		sb.WriteString("\n")
		sb.WriteString(WinnerStyle.Render("HSA eligible"))
	}

	return sb.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// wrap soft-wraps a summary string at word boundaries
func wrap(s string, width int) string {
	words := strings.Fields(s)
	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen+len(word)+1 > width && lineLen > 0 {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
