package tui

import (
	"fmt"
	"strconv"
	"strings"

	"mealbox/price"
	"mealbox/web/pages/recipes"

	"github.com/charmbracelet/lipgloss"
)

var (
	green = lipgloss.Color("#067a46")
	grey  = lipgloss.Color("#71717a")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(green).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1).
			Width(44)

	selectedCardStyle = cardStyle.BorderForeground(green)

	cursorCardStyle = cardStyle.BorderForeground(lipgloss.Color("#fde68a"))

	nameStyle     = lipgloss.NewStyle().Bold(true)
	headlineStyle = lipgloss.NewStyle().Foreground(grey)
	chargeStyle   = lipgloss.NewStyle().Foreground(green).Bold(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(green)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52525b")).Strikethrough(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5"))
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d8"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mealbox"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(statusStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	if len(m.cards) == 0 {
		b.WriteString(headlineStyle.Render("No recipes on the menu this week."))
		b.WriteString("\n")
	}
	for i, card := range m.cards {
		b.WriteString(renderCard(card, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderCard(card recipes.Card, focused bool) string {
	style := cardStyle
	switch {
	case focused:
		style = cursorCardStyle
	case card.IsSelected():
		style = selectedCardStyle
	}

	body := nameStyle.Render(card.Name) + "\n" +
		headlineStyle.Render(card.Headline) + "\n\n" +
		renderFooter(card)
	return style.Render(body)
}

// renderFooter draws the same footer variant the web card would render
func renderFooter(card recipes.Card) string {
	switch f := card.Footer().(type) {
	case recipes.SelectedFooter:
		counter := strconv.Itoa(f.Selected) + " in your box " +
			headlineStyle.Render("("+strconv.Itoa(f.Servings())+" servings)")
		return button("[-]", false) + "  " + counter + "  " + button("[+]", f.IncrementDisabled())
	case recipes.UnselectedFooter:
		out := button("[ "+f.Label()+" ]", f.AddDisabled())
		if label := f.PriceLabel(); label != "" {
			out = chargeStyle.Render(label) + "  " + out
		}
		return out
	}
	return ""
}

func button(label string, disabled bool) string {
	if disabled {
		return disabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m Model) renderSummary() string {
	sum := m.snap.Summary
	line := fmt.Sprintf("%d of %d meals · %d servings · %s",
		sum.Status.Total, m.plan.MaxRecipes, sum.Servings, price.ParseRawPrice(sum.TotalPrice))
	if !sum.Status.MinReached {
		line += fmt.Sprintf(" · add %d more to complete your box", m.plan.MinRecipes-sum.Status.Total)
	}
	return summaryStyle.Render(line)
}
