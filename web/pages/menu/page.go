// Package menu renders the weekly menu page: a grid of recipe cards beside
// the box summary.
package menu

import (
	"fmt"

	"mealbox/models"
	"mealbox/selection"
	"mealbox/web/pages/comps"
	"mealbox/web/pages/recipes"
	"mealbox/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// HTMXSrc is loaded from a CDN like the other front-end libraries
const HTMXSrc = "https://unpkg.com/htmx.org@1.9.12/dist/htmx.min.js"

// Menu is everything the menu page and its partials need for one request
type Menu struct {
	Recipes    []models.Recipe
	Quantities map[string]int
	Plan       selection.Plan
	Summary    models.BoxSummary
	PublicURL  string
	ActionPath string
}

// Cards builds one card view-model per recipe, in menu order
func (m Menu) Cards() []recipes.Card {
	status := m.Plan.Status(m.Quantities)

	cards := make([]recipes.Card, 0, len(m.Recipes))
	for _, r := range m.Recipes {
		cards = append(cards, recipes.Card{
			ID:                 r.ID,
			Name:               r.Name,
			Headline:           r.Headline,
			Image:              r.Image,
			Yields:             r.Yields,
			ExtraCharge:        r.Charge(),
			Selected:           m.Quantities[r.ID],
			SelectionLimit:     m.Plan.SelectionLimit,
			MaxRecipesSelected: status.MaxReached,
			MinRecipesSelected: status.MinReached,
			PublicURL:          m.PublicURL,
			ActionPath:         m.ActionPath,
			Target:             recipes.DefaultTarget,
		})
	}
	return cards
}

// Page is the full menu document
type Page struct {
	shared.Page
	Menu
}

// NewPage creates the menu page for a box
func NewPage(m Menu) Page {
	return Page{
		Page: shared.Page{Title: "mealbox", Subtitle: "Pick your meals for the week"},
		Menu: m,
	}
}

// Render generates the complete HTML for the menu page
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(p.Title),
			b.Link("rel", "stylesheet", "href", "/static/css/app.css"),
			b.Script("src", HTMXSrc).R(),
		),
		b.Body().R(
			element.RenderComponents(b,
				p.Banner(),
				comps.Heading{Title: "This week's menu", Note: planNote(p.Plan)},
			),
			b.DivClass("menu-layout").R(
				element.RenderComponents(b,
					Grid{Cards: p.Cards()},
					Summary{Summary: p.Summary, Plan: p.Plan},
				),
			),
			element.RenderComponents(b, p.Footer()),
		),
	)

	return b.String()
}

// Partial renders the grid plus an out-of-band summary, the response to a card control
func (m Menu) Partial() string {
	b := element.NewBuilder()
	element.RenderComponents(b,
		Grid{Cards: m.Cards()},
		Summary{Summary: m.Summary, Plan: m.Plan, OutOfBand: true},
	)
	return b.String()
}

// planNote spells out the box rules under the page heading
func planNote(plan selection.Plan) string {
	note := fmt.Sprintf("Choose %d to %d meals", plan.MinRecipes, plan.MaxRecipes)
	if plan.MinRecipes == plan.MaxRecipes {
		note = fmt.Sprintf("Choose %d meals", plan.MaxRecipes)
	}
	if plan.SelectionLimit > 0 {
		note += fmt.Sprintf(", up to %d of each", plan.SelectionLimit)
	}
	return note
}
