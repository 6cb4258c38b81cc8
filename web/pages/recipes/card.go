// Package recipes renders the recipe card shown on the weekly menu.
//
// A Card is a stateless view of one recipe plus the box-wide selection
// flags. It renders the image, name and headline, followed by exactly one
// footer: UnselectedFooter when nothing of the recipe is in the box, and
// SelectedFooter otherwise. Controls post back to ActionPath; the owning
// handler turns those posts into Callbacks.
package recipes

import (
	"html"

	"mealbox/price"
	"mealbox/selection"

	"github.com/rohanthewiz/element"
)

// DefaultTarget is the element HTMX swaps with the response to a control
const DefaultTarget = "#recipe-grid"

// Card is the view-model for a single recipe card
type Card struct {
	ID          string
	Name        string
	Headline    string
	Image       string
	Yields      int
	ExtraCharge *int // cents; nil when the recipe has no surcharge

	Selected           int
	SelectionLimit     int
	MaxRecipesSelected bool
	MinRecipesSelected bool

	PublicURL  string // prefix for Image
	ActionPath string // controls post to ActionPath/<id>/<action>
	Target     string // hx-target for control responses

	// Collaborators; nil falls back to price.ParseRawPrice and selection.ExceedsLimit
	FormatPrice  func(cents int) string
	LimitReached func(limit, selected int) bool
}

// IsSelected reports whether the card renders in selected mode
func (c Card) IsSelected() bool {
	return c.Selected > 0
}

// DOMID is the card's element id
func (c Card) DOMID() string {
	return "recipe-" + c.ID
}

func (c Card) Render(b *element.Builder) (x any) {
	class := "recipe-card"
	if c.IsSelected() {
		class += " recipe-card--selected"
	}

	b.Div("class", class, "id", html.EscapeString(c.DOMID()), "data-testid", "recipe-card").R(
		b.DivClass("recipe-card__media").R(
			b.Img("src", html.EscapeString(c.PublicURL+c.Image), "alt", html.EscapeString(c.Name), "width", "100%"),
		),
		b.DivClass("recipe-card__body").R(
			b.P("class", "recipe-card__name", "tabindex", "0").T(html.EscapeString(c.Name)),
			b.P("class", "recipe-card__headline", "tabindex", "0").T(html.EscapeString(c.Headline)),
		),
		element.RenderComponents(b, c.Footer()),
	)
	return
}

// Footer picks the footer variant for the current selection
func (c Card) Footer() element.Component {
	if c.IsSelected() {
		return SelectedFooter{
			RecipeID:           c.ID,
			Selected:           c.Selected,
			SelectionLimit:     c.SelectionLimit,
			Yields:             c.Yields,
			MaxRecipesSelected: c.MaxRecipesSelected,
			ActionPath:         c.ActionPath,
			Target:             c.target(),
			LimitReached:       c.limitReached(),
		}
	}

	return UnselectedFooter{
		RecipeID:           c.ID,
		Price:              c.ExtraCharge,
		MinRecipesSelected: c.MinRecipesSelected,
		MaxRecipesSelected: c.MaxRecipesSelected,
		ActionPath:         c.ActionPath,
		Target:             c.target(),
		FormatPrice:        c.formatPrice(),
	}
}

// IncrementDisabled reports whether the current footer's add or increment
// control is disabled
func (c Card) IncrementDisabled() bool {
	switch f := c.Footer().(type) {
	case SelectedFooter:
		return f.IncrementDisabled()
	case UnselectedFooter:
		return f.AddDisabled()
	}
	return true
}

func (c Card) target() string {
	if c.Target == "" {
		return DefaultTarget
	}
	return c.Target
}

func (c Card) formatPrice() func(int) string {
	if c.FormatPrice == nil {
		return price.ParseRawPrice
	}
	return c.FormatPrice
}

func (c Card) limitReached() func(int, int) bool {
	if c.LimitReached == nil {
		return selection.ExceedsLimit
	}
	return c.LimitReached
}

// controlForm renders a post form wrapping one control. Without JavaScript the
// form posts normally; with HTMX the response replaces target.
func controlForm(b *element.Builder, url, target string, button func()) any {
	return b.Form("method", "post", "action", url,
		"hx-post", url,
		"hx-target", target,
		"hx-swap", "outerHTML",
		"class", "recipe-card__control").R(
		b.Wrap(button),
	)
}

// buttonAttrs appends the disabled attribute when needed
func buttonAttrs(disabled bool, attrs ...string) []string {
	if disabled {
		attrs = append(attrs, "disabled", "disabled")
	}
	return attrs
}
