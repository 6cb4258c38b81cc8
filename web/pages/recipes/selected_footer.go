package recipes

import (
	"strconv"

	"mealbox/selection"

	"github.com/rohanthewiz/element"
)

// SelectedFooter is the quantity stepper shown once a recipe is in the box
type SelectedFooter struct {
	RecipeID           string
	Selected           int
	SelectionLimit     int
	Yields             int
	MaxRecipesSelected bool
	ActionPath         string
	Target             string
	LimitReached       func(limit, selected int) bool
}

// Servings is the total servings of this recipe in the box
func (f SelectedFooter) Servings() int {
	return f.Selected * f.Yields
}

// IncrementDisabled is true when the box is full or this recipe is capped
func (f SelectedFooter) IncrementDisabled() bool {
	limitReached := f.LimitReached
	if limitReached == nil {
		limitReached = selection.ExceedsLimit
	}
	return f.MaxRecipesSelected || limitReached(f.SelectionLimit, f.Selected)
}

func (f SelectedFooter) Render(b *element.Builder) (x any) {
	count := strconv.Itoa(f.Selected)
	servings := strconv.Itoa(f.Servings())

	b.Div("class", "recipe-card__footer recipe-card__footer--selected", "data-testid", "selected-footer").R(
		controlForm(b, ActionURL(f.ActionPath, f.RecipeID, ActionDecrement), f.Target, func() {
			b.Button("type", "submit",
				"class", "selection-button",
				"title", "Decrease Quantity",
				"aria-label", "Decrease Quantity",
				"data-testid", "decrease-quantity").R(
				b.T(iconMinusCircle),
			)
		}),
		b.Div("class", "recipe-card__counter", "tabindex", "0",
			"aria-label", count+" in your box ("+servings+" servings)").R(
			b.P("class", "recipe-card__count", "data-testid", "counter-container").T(count+" in your box"),
			b.P("class", "recipe-card__servings").T("("+servings+" servings)"),
		),
		controlForm(b, ActionURL(f.ActionPath, f.RecipeID, ActionIncrement), f.Target, func() {
			b.Button(buttonAttrs(f.IncrementDisabled(),
				"type", "submit",
				"class", "selection-button",
				"title", "Increase Quantity",
				"aria-label", "Increase Quantity",
				"data-testid", "increase-quantity")...).R(
				b.T(iconPlusCircle),
			)
		}),
	)
	return
}
