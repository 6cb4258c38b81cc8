package recipes

import (
	"html"

	"mealbox/price"

	"github.com/rohanthewiz/element"
)

// Labels of the add control
const (
	AddLabel      = "Add"
	AddExtraLabel = "Add extra meal"
)

// UnselectedFooter shows the surcharge, if any, and the add control
type UnselectedFooter struct {
	RecipeID           string
	Price              *int // cents; nil or zero renders no price
	MinRecipesSelected bool
	MaxRecipesSelected bool
	ActionPath         string
	Target             string
	FormatPrice        func(cents int) string
}

// Label is "Add" once the box minimum is met, otherwise "Add extra meal"
func (f UnselectedFooter) Label() string {
	if f.MinRecipesSelected {
		return AddLabel
	}
	return AddExtraLabel
}

// AddDisabled reports whether the box is already full
func (f UnselectedFooter) AddDisabled() bool {
	return f.MaxRecipesSelected
}

// PriceLabel is "+<price>" for a non-zero extra charge, empty otherwise
func (f UnselectedFooter) PriceLabel() string {
	if f.Price == nil || *f.Price == 0 {
		return ""
	}
	return "+" + f.formattedPrice()
}

func (f UnselectedFooter) formattedPrice() string {
	if f.FormatPrice == nil {
		return price.ParseRawPrice(*f.Price)
	}
	return f.FormatPrice(*f.Price)
}

func (f UnselectedFooter) Render(b *element.Builder) (x any) {
	label := f.Label()
	priceLabel := f.PriceLabel()

	b.Div("class", "recipe-card__footer recipe-card__footer--unselected", "data-testid", "unselected-footer").R(
		b.DivClass("recipe-card__price").R(
			b.Wrap(func() {
				if priceLabel == "" {
					return
				}
				formatted := html.EscapeString(f.formattedPrice())
				b.Span("class", "recipe-card__extra-charge", "tabindex", "0",
					"aria-label", "Extra charge + "+formatted).T("+" + formatted)
			}),
		),
		b.DivClass("recipe-card__add").R(
			controlForm(b, ActionURL(f.ActionPath, f.RecipeID, ActionIncrement), f.Target, func() {
				b.Button(buttonAttrs(f.AddDisabled(),
					"type", "submit",
					"class", "btn btn-secondary",
					"tabindex", "0",
					"data-testid", "add-quantity",
					"aria-label", label)...).T(label)
			}),
		),
	)
	return
}
