package menu

import (
	"html"
	"strconv"

	"mealbox/models"
	"mealbox/price"
	"mealbox/selection"

	"github.com/rohanthewiz/element"
)

// Summary is the box side panel: counts, servings and the price breakdown
type Summary struct {
	Summary   models.BoxSummary
	Plan      selection.Plan
	OutOfBand bool // render with hx-swap-oob so HTMX replaces the panel in place
}

func (s Summary) Render(b *element.Builder) (x any) {
	attrs := []string{"class", "box-summary", "id", "box-summary", "aria-live", "polite"}
	if s.OutOfBand {
		attrs = append(attrs, "hx-swap-oob", "true")
	}

	sum := s.Summary
	b.Aside(attrs...).R(
		b.H2Class("box-summary__title").T("Your box"),
		b.P("class", "box-summary__count", "data-testid", "box-count").
			T(strconv.Itoa(sum.Status.Total)+" of "+strconv.Itoa(s.Plan.MaxRecipes)+" meals"),
		b.Wrap(func() {
			if !sum.Status.MinReached {
				remaining := s.Plan.MinRecipes - sum.Status.Total
				b.P("class", "box-summary__hint", "data-testid", "box-hint").
					T("Add " + strconv.Itoa(remaining) + " more to complete your box")
			}
		}),
		b.DivClass("box-summary__lines").R(
			summaryLine(b, "Servings", strconv.Itoa(sum.Servings)),
			summaryLine(b, "Meals", price.ParseRawPrice(sum.Subtotal-sum.ExtraCharges)),
			b.Wrap(func() {
				if sum.ExtraCharges > 0 {
					summaryLine(b, "Extra charges", price.ParseRawPrice(sum.ExtraCharges))
				}
			}),
			summaryLine(b, "Shipping", price.ParseRawPrice(sum.Shipping)),
			summaryLine(b, "Total", price.ParseRawPrice(sum.TotalPrice)),
		),
	)
	return
}

func summaryLine(b *element.Builder, label, value string) any {
	b.DivClass("box-summary__line").R(
		b.SpanClass("box-summary__label").T(html.EscapeString(label)),
		b.SpanClass("box-summary__value").T(html.EscapeString(value)),
	)
	return nil
}
