package menu

import (
	"mealbox/web/pages/recipes"

	"github.com/rohanthewiz/element"
)

// Grid lays out the recipe cards; its id is the swap target of every card control
type Grid struct {
	Cards []recipes.Card
}

func (g Grid) Render(b *element.Builder) (x any) {
	b.Main("class", "recipe-grid", "id", "recipe-grid").R(
		b.Wrap(func() {
			if len(g.Cards) == 0 {
				b.PClass("recipe-grid__empty").T("No recipes on the menu this week.")
				return
			}
			element.ForEach(g.Cards, func(c recipes.Card) {
				element.RenderComponents(b, c)
			})
		}),
	)
	return
}
