package menu

import (
	"database/sql"
	"strings"
	"testing"

	"mealbox/models"
	"mealbox/price"
	"mealbox/selection"

	"github.com/antchfx/htmlquery"
	"github.com/rohanthewiz/element"
)

func testMenu(quantities map[string]int) Menu {
	recipes := []models.Recipe{
		{ID: "r-salmon", Name: "Crispy Salmon", Headline: "with lemon butter", Image: "/salmon.jpg", Yields: 2},
		{ID: "r-steak", Name: "Ribeye Steak", Headline: "with garlic mash", Image: "/steak.jpg", Yields: 4,
			ExtraCharge: sql.NullInt64{Int64: 1798, Valid: true}},
	}
	plan := selection.Plan{MinRecipes: 2, MaxRecipes: 3, SelectionLimit: 2}
	pricing := price.Pricing{PerServing: 500, Shipping: 699}

	return Menu{
		Recipes:    recipes,
		Quantities: quantities,
		Plan:       plan,
		Summary:    models.Summarize(recipes, quantities, plan, pricing),
		PublicURL:  "/static/img",
		ActionPath: "/box/recipes",
	}
}

// TestCardsCarryBoxFlags verifies the parent computes min/max flags for every card
func TestCardsCarryBoxFlags(t *testing.T) {
	cards := testMenu(map[string]int{"r-salmon": 1}).Cards()
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	for _, c := range cards {
		if c.MinRecipesSelected || c.MaxRecipesSelected {
			t.Errorf("card %s: expected no flags with 1 of 2 minimum, got min=%v max=%v",
				c.ID, c.MinRecipesSelected, c.MaxRecipesSelected)
		}
	}
	if cards[0].Selected != 1 || cards[1].Selected != 0 {
		t.Errorf("unexpected selections %d, %d", cards[0].Selected, cards[1].Selected)
	}
	if cards[1].ExtraCharge == nil || *cards[1].ExtraCharge != 1798 {
		t.Error("expected the steak card to carry its extra charge")
	}

	full := testMenu(map[string]int{"r-salmon": 2, "r-steak": 1}).Cards()
	for _, c := range full {
		if !c.MinRecipesSelected || !c.MaxRecipesSelected {
			t.Errorf("card %s: expected both flags on a full box", c.ID)
		}
	}
}

// TestPageStructure verifies the document wiring
func TestPageStructure(t *testing.T) {
	out := NewPage(testMenu(nil)).Render()

	checks := []string{
		"<title>mealbox</title>",
		"/static/css/app.css",
		"htmx.min.js",
		`id="recipe-grid"`,
		`id="box-summary"`,
		"This week&#39;s menu",
		"Choose 2 to 3 meals, up to 2 of each",
		"Crispy Salmon",
		"Ribeye Steak",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("page should contain %q", want)
		}
	}

	if strings.Contains(out, "hx-swap-oob") {
		t.Error("full page should not render an out-of-band summary")
	}
}

func TestPlanNote(t *testing.T) {
	tests := []struct {
		name string
		plan selection.Plan
		want string
	}{
		{"range with limit", selection.Plan{MinRecipes: 3, MaxRecipes: 6, SelectionLimit: 3}, "Choose 3 to 6 meals, up to 3 of each"},
		{"fixed size", selection.Plan{MinRecipes: 4, MaxRecipes: 4, SelectionLimit: 1}, "Choose 4 meals, up to 1 of each"},
		{"uncapped", selection.Plan{MinRecipes: 1, MaxRecipes: 5}, "Choose 1 to 5 meals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := planNote(tt.plan); got != tt.want {
				t.Errorf("planNote() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestPartialSwapsSummaryOutOfBand verifies the control response shape
func TestPartialSwapsSummaryOutOfBand(t *testing.T) {
	out := testMenu(map[string]int{"r-steak": 1}).Partial()

	doc, err := htmlquery.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("failed to parse partial: %v", err)
	}

	if htmlquery.FindOne(doc, "//main[@id='recipe-grid']") == nil {
		t.Error("partial should contain the grid")
	}
	summary := htmlquery.FindOne(doc, "//aside[@id='box-summary']")
	if summary == nil {
		t.Fatal("partial should contain the summary")
	}
	if htmlquery.SelectAttr(summary, "hx-swap-oob") != "true" {
		t.Error("partial summary should be swapped out of band")
	}

	cards := htmlquery.Find(doc, "//*[@data-testid='recipe-card']")
	if len(cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(cards))
	}
	if len(htmlquery.Find(doc, "//*[@data-testid='selected-footer']")) != 1 {
		t.Error("expected exactly one selected footer")
	}
}

// TestSummaryLines verifies counts, hint and price lines
func TestSummaryLines(t *testing.T) {
	m := testMenu(map[string]int{"r-steak": 1})

	b := element.NewBuilder()
	Summary{Summary: m.Summary, Plan: m.Plan}.Render(b)
	out := b.String()

	// 1 steak: 4 servings * $5.00 + $17.98 + $6.99 shipping
	checks := []string{
		"1 of 3 meals",
		"Add 1 more to complete your box",
		"$20.00",
		"$17.98",
		"$6.99",
		"$44.97",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("summary should contain %q", want)
		}
	}

	b = element.NewBuilder()
	full := testMenu(map[string]int{"r-salmon": 2})
	Summary{Summary: full.Summary, Plan: full.Plan}.Render(b)
	if strings.Contains(b.String(), "more to complete") {
		t.Error("summary should drop the hint once the minimum is met")
	}
}

// TestEmptyGrid verifies the empty menu message
func TestEmptyGrid(t *testing.T) {
	b := element.NewBuilder()
	Grid{}.Render(b)
	if !strings.Contains(b.String(), "No recipes on the menu") {
		t.Error("empty grid should explain there are no recipes")
	}
}
