package models_test

import (
	"path/filepath"
	"testing"

	"mealbox/models"
)

// setupTestDB initializes a clean test database for each test
func setupTestDB(t *testing.T) func() {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test_mealbox.ddb")
	if err := models.InitTestDB(path); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	return func() {
		models.CloseDB()
	}
}

func intPtr(v int) *int { return &v }

// seedRecipes stores a small menu used across box tests
func seedRecipes(t *testing.T) {
	t.Helper()

	menu := []models.RecipeInput{
		{ID: "r-salmon", Name: "Crispy Salmon", Headline: "with lemon butter", Image: "/salmon.jpg", Yields: 2, Position: 1},
		{ID: "r-steak", Name: "Ribeye Steak", Headline: "with garlic mash", Image: "/steak.jpg", Yields: 4, ExtraCharge: intPtr(1798), Position: 2},
		{ID: "r-tofu", Name: "Sesame Tofu", Headline: "with jasmine rice", Image: "/tofu.jpg", Yields: 2, Position: 3},
	}
	if err := models.SeedMenu(menu); err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}
}
