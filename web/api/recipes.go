package api

import (
	"net/http"

	"mealbox/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// ListRecipes handles GET /api/v1/recipes
// Returns the menu in display order.
func ListRecipes(ctx rweb.Context) error {
	recipes, err := models.ListRecipes()
	if err != nil {
		logger.LogErr(err, "failed to list recipes")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	outputs := make([]models.RecipeOutput, len(recipes))
	for i, r := range recipes {
		outputs[i] = r.ToOutput()
	}
	return writeSuccess(ctx, http.StatusOK, outputs)
}

// GetRecipe handles GET /api/v1/recipes/:id
func GetRecipe(ctx rweb.Context) error {
	id, err := PathID(ctx)
	if err != nil || id == "" {
		return writeError(ctx, http.StatusBadRequest, "recipe id is required")
	}

	recipe, err := models.GetRecipe(id)
	if err != nil {
		logger.LogErr(err, "failed to get recipe", "recipe_id", id)
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}
	if recipe == nil {
		return writeError(ctx, http.StatusNotFound, models.ErrRecipeNotFound.Error())
	}

	return writeSuccess(ctx, http.StatusOK, recipe.ToOutput())
}
