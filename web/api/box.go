package api

import (
	"errors"
	"net/http"
	"strings"

	"mealbox/models"
	"mealbox/selection"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// BoxChange is returned by the add and remove endpoints
type BoxChange struct {
	RecipeID string            `json:"recipe_id"`
	Quantity int               `json:"quantity"`
	Box      models.BoxSummary `json:"box"`
}

// GetBox handles GET /api/v1/box
// Clients sending "Accept: application/msgpack" receive the summary msgpack-encoded.
func GetBox(ctx rweb.Context) error {
	sum, err := loadSummary(getSessionID(ctx))
	if err != nil {
		logger.LogErr(err, "failed to load box")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	if strings.Contains(HeaderValue(ctx, "Accept"), models.MsgPackContentType) {
		data, err := models.EncodeBoxSummary(sum)
		if err != nil {
			logger.LogErr(err, "failed to encode box")
			return writeError(ctx, http.StatusInternalServerError, "encoding error")
		}
		ctx.Response().SetHeader("Content-Type", models.MsgPackContentType)
		return ctx.Bytes(data)
	}

	return writeSuccess(ctx, http.StatusOK, sum)
}

// AddToBox handles POST /api/v1/box/recipes/:id
// Adds one unit. 409 when the box is full or the recipe is at its limit.
func AddToBox(ctx rweb.Context) error {
	sessionID := getSessionID(ctx)
	recipeID, err := PathID(ctx)
	if err != nil || recipeID == "" {
		return writeError(ctx, http.StatusBadRequest, "recipe id is required")
	}

	qty, err := models.AddToBox(sessionID, recipeID, opts.Plan)
	switch {
	case errors.Is(err, models.ErrRecipeNotFound):
		return writeError(ctx, http.StatusNotFound, models.ErrRecipeNotFound.Error())
	case errors.Is(err, selection.ErrBoxFull), errors.Is(err, selection.ErrRecipeLimit):
		return writeError(ctx, http.StatusConflict, err.Error())
	case err != nil:
		logger.LogErr(err, "failed to add to box", "recipe_id", recipeID)
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	logger.Debug("Recipe added to box", "recipe_id", recipeID, "quantity", qty)
	return respondChange(ctx, sessionID, recipeID, qty)
}

// RemoveFromBox handles DELETE /api/v1/box/recipes/:id
// Removes one unit; removing a recipe that is not in the box is a no-op.
func RemoveFromBox(ctx rweb.Context) error {
	sessionID := getSessionID(ctx)
	recipeID, err := PathID(ctx)
	if err != nil || recipeID == "" {
		return writeError(ctx, http.StatusBadRequest, "recipe id is required")
	}

	qty, err := models.RemoveFromBox(sessionID, recipeID)
	if err != nil {
		logger.LogErr(err, "failed to remove from box", "recipe_id", recipeID)
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	return respondChange(ctx, sessionID, recipeID, qty)
}

// ClearBox handles DELETE /api/v1/box
func ClearBox(ctx rweb.Context) error {
	sessionID := getSessionID(ctx)
	if err := models.ClearBox(sessionID); err != nil {
		logger.LogErr(err, "failed to clear box")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	sum, err := loadSummary(sessionID)
	if err != nil {
		logger.LogErr(err, "failed to load box")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}
	return writeSuccess(ctx, http.StatusOK, sum)
}

func respondChange(ctx rweb.Context, sessionID, recipeID string, qty int) error {
	sum, err := loadSummary(sessionID)
	if err != nil {
		logger.LogErr(err, "failed to load box")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}
	return writeSuccess(ctx, http.StatusOK, BoxChange{RecipeID: recipeID, Quantity: qty, Box: sum})
}

func loadSummary(sessionID string) (models.BoxSummary, error) {
	_, _, sum, err := models.LoadBox(sessionID, opts.Plan, opts.Pricing)
	return sum, err
}
