package web

import (
	"errors"
	"net/http"

	"mealbox/config"
	"mealbox/models"
	"mealbox/price"
	"mealbox/selection"
	"mealbox/web/api"
	"mealbox/web/pages/menu"
	"mealbox/web/pages/recipes"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// BoxErrorHeader carries the reason an add was refused on HTMX responses
const BoxErrorHeader = "X-Box-Error"

// boxHandler serves the menu page and the card controls for one configuration
type boxHandler struct {
	plan      selection.Plan
	pricing   price.Pricing
	publicURL string
}

func newBoxHandler(cfg config.Config) *boxHandler {
	return &boxHandler{
		plan:      cfg.Plan,
		pricing:   cfg.Pricing,
		publicURL: cfg.Server.PublicURL,
	}
}

// MenuPage handles GET /
func (h *boxHandler) MenuPage(ctx rweb.Context) error {
	m, err := h.loadMenu(getSessionID(ctx))
	if err != nil {
		logger.LogErr(err, "failed to load menu")
		ctx.SetStatus(http.StatusInternalServerError)
		return ctx.WriteHTML("<p>Menu unavailable</p>")
	}

	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(menu.NewPage(m).Render())
}

// CardAction handles POST /box/recipes/:id/:action from the card controls.
// HTMX requests get the grid back with an out-of-band summary; plain form
// posts are redirected to the menu.
func (h *boxHandler) CardAction(ctx rweb.Context) error {
	sessionID := getSessionID(ctx)

	action, err := recipes.ParseAction(ctx.Request().Param("action"))
	if err != nil {
		ctx.SetStatus(http.StatusBadRequest)
		return ctx.WriteHTML("<p>Unknown action</p>")
	}

	recipeID, err := api.PathID(ctx)
	if err != nil || recipeID == "" {
		ctx.SetStatus(http.StatusBadRequest)
		return ctx.WriteHTML("<p>Invalid recipe</p>")
	}

	var opErr error
	callbacks := recipes.Callbacks{
		OnIncrement: func(id string) {
			_, opErr = models.AddToBox(sessionID, id, h.plan)
		},
		OnDecrement: func(id string) {
			_, opErr = models.RemoveFromBox(sessionID, id)
		},
	}
	if err := callbacks.Dispatch(action, recipeID); err != nil {
		ctx.SetStatus(http.StatusBadRequest)
		return ctx.WriteHTML("<p>Unknown action</p>")
	}

	switch {
	case opErr == nil:
	case errors.Is(opErr, models.ErrRecipeNotFound):
		ctx.SetStatus(http.StatusNotFound)
		return ctx.WriteHTML("<p>Recipe not found</p>")
	case errors.Is(opErr, selection.ErrBoxFull), errors.Is(opErr, selection.ErrRecipeLimit):
		logger.Debug("Add refused", "recipe_id", recipeID, "reason", opErr.Error())
		ctx.Response().SetHeader(BoxErrorHeader, opErr.Error())
	default:
		logger.LogErr(opErr, "box update failed", "recipe_id", recipeID, "action", string(action))
		ctx.SetStatus(http.StatusInternalServerError)
		return ctx.WriteHTML("<p>Something went wrong</p>")
	}

	if !isHTMX(ctx) {
		return ctx.Redirect(http.StatusSeeOther, "/")
	}

	m, err := h.loadMenu(sessionID)
	if err != nil {
		logger.LogErr(err, "failed to load menu")
		ctx.SetStatus(http.StatusInternalServerError)
		return ctx.WriteHTML("<p>Menu unavailable</p>")
	}
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(m.Partial())
}

func (h *boxHandler) loadMenu(sessionID string) (menu.Menu, error) {
	recs, quantities, sum, err := models.LoadBox(sessionID, h.plan, h.pricing)
	if err != nil {
		return menu.Menu{}, serr.Wrap(err, "failed to load box")
	}
	return menu.Menu{
		Recipes:    recs,
		Quantities: quantities,
		Plan:       h.plan,
		Summary:    sum,
		PublicURL:  h.publicURL,
		ActionPath: BoxActionPath,
	}, nil
}

// isHTMX reports whether htmx issued the request
func isHTMX(ctx rweb.Context) bool {
	return api.HeaderValue(ctx, "HX-Request") != ""
}
