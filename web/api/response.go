package api

import (
	"mealbox/price"
	"mealbox/selection"

	"github.com/rohanthewiz/rweb"
)

// APIResponse provides a consistent JSON response structure for all API endpoints.
// Success responses include data, error responses include an error message.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Options are the box rules and prices the handlers apply
type Options struct {
	Plan    selection.Plan
	Pricing price.Pricing
}

var opts = Options{Plan: selection.DefaultPlan()}

// Configure sets the options used by every handler. Call before serving.
func Configure(o Options) {
	opts = o
}

func writeSuccess(ctx rweb.Context, status int, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: true, Data: data})
}

func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Error: message})
}

// getSessionID reads the session set by the session middleware
func getSessionID(ctx rweb.Context) string {
	id, _ := ctx.Get("session_id").(string)
	return id
}
