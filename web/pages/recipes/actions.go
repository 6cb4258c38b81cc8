package recipes

import (
	"net/url"
	"strings"

	"github.com/rohanthewiz/serr"
)

// Action is a control activation on a card
type Action string

const (
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
)

// ParseAction maps the last segment of a control URL to an Action
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(s)) {
	case ActionIncrement:
		return ActionIncrement, nil
	case ActionDecrement:
		return ActionDecrement, nil
	}
	return "", serr.New("unknown card action: " + s)
}

// ActionURL is where a card control posts: <base>/<escaped id>/<action>
func ActionURL(base, recipeID string, action Action) string {
	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(recipeID) + "/" + string(action)
}

// Callbacks are the owner's handlers for card activations. Both are
// fire-and-forget; the card never reads a result.
type Callbacks struct {
	OnIncrement func(id string)
	OnDecrement func(id string)
}

// Dispatch invokes the callback for action exactly once with id
func (cb Callbacks) Dispatch(action Action, id string) error {
	var fn func(string)
	switch action {
	case ActionIncrement:
		fn = cb.OnIncrement
	case ActionDecrement:
		fn = cb.OnDecrement
	default:
		return serr.New("unknown card action: " + string(action))
	}

	if fn == nil {
		return serr.New("no callback registered for " + string(action))
	}
	fn(id)
	return nil
}
