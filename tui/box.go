package tui

import (
	"encoding/json"
	"net/url"

	"mealbox/models"
	"mealbox/price"
	"mealbox/selection"

	"github.com/prongbang/callx"
	"github.com/rohanthewiz/serr"
)

// Snapshot is one consistent view of the menu and a box
type Snapshot struct {
	Recipes    []models.Recipe
	Quantities map[string]int
	Summary    models.BoxSummary
}

// Box is the store the terminal client edits
type Box interface {
	Load() (Snapshot, error)
	Add(recipeID string) error
	Remove(recipeID string) error
}

// LocalBox edits a session's box directly in the database.
// The models package must be initialized.
type LocalBox struct {
	SessionID string
	Plan      selection.Plan
	Pricing   price.Pricing
}

func (l LocalBox) Load() (Snapshot, error) {
	recs, quantities, sum, err := models.LoadBox(l.SessionID, l.Plan, l.Pricing)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Recipes: recs, Quantities: quantities, Summary: sum}, nil
}

func (l LocalBox) Add(recipeID string) error {
	_, err := models.AddToBox(l.SessionID, recipeID, l.Plan)
	return err
}

func (l LocalBox) Remove(recipeID string) error {
	_, err := models.RemoveFromBox(l.SessionID, recipeID)
	return err
}

// RemoteBox edits a box through a running server's JSON API
type RemoteBox struct {
	client callx.CallX
	token  string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// NewRemoteBox opens a session on the server at baseURL.
// A non-empty token resumes an existing session.
func NewRemoteBox(baseURL, token string) (*RemoteBox, error) {
	rb := &RemoteBox{
		client: callx.New(callx.Config{
			BaseURL: baseURL,
			Timeout: 10,
		}),
		token: token,
	}

	var sess struct {
		Token string `json:"token"`
	}
	if err := rb.call("POST", "/api/v1/session", &sess); err != nil {
		return nil, serr.Wrap(err, "failed to open session")
	}
	rb.token = sess.Token
	return rb, nil
}

// Token is the session token, for resuming later
func (rb *RemoteBox) Token() string {
	return rb.token
}

func (rb *RemoteBox) Load() (Snapshot, error) {
	var snap Snapshot

	var outputs []models.RecipeOutput
	if err := rb.call("GET", "/api/v1/recipes", &outputs); err != nil {
		return snap, serr.Wrap(err, "failed to load recipes")
	}
	if err := rb.call("GET", "/api/v1/box", &snap.Summary); err != nil {
		return snap, serr.Wrap(err, "failed to load box")
	}

	snap.Recipes = make([]models.Recipe, len(outputs))
	for i, out := range outputs {
		snap.Recipes[i] = models.RecipeFromOutput(out, i+1)
	}
	snap.Quantities = make(map[string]int, len(snap.Summary.Items))
	for _, item := range snap.Summary.Items {
		snap.Quantities[item.RecipeID] = item.Quantity
	}
	return snap, nil
}

func (rb *RemoteBox) Add(recipeID string) error {
	return rb.call("POST", "/api/v1/box/recipes/"+url.PathEscape(recipeID), nil)
}

func (rb *RemoteBox) Remove(recipeID string) error {
	return rb.call("DELETE", "/api/v1/box/recipes/"+url.PathEscape(recipeID), nil)
}

// call performs one API request and decodes the envelope's data into out.
// Refused adds come back as the selection sentinels.
func (rb *RemoteBox) call(method, path string, out interface{}) error {
	header := callx.Header{"Accept": "application/json"}
	if rb.token != "" {
		header["Authorization"] = "Bearer " + rb.token
	}

	resp := rb.client.Req(callx.Custom{
		URL:    path,
		Method: method,
		Header: header,
	})

	var env envelope
	if err := json.Unmarshal(resp.Data, &env); err != nil {
		return serr.Wrap(err, "invalid response from "+path)
	}
	if resp.Code >= 400 || !env.Success {
		return remoteError(env.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return serr.Wrap(err, "failed to decode "+path)
	}
	return nil
}

func remoteError(msg string) error {
	for _, sentinel := range []error{selection.ErrBoxFull, selection.ErrRecipeLimit, models.ErrRecipeNotFound} {
		if msg == sentinel.Error() {
			return sentinel
		}
	}
	if msg == "" {
		msg = "request failed"
	}
	return serr.New(msg)
}
