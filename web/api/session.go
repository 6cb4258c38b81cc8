package api

import (
	"net/http"

	"mealbox/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// SessionResponse carries the token API clients send as a Bearer token
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// CreateSession handles POST /api/v1/session
// Returns a token for the caller's session, issuing a new session when none was presented.
func CreateSession(ctx rweb.Context) error {
	sessionID := getSessionID(ctx)

	token, _ := ctx.Get("session_token").(string)
	if token == "" {
		var err error
		if token, err = models.GenerateSessionToken(sessionID); err != nil {
			logger.LogErr(err, "failed to issue session token")
			return writeError(ctx, http.StatusInternalServerError, "failed to issue session")
		}
	}

	return writeSuccess(ctx, http.StatusCreated, SessionResponse{SessionID: sessionID, Token: token})
}
