package web

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"mealbox/models"
	"mealbox/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

const (
	// SessionCookie holds the signed session token for browsers
	SessionCookie = "mealbox_session"
	// SessionTokenHeader returns a freshly issued token to API clients
	SessionTokenHeader = "X-Session-Token"
)

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, HX-Request, HX-Target")
	c.Response().SetHeader("Access-Control-Expose-Headers", SessionTokenHeader+", "+BoxErrorHeader)

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware identifies the box owner.
// A valid token from the Authorization header or the session cookie is reused;
// otherwise a new session is issued, set as a cookie and echoed in X-Session-Token.
func SessionMiddleware(c rweb.Context) error {
	if sessionID := sessionFromRequest(c); sessionID != "" {
		c.Set("session_id", sessionID)
		return c.Next()
	}

	sessionID := models.NewSessionID()
	token, err := models.GenerateSessionToken(sessionID)
	if err != nil {
		logger.LogErr(err, "failed to issue session token")
	} else {
		if err = c.SetCookie(SessionCookie, token); err != nil {
			logger.LogErr(err, "failed to set session cookie")
		}
		c.Response().SetHeader(SessionTokenHeader, token)
		c.Set("session_token", token)
	}

	c.Set("session_id", sessionID)
	return c.Next()
}

// sessionFromRequest returns the session id of a valid presented token, or ""
func sessionFromRequest(c rweb.Context) string {
	authHeader := api.HeaderValue(c, "Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if id, err := models.ValidateSessionToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
			return id
		}
	}

	token, err := c.GetCookie(SessionCookie)
	if err != nil || token == "" {
		return ""
	}
	// Don't log every invalid token attempt
	id, err := models.ValidateSessionToken(token)
	if err != nil {
		return ""
	}
	return id
}

func getSessionID(c rweb.Context) string {
	id, _ := c.Get("session_id").(string)
	return id
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("X-XSS-Protection", "1; mode=block")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// htmx comes from unpkg
	csp := []string{
		"default-src 'self'",
		"script-src 'self' https://unpkg.com",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// RateLimitMiddleware limits box changes per client.
// Clients are told apart by their session, so browsers behind one proxy do not share a budget.
func RateLimitMiddleware(requestsPerMinute int) rweb.Handler {
	limiter := newRateLimiter(requestsPerMinute, time.Minute)

	return func(c rweb.Context) error {
		if c.Request().Method() != "POST" && c.Request().Method() != "DELETE" {
			return c.Next()
		}

		key := rateLimitKey(c)
		if !limiter.allow(key, time.Now()) {
			logger.Info("Rate limit exceeded", "client", key)
			c.SetStatus(http.StatusTooManyRequests)
			return nil
		}
		return c.Next()
	}
}

// rateLimitKey names the client a request is counted against: its presented
// session, or its forwarded address when the session was only just issued
func rateLimitKey(c rweb.Context) string {
	if _, issued := c.Get("session_token").(string); !issued {
		if id := getSessionID(c); id != "" {
			return "session:" + id
		}
	}

	ip := clientIP(c)
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func clientIP(c rweb.Context) string {
	if fwd := api.HeaderValue(c, "X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return api.HeaderValue(c, "X-Real-IP")
}

type visitor struct {
	windowStart time.Time
	count       int
}

// rateLimiter counts requests per key in fixed windows
type rateLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{limit: limit, window: window, visitors: make(map[string]*visitor)}
}

// allow records one request for key and reports whether it is within the limit
func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, v := range l.visitors {
		if now.Sub(v.windowStart) >= l.window {
			delete(l.visitors, k)
		}
	}

	v, exists := l.visitors[key]
	if !exists {
		l.visitors[key] = &visitor{windowStart: now, count: 1}
		return l.limit > 0
	}
	v.count++
	return v.count <= l.limit
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"ip", clientIP(c),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
