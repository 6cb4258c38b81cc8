package web_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mealbox/config"
	"mealbox/models"
	"mealbox/web"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

const (
	testSecret     = "test-secret-key-for-jwt-testing-32chars"
	baseURL        = "http://localhost:8018"
	limitedBaseURL = "http://localhost:8019"
	limitedRate    = 2
)

var (
	serverOnce sync.Once
	serverErr  error
	serverDir  string

	limitedOnce sync.Once
)

func intPtr(v int) *int { return &v }

func startServer() error {
	serverOnce.Do(func() {
		serverDir, serverErr = os.MkdirTemp("", "mealbox-web-test")
		if serverErr != nil {
			return
		}
		if serverErr = models.InitTestDB(filepath.Join(serverDir, "test.ddb")); serverErr != nil {
			return
		}
		if serverErr = models.InitJWT(testSecret, time.Hour); serverErr != nil {
			return
		}
		serverErr = models.SeedMenu([]models.RecipeInput{
			{ID: "r-salmon", Name: "Crispy Skin Salmon", Headline: "with lemon potatoes", Image: "/salmon.svg", Yields: 2},
			{ID: "r-steak", Name: "Seared Steak", Headline: "with green beans", Image: "/steak.svg", Yields: 4, ExtraCharge: intPtr(1798)},
			{ID: "r tofu", Name: "Sesame Tofu", Headline: "with jasmine rice", Image: "/tofu.svg", Yields: 2},
		})
		if serverErr != nil {
			return
		}

		cfg := config.Default()
		cfg.Server.Address = ":8018"
		cfg.Server.Verbose = false
		cfg.Server.RateLimit = 0
		cfg.Session.JWTSecret = testSecret

		srv := web.NewServer(cfg)
		go func() {
			srv.Run()
		}()
		time.Sleep(100 * time.Millisecond)
	})
	return serverErr
}

// startLimitedServer serves the same data with a tight rate limit
func startLimitedServer() error {
	if err := startServer(); err != nil {
		return err
	}
	limitedOnce.Do(func() {
		cfg := config.Default()
		cfg.Server.Address = ":8019"
		cfg.Server.Verbose = false
		cfg.Server.RateLimit = limitedRate
		cfg.Session.JWTSecret = testSecret

		srv := web.NewServer(cfg)
		go func() {
			srv.Run()
		}()
		time.Sleep(100 * time.Millisecond)
	})
	return nil
}

func TestMain(m *testing.M) {
	code := m.Run()
	models.CloseDB()
	if serverDir != "" {
		os.RemoveAll(serverDir)
	}
	os.Exit(code)
}

// browser keeps one session and does not follow redirects
type browser struct {
	client *http.Client
	base   string
	token  string
}

func newBrowser(t *testing.T) *browser {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if err := startServer(); err != nil {
		t.Fatalf("failed to start test server: %v", err)
	}

	return &browser{
		base: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (br *browser) do(t *testing.T, method, path string, htmx bool) (*http.Response, *html.Node) {
	t.Helper()

	hdr := http.Header{}
	if htmx {
		hdr.Set("HX-Request", "true")
	}
	return br.doWith(t, method, path, hdr)
}

// doWith sends hdr as given, keeping the caller's header key spelling on the wire
func (br *browser) doWith(t *testing.T, method, path string, hdr http.Header) (*http.Response, *html.Node) {
	t.Helper()

	req, err := http.NewRequest(method, br.base+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	for k, v := range hdr {
		req.Header[k] = v
	}
	if br.token != "" {
		req.Header.Set("Authorization", "Bearer "+br.token)
	}

	resp, err := br.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if tok := resp.Header.Get(web.SessionTokenHeader); tok != "" && br.token == "" {
		br.token = tok
	}

	doc, err := htmlquery.Parse(resp.Body)
	if err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp, doc
}

func TestMenuPage(t *testing.T) {
	br := newBrowser(t)

	resp, doc := br.do(t, "GET", "/", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if br.token == "" {
		t.Error("expected a session token to be issued")
	}

	cards := htmlquery.Find(doc, `//div[@data-testid="recipe-card"]`)
	if len(cards) != 3 {
		t.Fatalf("expected 3 recipe cards, got %d", len(cards))
	}
	if htmlquery.FindOne(doc, `//aside[@id="box-summary"]`) == nil {
		t.Error("expected the box summary")
	}
	if n := htmlquery.FindOne(doc, `//div[@id="recipe-r-steak"]//span[contains(@class,"recipe-card__extra-charge")]`); n == nil ||
		!strings.Contains(htmlquery.InnerText(n), "$17.98") {
		t.Error("expected the steak card to show its extra charge")
	}
	if htmlquery.FindOne(doc, `//div[@id="recipe-r-steak"]//img[@src="/static/img/steak.svg"]`) == nil {
		t.Error("expected the image under the public URL")
	}
}

func TestCardActionHTMX(t *testing.T) {
	br := newBrowser(t)
	br.do(t, "GET", "/", false)

	resp, doc := br.do(t, "POST", web.BoxActionPath+"/r-steak/increment", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if htmlquery.FindOne(doc, `//main[@id="recipe-grid"]`) == nil {
		t.Fatal("expected the recipe grid in the partial")
	}
	if htmlquery.FindOne(doc, `//aside[@id="box-summary"][@hx-swap-oob="true"]`) == nil {
		t.Error("expected an out-of-band summary")
	}

	counter := htmlquery.FindOne(doc, `//div[@id="recipe-r-steak"]//p[@data-testid="counter-container"]`)
	if counter == nil || htmlquery.InnerText(counter) != "1 in your box" {
		t.Fatalf("expected steak counter of 1, got %v", counter)
	}
	if htmlquery.FindOne(doc, `//div[@id="recipe-r-steak"]//*[text()="(4 servings)"]`) == nil {
		t.Error("expected 4 servings for one steak")
	}
	if htmlquery.FindOne(doc, `//div[@id="recipe-r-salmon"]//div[@data-testid="unselected-footer"]`) == nil {
		t.Error("expected salmon to stay unselected")
	}

	_, doc = br.do(t, "POST", web.BoxActionPath+"/r-steak/decrement", true)
	if htmlquery.FindOne(doc, `//div[@id="recipe-r-steak"]//div[@data-testid="unselected-footer"]`) == nil {
		t.Error("expected steak to return to the unselected footer")
	}
}

func TestCardActionLimitReached(t *testing.T) {
	br := newBrowser(t)
	br.do(t, "GET", "/", false)

	var (
		resp *http.Response
		doc  *html.Node
	)
	for i := 0; i < 3; i++ {
		resp, doc = br.do(t, "POST", web.BoxActionPath+"/r-salmon/increment", true)
		if got := resp.Header.Get(web.BoxErrorHeader); got != "" {
			t.Fatalf("add %d refused: %s", i+1, got)
		}
	}

	inc := htmlquery.FindOne(doc, `//div[@id="recipe-r-salmon"]//button[@data-testid="increase-quantity"]`)
	if inc == nil || htmlquery.SelectAttr(inc, "disabled") == "" {
		t.Error("expected increment to be disabled at the selection limit")
	}

	resp, doc = br.do(t, "POST", web.BoxActionPath+"/r-salmon/increment", true)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if resp.Header.Get(web.BoxErrorHeader) == "" {
		t.Error("expected the refusal reason header")
	}
	counter := htmlquery.FindOne(doc, `//div[@id="recipe-r-salmon"]//p[@data-testid="counter-container"]`)
	if counter == nil || htmlquery.InnerText(counter) != "3 in your box" {
		t.Error("expected the quantity to stay at 3")
	}
}

func TestCardActionErrors(t *testing.T) {
	br := newBrowser(t)
	br.do(t, "GET", "/", false)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown recipe", web.BoxActionPath + "/r-missing/increment", http.StatusNotFound},
		{"unknown action", web.BoxActionPath + "/r-salmon/explode", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := br.do(t, "POST", tt.path, true)
			if resp.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestCardActionWithoutHTMXRedirects(t *testing.T) {
	br := newBrowser(t)
	br.do(t, "GET", "/", false)

	resp, _ := br.do(t, "POST", web.BoxActionPath+"/r-salmon/increment", false)
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestCardActionHTMXHeaderAnyCase(t *testing.T) {
	for _, key := range []string{"HX-Request", "Hx-Request", "hx-request"} {
		t.Run(key, func(t *testing.T) {
			br := newBrowser(t)
			br.do(t, "GET", "/", false)

			resp, doc := br.doWith(t, "POST", web.BoxActionPath+"/r-salmon/increment",
				http.Header{key: []string{"true"}})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
			}
			if htmlquery.FindOne(doc, `//main[@id="recipe-grid"]`) == nil {
				t.Error("expected the partial instead of a redirect")
			}
		})
	}
}

func TestCardActionEscapedID(t *testing.T) {
	br := newBrowser(t)
	br.do(t, "GET", "/", false)

	resp, doc := br.do(t, "POST", web.BoxActionPath+"/r%20tofu/increment", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	counter := htmlquery.FindOne(doc, `//div[@id="recipe-r tofu"]//p[@data-testid="counter-container"]`)
	if counter == nil || htmlquery.InnerText(counter) != "1 in your box" {
		t.Error("expected the tofu counter to read 1")
	}
}

func TestRateLimitIsPerSession(t *testing.T) {
	first := newBrowser(t)
	if err := startLimitedServer(); err != nil {
		t.Fatalf("failed to start limited server: %v", err)
	}
	second := newBrowser(t)
	first.base, second.base = limitedBaseURL, limitedBaseURL

	first.do(t, "GET", "/", false)
	second.do(t, "GET", "/", false)
	if first.token == "" || second.token == "" {
		t.Fatal("expected both browsers to hold a session")
	}

	// Both browsers share one address, so only the session tells them apart
	for i := 0; i < limitedRate; i++ {
		resp, _ := first.do(t, "POST", web.BoxActionPath+"/r-salmon/decrement", true)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected status %d, got %d", i+1, http.StatusOK, resp.StatusCode)
		}
	}
	resp, _ := first.do(t, "POST", web.BoxActionPath+"/r-salmon/decrement", true)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status %d once over the limit, got %d", http.StatusTooManyRequests, resp.StatusCode)
	}

	resp, _ = second.do(t, "POST", web.BoxActionPath+"/r-salmon/decrement", true)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("another session should keep its own budget, got status %d", resp.StatusCode)
	}
}

func TestStaticAssets(t *testing.T) {
	newBrowser(t)

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/static/css/app.css", http.StatusOK, "text/css; charset=utf-8"},
		{"/static/img/steak.svg", http.StatusOK, "image/svg+xml"},
		{"/favicon.ico", http.StatusOK, "image/svg+xml"},
		{"/static/img/missing.svg", http.StatusNotFound, ""},
		{"/static/js/app.js", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(baseURL + tt.path)
			if err != nil {
				t.Fatalf("GET %s failed: %v", tt.path, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.StatusCode)
			}
			if tt.contentType != "" && resp.Header.Get("Content-Type") != tt.contentType {
				t.Errorf("expected content type %q, got %q", tt.contentType, resp.Header.Get("Content-Type"))
			}
		})
	}
}
