package web_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/voidhawk/rconpanel/internal/factory"
	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/services/auth"
	"github.com/voidhawk/rconpanel/internal/web"
	"github.com/voidhawk/rconpanel/internal/web/handler"
)

// webTestServer provides a test server for panel testing
type webTestServer struct {
	t          *testing.T
	handler    http.Handler
	app        *factory.TestApp
	cookies    *cookieJar
	loginLimit rate.Limit
	loginBurst int
	remoteAddr string
}

// newWebTestServer creates a test server with the panel open (no auth)
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()
	return newWebTestServerWithAuth(t, auth.DefaultConfig())
}

// newWebTestServerWithAuth creates a test server with the given auth config
func newWebTestServerWithAuth(t *testing.T, authCfg auth.Config) *webTestServer {
	t.Helper()

	ts := &webTestServer{
		t:       t,
		app:     factory.NewTestAppWithAuth(authCfg),
		cookies: newCookieJar(),
	}
	ts.rebuildRouter()
	return ts
}

// rebuildRouter recreates the handler after a test swaps app components
func (ts *webTestServer) rebuildRouter() {
	ts.handler = web.NewRouter(web.RouterConfig{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		BansService:    ts.app.BansService,
		AuthService:    ts.app.AuthService,
		LoginRateLimit: ts.loginLimit,
		LoginBurst:     ts.loginBurst,
		Panel: handler.PanelInfo{
			TabTitle:   "Test Panel",
			GameName:   "Test Game",
			ServerName: "Test Server",
		},
	})
}

// setLoginRateLimit rebuilds the router with a tight login limiter
func (ts *webTestServer) setLoginRateLimit(limit rate.Limit, burst int) {
	ts.loginLimit = limit
	ts.loginBurst = burst
	ts.rebuildRouter()
}

// failingStorage errors on every operation
type failingStorage struct{}

var errStorageDown = errors.New("storage down")

func (failingStorage) SaveBan(context.Context, *model.BannedPlayer) error {
	return errStorageDown
}

func (failingStorage) ListBans(context.Context) ([]*model.BannedPlayer, error) {
	return nil, errStorageDown
}

func (failingStorage) DeleteBan(context.Context, string) error {
	return errStorageDown
}

func (failingStorage) IsBanned(context.Context, string) (bool, error) {
	return false, errStorageDown
}

// seedRoster adds players to the live roster as a host would
func (ts *webTestServer) seedRoster(players ...model.Player) {
	ts.t.Helper()
	for _, player := range players {
		ts.app.Roster.Add(player)
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if ts.remoteAddr != "" {
		req.RemoteAddr = ts.remoteAddr
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// banPlayer submits the ban form and asserts the re-rendered page comes back
func (ts *webTestServer) banPlayer(uniqueID, name string) {
	ts.t.Helper()
	form := url.Values{"unique_id": {uniqueID}, "name": {name}}
	rr := ts.post("/ban_player", form)
	require.Equal(ts.t, http.StatusOK, rr.Code, "Expected 200 with re-rendered page after ban")
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// hashPassword hashes with the cheapest cost to keep tests fast
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["rconpanel_session"]
	return ok
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

// assertNotContainsText asserts that elements matching the selector do not contain the text
func assertNotContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	if strings.Contains(doc.Find(selector).Text(), text) {
		t.Errorf("Expected element %q NOT to contain %q", selector, text)
	}
}
