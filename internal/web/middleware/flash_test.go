package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidhawk/rconpanel/internal/web/templates/layout"
)

// flashCapture runs a request through the Flash middleware and reports
// what GetFlash saw, plus the recorder for cookie inspection.
func flashCapture(t *testing.T, cookieValue string) (*layout.FlashMessage, *httptest.ResponseRecorder) {
	t.Helper()

	var captured *layout.FlashMessage
	handler := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetFlash(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: flashCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return captured, rec
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, layout.FlashError, "Invalid username or password!")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flashCookieName, cookies[0].Name)

	flash, _ := flashCapture(t, cookies[0].Value)
	require.NotNil(t, flash)
	assert.Equal(t, layout.FlashError, flash.Kind)
	assert.Equal(t, "Invalid username or password!", flash.Message)
}

func TestFlashClearedAfterRead(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, layout.FlashSuccess, "Welcome back, admin!")
	value := rec.Result().Cookies()[0].Value

	_, readRec := flashCapture(t, value)

	cookies := readRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flashCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestFlashAbsent(t *testing.T) {
	flash, rec := flashCapture(t, "")
	assert.Nil(t, flash)
	assert.Empty(t, rec.Result().Cookies())
}

func TestFlashUnknownKindDegradesToInfo(t *testing.T) {
	flash, _ := flashCapture(t, "shouting:hello")
	require.NotNil(t, flash)
	assert.Equal(t, layout.FlashInfo, flash.Kind)
	assert.Equal(t, "hello", flash.Message)
}

func TestFlashValueWithoutKind(t *testing.T) {
	flash, _ := flashCapture(t, "just a message")
	require.NotNil(t, flash)
	assert.Equal(t, layout.FlashInfo, flash.Kind)
	assert.Equal(t, "just a message", flash.Message)
}
