package factory

import (
	"time"

	"github.com/voidhawk/rconpanel/internal/dependencies/mocks"
	"github.com/voidhawk/rconpanel/internal/services/auth"
	"github.com/voidhawk/rconpanel/internal/storage/memory"
	"github.com/voidhawk/rconpanel/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock controls time in tests
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Auth is disabled, matching the default open-panel configuration.
func NewTestApp() *TestApp {
	return NewTestAppWithAuth(auth.DefaultConfig())
}

// NewTestAppWithAuth creates a test App with the given auth configuration
func NewTestAppWithAuth(authCfg auth.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
