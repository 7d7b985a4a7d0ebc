package http

import (
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/collabcode/collabcode-server/internal/ai"
	"github.com/collabcode/collabcode-server/internal/config"
	"github.com/collabcode/collabcode-server/internal/core"
	"github.com/collabcode/collabcode-server/internal/store"
	"github.com/collabcode/collabcode-server/internal/store/sqlite"
)

// createTestStore creates an in-memory SQLite store with the schema applied.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// startTestServer wires a full server over an in-memory store and the mock
// text provider, returning the httptest server and the store for seeding.
func startTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	st := createTestStore(t)
	logger := zerolog.New(nil)

	registry := core.NewRegistry()
	session := core.NewSession(registry, st, &logger)

	cfg := config.Default()
	cfg.Addr = ":0"

	server := NewServer(session, st, ai.NewMock(), cfg, &logger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, st
}
