package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/notifications"

	"github.com/stretchr/testify/require"
)

// recordingPublisher keeps every event it is given.
type recordingPublisher struct {
	notifications.NopPublisher
	mu     sync.Mutex
	events []notifications.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                      "test",
		Port:                     "0",
		BodyLimitMB:              1,
		DBDriver:                 config.DriverSQLite,
		DBSQLitePath:             ":memory:",
		DBMaxOpenConns:           1,
		DBMaxIdleConns:           1,
		DBConnMaxLifetimeMinutes: 60,
		EventsBackend:            config.EventsNone,
	}
}

// newTestServer returns a server backed by a private in-memory sqlite database.
func newTestServer(t *testing.T) (*Server, *recordingPublisher) {
	t.Helper()
	cfg := testConfig()
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	pub := &recordingPublisher{}
	s, err := NewServerWithDeps(cfg, db, pub)
	require.NoError(t, err)
	return s, pub
}

// doJSON performs a request against the app and decodes the JSON response into out when non-nil.
func doJSON(t *testing.T, s *Server, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

func mustCreatePost(t *testing.T, s *Server, body map[string]interface{}) postJSON {
	t.Helper()
	var p postJSON
	status := doJSON(t, s, http.MethodPost, "/api/posts", body, &p)
	require.Equal(t, http.StatusOK, status)
	return p
}

func parseTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, value)
	require.NoError(t, err)
	return ts
}

type commentJSON struct {
	ID           uint    `json:"id"`
	PostID       uint    `json:"postId"`
	Username     *string `json:"username"`
	UserImageURL *string `json:"userImageUrl"`
	Content      *string `json:"content"`
	ImageURL     *string `json:"imageUrl"`
	VideoURL     *string `json:"videoUrl"`
	LikeCount    int     `json:"likeCount"`
}

type postJSON struct {
	ID           uint          `json:"id"`
	Username     *string       `json:"username"`
	UserImageURL *string       `json:"userImageUrl"`
	Content      *string       `json:"content"`
	ImageURL     *string       `json:"imageUrl"`
	VideoURL     *string       `json:"videoUrl"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
	LikeCount    int           `json:"likeCount"`
	ShareCount   int           `json:"shareCount"`
	Comments     []commentJSON `json:"comments"`
}

type errorJSON struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
