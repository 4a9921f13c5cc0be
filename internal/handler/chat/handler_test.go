package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	authservice "github.com/realganganadul/gingin-backend/internal/auth"
	chatmodel "github.com/realganganadul/gingin-backend/internal/model/chat"
	"github.com/realganganadul/gingin-backend/internal/session"
)

// stubGateway records the resolved role and returns a canned reply.
type stubGateway struct {
	text     string
	err      error
	lastRole session.Role
	calls    int
}

func (g *stubGateway) Chat(_ context.Context, role session.Role, _ []chatmodel.Turn, _ string) (string, error) {
	g.calls++
	g.lastRole = role
	return g.text, g.err
}

func setupRouter(gateway Gateway, sessions session.Store) *chi.Mux {
	r := chi.NewRouter()
	New(gateway, sessions).RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, r http.Handler, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func chatBody(text string) map[string]any {
	return map[string]any{
		"history": []map[string]string{},
		"message": map[string]string{"role": "user", "text": text},
	}
}

func TestChatReturnsModelText(t *testing.T) {
	gateway := &stubGateway{text: "We sell wallets."}
	r := setupRouter(gateway, nil)

	resp := postChat(t, r, chatBody("what do you sell?"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["text"] != "We sell wallets." {
		t.Fatalf("unexpected text %q", body["text"])
	}
	if gateway.lastRole != session.RoleNone {
		t.Fatalf("expected customer role without a cookie, got %q", gateway.lastRole)
	}
}

func TestChatResolvesAdminRoleFromCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	id, err := store.Create(context.Background())
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	gateway := &stubGateway{text: "done"}
	r := setupRouter(gateway, store)

	resp := postChat(t, r, chatBody("send the report"), &http.Cookie{Name: authservice.SessionCookieName, Value: id})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gateway.lastRole != session.RoleAdmin {
		t.Fatalf("expected admin role, got %q", gateway.lastRole)
	}
}

func TestChatUnknownCookieDegradesToCustomer(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	gateway := &stubGateway{text: "hi"}
	r := setupRouter(gateway, store)

	resp := postChat(t, r, chatBody("hello"), &http.Cookie{Name: authservice.SessionCookieName, Value: "stale"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gateway.lastRole != session.RoleNone {
		t.Fatalf("expected customer role for stale cookie, got %q", gateway.lastRole)
	}
}

func TestChatMalformedBody(t *testing.T) {
	gateway := &stubGateway{text: "unused"}
	r := setupRouter(gateway, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte(`{"history": "no"`)))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if gateway.calls != 0 {
		t.Fatal("malformed body must be rejected before inference")
	}
}

func TestChatMissingMessageText(t *testing.T) {
	gateway := &stubGateway{text: "unused"}
	r := setupRouter(gateway, nil)

	resp := postChat(t, r, map[string]any{"history": []map[string]string{}}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if gateway.calls != 0 {
		t.Fatal("missing message must be rejected before inference")
	}
}

func TestChatGatewayUnavailable(t *testing.T) {
	r := setupRouter(nil, nil)

	resp := postChat(t, r, chatBody("hello"), nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestChatGatewayFailure(t *testing.T) {
	gateway := &stubGateway{err: errors.New("connection reset")}
	r := setupRouter(gateway, nil)

	resp := postChat(t, r, chatBody("hello"), nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["text"] != genericErrorMessage {
		t.Fatalf("expected generic message, got %q", body["text"])
	}
}

func TestChatUpstreamAuthFailure(t *testing.T) {
	gateway := &stubGateway{err: errors.New("inference failed: API key not valid")}
	r := setupRouter(gateway, nil)

	resp := postChat(t, r, chatBody("hello"), nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["text"] != invalidKeyMessage {
		t.Fatalf("expected configuration message, got %q", body["text"])
	}
}
