package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/app"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/service"
)

// testServer is the real mux over a migrated temp-file SQLite database.
type testServer struct {
	t         *testing.T
	handler   http.Handler
	container *app.Container
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Type: "sqlite",
			DSN:  filepath.Join(t.TempDir(), "web.db"),
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-must-be-at-least-32-characters-long",
			TokenDuration: time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
		Cors: config.CorsConfig{
			AllowedOrigins: config.DefaultAllowedOrigins,
		},
		Sync: config.SyncConfig{
			Timeout:      5 * time.Second,
			MaxRecords:   100,
			MaxBodyBytes: 1 << 20,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
	for _, m := range mutate {
		m(cfg)
	}

	container, err := app.NewContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &testServer{t: t, handler: NewMux(ctx, NewHandler(container)), container: container}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// login signs up phone with PIN 1234 and returns the bearer token
func (s *testServer) login(phone string) string {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"phone": phone, "pin": "1234", "surname": "Awa", "name": "Diop",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"phone": phone, "pin": "1234"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestAuth_SignupLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"phone": "770000001", "pin": "1234", "surname": "Awa", "name": "Diop",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	signup := decodeBody(t, rec)
	userID, _ := signup["userId"].(string)
	assert.NotEmpty(t, userID)
	assert.NotEmpty(t, signup["message"])

	rec = s.do(http.MethodPost, "/auth/login", "", map[string]string{"phone": "770000001", "pin": "1234"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "$2a$", "PIN hash must never leave the server")

	login := decodeBody(t, rec)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, token, login["session"].(map[string]any)["access_token"])

	user := login["user"].(map[string]any)
	assert.Equal(t, userID, user["id"])
	assert.Equal(t, "770000001", user["phone"])
	assert.Equal(t, "Diop", user["name"])
	assert.Equal(t, "Awa", user["surname"])

	verified, err := s.container.Tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, verified)
}

func TestAuth_SignupDuplicatePhone(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"phone": "770000001", "pin": "1234", "surname": "Awa", "name": "Diop"}

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/auth/signup", "", body).Code)

	rec := s.do(http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrPhoneTaken.Error(), decodeBody(t, rec)["error"])
}

func TestAuth_SignupValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"missing name", map[string]string{"phone": "770000001", "pin": "1234", "surname": "Awa"}, "name"},
		{"PIN with letters", map[string]string{"phone": "770000001", "pin": "12a4", "surname": "Awa", "name": "Diop"}, "pin"},
		{"PIN too long", map[string]string{"phone": "770000001", "pin": "12345", "surname": "Awa", "name": "Diop"}, "pin"},
		{"malformed JSON", `{"phone":`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.NotEmpty(t, body["error"])
			if tt.field != "" {
				assert.Equal(t, tt.field, body["field"])
			}
		})
	}
}

func TestAuth_LoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	s.login("770000001")

	wrongPIN := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"phone": "770000001", "pin": "9999"})
	unknown := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"phone": "779999999", "pin": "1234"})

	assert.Equal(t, http.StatusUnauthorized, wrongPIN.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrongPIN.Body.String(), unknown.Body.String())

	missing := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"phone": "770000001"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestSync_RequiresBearerToken(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range []string{http.MethodGet, http.MethodPost} {
				req := httptest.NewRequest(method, "/api/sync/all", strings.NewReader(`{}`))
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				rec := httptest.NewRecorder()
				s.handler.ServeHTTP(rec, req)
				assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
			}
		})
	}
}

func TestSync_PushThenPull(t *testing.T) {
	s := newTestServer(t)
	token := s.login("770000001")

	push := `{
		"clients":  [{"id":"c1","name":"Ndiaye","surname":"Fatou","phone":"771111111"}],
		"sales":    [{"id":"s1","clientId":"c1","amount":5000,"amountPaid":2000,"paymentType":"credit",
		              "products":[{"name":"Thiakry","qty":2,"price":1500}],"saleDate":"2026-01-05T10:00:00Z"},
		             {"id":"s2","clientId":"gone","amount":100}],
		"payments": [{"id":"p1","saleId":"s1","amount":2000,"paymentDate":"2026-01-06T09:00:00Z"}],
		"goals":    [{"id":"g1","amount":100000,"period":"monthly"}]
	}`
	rec := s.do(http.MethodPost, "/api/sync/all", token, push)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"message":"Sync successful",
		"synced":{"clients":1,"sales":2,"payments":1,"products":0,"templates":0,"goals":1,"expenses":0,"reminders":0}
	}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/sync/all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pulled struct {
		Clients []map[string]any `json:"clients"`
		Sales   []struct {
			ID            string          `json:"id"`
			Products      json.RawMessage `json:"products"`
			ClientName    *string         `json:"clientName"`
			ClientSurname *string         `json:"clientSurname"`
		} `json:"sales"`
		Payments  []map[string]any `json:"payments"`
		Reminders []map[string]any `json:"reminders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pulled))

	assert.Len(t, pulled.Clients, 1)
	assert.Len(t, pulled.Payments, 1)
	assert.NotNil(t, pulled.Reminders, "empty collections are [] not null")
	require.Len(t, pulled.Sales, 2)

	byID := map[string]int{}
	for i, sale := range pulled.Sales {
		byID[sale.ID] = i
	}
	s1 := pulled.Sales[byID["s1"]]
	assert.JSONEq(t, `[{"name":"Thiakry","qty":2,"price":1500}]`, string(s1.Products))
	require.NotNil(t, s1.ClientName)
	assert.Equal(t, "Ndiaye", *s1.ClientName)

	s2 := pulled.Sales[byID["s2"]]
	assert.Nil(t, s2.ClientName, "dangling client reference carries no name")
	assert.JSONEq(t, `[]`, string(s2.Products))
}

func TestSync_PushIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	token := s.login("770000001")
	push := `{"clients":[{"id":"c1","name":"A","surname":"B"}],"expenses":[{"id":"e1","amount":50,"category":"transport"}]}`

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/sync/all", token, push).Code)
	first := s.do(http.MethodGet, "/api/sync/all", token, nil).Body.String()

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/sync/all", token, push).Code)
	second := s.do(http.MethodGet, "/api/sync/all", token, nil).Body.String()

	assert.JSONEq(t, first, second)
}

func TestSync_FailedPushRollsBack(t *testing.T) {
	s := newTestServer(t)
	token := s.login("770000001")

	// p1 references a sale that does not exist: the whole batch is refused
	push := `{"clients":[{"id":"c1","name":"A","surname":"B"}],"payments":[{"id":"p1","saleId":"missing","amount":10}]}`
	rec := s.do(http.MethodPost, "/api/sync/all", token, push)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to synchronize", decodeBody(t, rec)["error"])

	rec = s.do(http.MethodGet, "/api/sync/all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["clients"])
}

func TestSync_OwnersAreIsolated(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("770000001")
	bob := s.login("770000002")

	require.Equal(t, http.StatusOK,
		s.do(http.MethodPost, "/api/sync/all", alice, `{"clients":[{"id":"c1","name":"Alice","surname":"Client"}]}`).Code)

	rec := s.do(http.MethodGet, "/api/sync/all", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["clients"])

	// Bob cannot overwrite Alice's record by reusing its id
	rec = s.do(http.MethodPost, "/api/sync/all", bob, `{"clients":[{"id":"c1","name":"Bob","surname":"Took"}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/sync/all", alice, nil)
	clients := decodeBody(t, rec)["clients"].([]any)
	require.Len(t, clients, 1)
	assert.Equal(t, "Alice", clients[0].(map[string]any)["name"])
}

func TestSync_PaymentCannotReferenceAnotherUsersSale(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("770000001")
	bob := s.login("770000002")

	require.Equal(t, http.StatusOK,
		s.do(http.MethodPost, "/api/sync/all", alice, `{"sales":[{"id":"S-A","amount":100}]}`).Code)

	foreign := s.do(http.MethodPost, "/api/sync/all", bob, `{"payments":[{"id":"p1","saleId":"S-A","amount":10}]}`)
	unknown := s.do(http.MethodPost, "/api/sync/all", bob, `{"payments":[{"id":"p2","saleId":"S-none","amount":10}]}`)

	assert.Equal(t, http.StatusInternalServerError, foreign.Code)
	assert.Equal(t, unknown.Code, foreign.Code)
	assert.Equal(t, unknown.Body.String(), foreign.Body.String())

	rec := s.do(http.MethodGet, "/api/sync/all", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["payments"])

	rec = s.do(http.MethodGet, "/api/sync/all", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["payments"])
}

func TestSync_RejectsBadBatches(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Sync.MaxBodyBytes = 256 })
	token := s.login("770000001")

	rec := s.do(http.MethodPost, "/api/sync/all", token, `{"clients":[{"name":"no id"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "clients[0].id", decodeBody(t, rec)["field"])

	rec = s.do(http.MethodPost, "/api/sync/all", token, `{"clients": not json}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/sync/all", token, `{"clients":"not a list"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	big := `{"templates":[{"id":"t1","name":"x","content":"` + strings.Repeat("a", 512) + `"}]}`
	rec = s.do(http.MethodPost, "/api/sync/all", token, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := s.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		body := decodeBody(t, rec)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "test", body["environment"])
		assert.NotEmpty(t, body["timestamp"])
	}

	rec := s.do(http.MethodGet, "/readiness", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["checks"].(map[string]any)["database"])
}

func TestHealth_EmptyEnvironmentKeepsKey(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Environment = "" })

	rec := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	env, ok := body["environment"]
	assert.True(t, ok, "environment key missing: %s", rec.Body.String())
	assert.Equal(t, "", env)
}

func TestReadiness_DatabaseDown(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.container.DB.Close())

	rec := s.do(http.MethodGet, "/api/readiness", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", decodeBody(t, rec)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/health", "", nil)

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_registrations_total")
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="GET /health",status_code="200"} 1`)

	disabled := newTestServer(t, func(c *config.Config) { c.Metrics.Enabled = false })
	assert.Equal(t, http.StatusNotFound, disabled.do(http.MethodGet, "/metrics", "", nil).Code)
}

func TestRequestIDAndSecurityHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestLogging_RejectsTokenInQuery(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/sync/all?access_token=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
