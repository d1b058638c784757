package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacekitchen/burgerhub/internal/auth"
	"github.com/spacekitchen/burgerhub/internal/catalog"
	"github.com/spacekitchen/burgerhub/internal/config"
	httpx "github.com/spacekitchen/burgerhub/internal/http"
	"github.com/spacekitchen/burgerhub/internal/repo/memory"
	"github.com/spacekitchen/burgerhub/internal/stats"
)

const testSecret = "test-secret-key"

// testApp spins up the full router against the memory stores, so every
// test goes through the real middleware chain and wire shapes.
type testApp struct {
	router *gin.Engine
	jwt    *auth.Manager
	logs   *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logs := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(logs, nil))

	jwtManager := auth.NewManager(testSecret, 20*time.Minute)

	deps := httpx.Deps{
		Cfg: config.Config{
			Env:             "test",
			RateLimit:       10000,
			RateLimitWindow: time.Minute,
		},
		JWT:         jwtManager,
		Users:       memory.NewUsersRepo(),
		Refresh:     memory.NewRefreshTokensRepo(),
		Orders:      memory.NewOrdersRepo(stats.NewCounter()),
		Ingredients: memory.NewIngredientsRepo(catalog.Default()),
	}

	return &testApp{
		router: httpx.NewRouter(log, deps),
		jwt:    jwtManager,
		logs:   logs,
	}
}

// do performs one request. A non-nil body is sent as JSON; authHeader, when
// not empty, goes into Authorization verbatim.
func (a *testApp) do(t *testing.T, method, path string, body any, authHeader string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)

		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}

		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var parsed map[string]any

	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("%s %s: unparseable response %q: %v", method, path, rec.Body.String(), err)
		}
	}

	return rec.Code, parsed
}

// register creates an account and returns the auth payload.
func (a *testApp) register(t *testing.T, email, password, name string) map[string]any {
	t.Helper()

	status, body := a.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    email,
		"password": password,
		"name":     name,
	}, "")

	if status != http.StatusOK {
		t.Fatalf("register %s: status = %d, body = %v", email, status, body)
	}

	return body
}

func accessHeader(t *testing.T, authBody map[string]any) string {
	t.Helper()

	token, ok := authBody["accessToken"].(string)

	if !ok || token == "" {
		t.Fatalf("auth payload has no accessToken: %v", authBody)
	}

	return token
}

func refreshToken(t *testing.T, authBody map[string]any) string {
	t.Helper()

	token, ok := authBody["refreshToken"].(string)

	if !ok || token == "" {
		t.Fatalf("auth payload has no refreshToken: %v", authBody)
	}

	return token
}

func wantMessage(t *testing.T, body map[string]any, want string) {
	t.Helper()

	if got, _ := body["message"].(string); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	if success, _ := body["success"].(bool); success {
		t.Errorf("success = true on a failure response")
	}
}
