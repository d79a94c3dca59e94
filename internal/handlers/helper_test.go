package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labs-polaris/Polaris-Back-Web/db"
	"github.com/labs-polaris/Polaris-Back-Web/internal/config"
	"github.com/labs-polaris/Polaris-Back-Web/internal/router"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

type paging struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	HasNext  bool  `json:"has_next"`
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	} `json:"error"`
	Meta struct {
		RequestID string  `json:"request_id"`
		Paging    *paging `json:"paging"`
	} `json:"meta"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A unique shared-cache name keeps every pooled connection on the same
	// in-memory database.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{
		Port:            "0",
		DatabaseURL:     dsn,
		JWTSecret:       "test-secret",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		CORSOrigins:     []string{"*"},
		LogLevel:        "error",
	}

	return &testEnv{
		Router: router.New(cfg, gdb, zap.NewNop()),
		DB:     gdb,
		Config: cfg,
	}
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	var parsed envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &parsed)

	return rec, parsed
}

func buildRawRequest(t *testing.T, method, path string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	return req, httptest.NewRecorder()
}

func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

// registerUser registers an account and returns its access token.
func (env *testEnv) registerUser(t *testing.T, email, name string) string {
	t.Helper()

	rec, _ := env.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "Password123!",
		"name":     name,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	return env.login(t, email)
}

func (env *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	rec, body := env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "Password123!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeData(t, body, &tokens)
	require.NotEmpty(t, tokens.AccessToken)

	return tokens.AccessToken
}

func (env *testEnv) createOrg(t *testing.T, token, name string) string {
	t.Helper()

	rec, body := env.request(t, http.MethodPost, "/api/orgs", token, gin.H{"name": name})
	require.Equal(t, http.StatusOK, rec.Code)

	var org struct {
		ID string `json:"id"`
	}
	decodeData(t, body, &org)
	require.NotEmpty(t, org.ID)

	return org.ID
}

func (env *testEnv) createProject(t *testing.T, token, orgID, name, key string) string {
	t.Helper()

	rec, body := env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/projects", token, gin.H{
		"name": name,
		"key":  key,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var project struct {
		ID string `json:"id"`
	}
	decodeData(t, body, &project)

	return project.ID
}

// addMember invites an existing user into the org with the given role.
func (env *testEnv) addMember(t *testing.T, ownerToken, orgID, email, role string) {
	t.Helper()

	rec, _ := env.request(t, http.MethodPost, "/api/orgs/"+orgID+"/members", ownerToken, gin.H{
		"email": email,
		"role":  role,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}
