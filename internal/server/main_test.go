package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testPassword is the plaintext behind every fixture user's bcrypt hash.
const testPassword = "sup3r-secret"

type testServer struct {
	srv   *Server
	app   *fiber.App
	db    *gorm.DB
	redis *miniredis.Miniredis
}

// setupTestServer wires a Server against in-memory sqlite and miniredis and
// mounts the full route table on a bare Fiber app. Middleware that only
// matters in production (rate limiting, CORS, tracing) stays off so tests
// exercise handlers directly.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "unit-test-signing-secret",
		Env:       "test",
	}

	srv := NewServerWithDeps(cfg, db, client)
	app := fiber.New()
	srv.SetupRoutes(app)

	return &testServer{srv: srv, app: app, db: db, redis: mr}
}

// createUser persists a user whose password is testPassword and returns it.
func (ts *testServer) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: string(hash),
	}
	require.NoError(t, ts.db.Create(user).Error)
	return user
}

// token issues a valid bearer token for the given user.
func (ts *testServer) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := ts.srv.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

func (ts *testServer) createPost(t *testing.T, author *models.User, text string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, CreatedAt: createdAt}
	require.NoError(t, ts.db.Create(post).Error)
	return post
}

func (ts *testServer) createGroup(t *testing.T, slug, title string) *models.Group {
	t.Helper()
	group := &models.Group{Slug: slug, Title: title, Description: title}
	require.NoError(t, ts.db.Create(group).Error)
	return group
}

// request performs an HTTP request against the test app. body may be nil.
func (ts *testServer) request(t *testing.T, method, target, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeJSON decodes the response body into out and closes it.
func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// readBody drains the response body and closes it.
func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return body
}
