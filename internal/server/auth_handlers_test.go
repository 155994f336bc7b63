package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupThenLogin(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username":   "margo",
		"email":      "margo@example.com",
		"password":   "a-long-password",
		"first_name": "Margo",
		"last_name":  "Quill",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signup struct {
		Token string `json:"token"`
		User  struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeJSON(t, resp, &signup)
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, "margo", signup.User.Username)

	resp = ts.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "margo@example.com",
		"password": "a-long-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &login)
	assert.NotEmpty(t, login.Token)
}

func TestSignupValidation(t *testing.T) {
	ts := setupTestServer(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"username": "x"}},
		{"bad email", map[string]string{"username": "x", "email": "not-an-email", "password": "a-long-password"}},
		{"short password", map[string]string{"username": "x", "email": "x@example.com", "password": "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := ts.request(t, http.MethodPost, "/api/auth/signup", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUser(t, "taken")

	resp := ts.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "someone-else",
		"email":    "taken@example.com",
		"password": "a-long-password",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginWrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUser(t, "margo")

	for _, body := range []map[string]string{
		{"email": "margo@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": testPassword},
	} {
		resp := ts.request(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var errResp struct {
			Error string `json:"error"`
		}
		decodeJSON(t, resp, &errResp)
		// Same message regardless of which credential was wrong.
		assert.Equal(t, "Invalid credentials", errResp.Error)
	}
}

func TestAuthRequiredPointsAtLogin(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.request(t, http.MethodGet, "/api/feed/following?page=2", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Login string `json:"login"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "/api/auth/login?next=%2Fapi%2Ffeed%2Ffollowing%3Fpage%3D2", body.Login)
}

func TestRejectsTamperedToken(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createUser(t, "margo")
	token := ts.token(t, user)

	resp := ts.request(t, http.MethodGet, "/api/feed/following", token+"x", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestNotFoundFallback(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.request(t, http.MethodGet, "/api/no-such-route", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
		Path  string `json:"path"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "This page is lost in the archive", body.Error)
	assert.Equal(t, "/api/no-such-route", body.Path)
}
