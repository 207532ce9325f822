package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/models"
)

func TestLogin_StoresTokensAndSendsBearer(t *testing.T) {
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "a@x.com", req["email"])
			json.NewEncoder(w).Encode(map[string]any{
				"user":          models.User{ID: userID, Email: "a@x.com"},
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
			})
		case "/api/users/me":
			assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(models.User{ID: userID, Email: "a@x.com"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	user, err := c.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", me.Email)
}

func TestErrorDecoding(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"validation", 400, `{"error":{"code":"VALIDATION_ERROR","message":"Invalid email format"}}`, common.ErrValidation},
		{"auth", 401, `{"error":{"code":"AUTH_ERROR","message":"Invalid credentials"}}`, common.ErrUnauthorized},
		{"notfound", 404, `{"error":{"code":"NOT_FOUND","message":"Entry not found"}}`, common.ErrNotFound},
		{"app", 500, `{"error":{"code":"APP_ERROR","message":"Something went wrong"}}`, common.ErrInternal},
		{"garbage", 502, `upstream exploded`, common.ErrInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second)
			_, err := c.Me(context.Background())
			assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
		})
	}
}

func TestListEntries_StatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "draft", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]models.Entry{{Content: "a draft"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	entries, err := c.ListEntries(context.Background(), models.EntryDraft)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a draft", entries[0].Content)
}

func TestLogout_ClearsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"user": models.User{}, "access_token": "a", "refresh_token": "r",
			})
		case "/api/auth/logout":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "r", req["refresh_token"])
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.accessToken)
	assert.Empty(t, c.refreshToken)
}
