package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wenotes/internal/client/api"
)

func jsonSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func jsonFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}

func newClientFor(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := api.NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestAuthService_LoginStoresToken(t *testing.T) {
	var sawBearer string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["username"])

		http.SetCookie(w, &http.Cookie{Name: "rt", Value: "opaque", Path: "/api/v1/auth"})
		jsonSuccess(w, http.StatusOK, map[string]any{
			"user":        map[string]any{"id": 1, "username": "alice", "role": "standard"},
			"accessToken": "token-1",
		})
	})
	mux.HandleFunc("/api/v1/notes", func(w http.ResponseWriter, r *http.Request) {
		sawBearer = r.Header.Get("Authorization")
		jsonSuccess(w, http.StatusOK, []any{})
	})

	c := newClientFor(t, mux)
	auth := NewAuthService(c)
	notes := NewNoteService(c)

	user, err := auth.Login(context.Background(), "alice", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsPremium())

	// subsequent requests carry the token handed out at login
	_, err = notes.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", sawBearer)
}

func TestAuthService_LoginFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		jsonFailure(w, http.StatusUnauthorized, "invalid credentials")
	})

	auth := NewAuthService(newClientFor(t, mux))
	_, err := auth.Login(context.Background(), "alice", []byte("wrong"))
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestNoteService_CreateAndGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/notes", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		jsonSuccess(w, http.StatusCreated, map[string]any{
			"id": 5, "title": req["title"], "content": req["content"],
		})
	})
	mux.HandleFunc("/api/v1/notes/5", func(w http.ResponseWriter, r *http.Request) {
		jsonSuccess(w, http.StatusOK, map[string]any{"id": 5, "title": "t", "content": "c"})
	})

	svc := NewNoteService(newClientFor(t, mux))

	created, err := svc.Create(context.Background(), "t", "c", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	got, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestNoteService_UploadImage(t *testing.T) {
	var uploaded []byte

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		uploaded = buf
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(storage.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/notes/uploads", func(w http.ResponseWriter, r *http.Request) {
		jsonSuccess(w, http.StatusOK, map[string]string{
			"key":       "notes/2026/1/2/abc",
			"uploadUrl": storage.URL + "/bucket/notes/2026/1/2/abc",
		})
	})

	svc := NewNoteService(newClientFor(t, mux))

	key, err := svc.UploadImage(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "notes/2026/1/2/abc", key)
	assert.Equal(t, "png-bytes", string(uploaded))
}

func TestUserService_DeleteAccountClearsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	c := newClientFor(t, mux)
	c.SetAccessToken("token-1")
	svc := NewUserService(c)

	require.NoError(t, svc.DeleteAccount(context.Background(), 1, []byte("secret1")))
}

func TestNoteService_SharedFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/notes/shared/tok-123", func(w http.ResponseWriter, r *http.Request) {
		jsonSuccess(w, http.StatusOK, map[string]any{"id": 9, "title": "public", "content": "c"})
	})

	svc := NewNoteService(newClientFor(t, mux))
	note, err := svc.GetShared(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "public", note.Title)
}
