package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate-backend/internal/config"
	"filmorate-backend/pkg/container"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiFilm struct {
	ID     int64 `json:"id"`
	Rate   int   `json:"rate"`
	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Mpa struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"mpa"`
	Description *string `json:"description"`
}

type apiUser struct {
	ID      int64   `json:"id"`
	Login   string  `json:"login"`
	Name    string  `json:"name"`
	Friends []int64 `json:"friends"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "test", Environment: "test", Port: "0"},
		Storage: config.StorageConfig{Backend: config.BackendMemory},
		Redis:   config.RedisConfig{TTL: time.Minute},
	}
	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return SetupRouter(c)
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func createUser(t *testing.T, r *gin.Engine, login string) apiUser {
	t.Helper()
	status, env := do(t, r, http.MethodPost, "/users", map[string]interface{}{
		"login": login,
		"email": login + "@filmorate.test",
	})
	require.Equal(t, http.StatusCreated, status)
	return decode[apiUser](t, env)
}

func createFilm(t *testing.T, r *gin.Engine, name string) apiFilm {
	t.Helper()
	status, env := do(t, r, http.MethodPost, "/films", map[string]interface{}{
		"name":        name,
		"description": "about " + name,
		"releaseDate": "2001-01-01",
		"duration":    100,
		"mpa":         map[string]int{"id": 1},
		"genres":      []map[string]int{{"id": 2}},
	})
	require.Equal(t, http.StatusCreated, status)
	return decode[apiFilm](t, env)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	status, env := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestReferenceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	status, env := do(t, r, http.MethodGet, "/genres", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, env), 6)

	status, env = do(t, r, http.MethodGet, "/mpa/5", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "NC-17", decode[map[string]interface{}](t, env)["name"])

	status, env = do(t, r, http.MethodGet, "/genres/100", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "GENRE_NOT_FOUND", env.Error.Code)

	status, _ = do(t, r, http.MethodGet, "/mpa/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFilmLifecycle(t *testing.T) {
	r := newTestRouter(t)

	f := createFilm(t, r, "Matrix")
	assert.Equal(t, int64(1), f.ID)
	require.Len(t, f.Genres, 1)
	assert.Equal(t, "Драма", f.Genres[0].Name)
	assert.Equal(t, "G", f.Mpa.Name)

	// absent description and genres are kept
	status, env := do(t, r, http.MethodPut, "/films", map[string]interface{}{
		"id":          f.ID,
		"name":        "Matrix",
		"releaseDate": "2001-01-01",
		"mpa":         map[string]int{"id": 3},
	})
	require.Equal(t, http.StatusOK, status)
	updated := decode[apiFilm](t, env)
	assert.Equal(t, "PG-13", updated.Mpa.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "about Matrix", *updated.Description)
	assert.Len(t, updated.Genres, 1)

	status, env = do(t, r, http.MethodGet, "/films/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PG-13", decode[apiFilm](t, env).Mpa.Name)

	status, env = do(t, r, http.MethodGet, "/films", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]apiFilm](t, env), 1)
}

func TestFilmErrors(t *testing.T) {
	r := newTestRouter(t)

	status, env := do(t, r, http.MethodPost, "/films", map[string]interface{}{
		"name":        "",
		"releaseDate": "1800-01-01",
		"mpa":         map[string]int{"id": 1},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, env = do(t, r, http.MethodPost, "/films", map[string]interface{}{
		"name":        "x",
		"releaseDate": "2000-01-01",
		"mpa":         map[string]int{"id": 9},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "MPA_NOT_FOUND", env.Error.Code)

	status, env = do(t, r, http.MethodPut, "/films", map[string]interface{}{
		"id":          77,
		"name":        "x",
		"releaseDate": "2000-01-01",
		"mpa":         map[string]int{"id": 1},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "FILM_NOT_FOUND", env.Error.Code)

	status, _ = do(t, r, http.MethodGet, "/films/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, r, http.MethodGet, "/films/5", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = do(t, r, http.MethodGet, "/films/popular?count=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
}

func TestUserErrors(t *testing.T) {
	r := newTestRouter(t)
	createUser(t, r, "neo")

	status, env := do(t, r, http.MethodPost, "/users", map[string]interface{}{
		"login": "neo",
		"email": "other@filmorate.test",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_LOGIN", env.Error.Code)

	status, _ = do(t, r, http.MethodPost, "/users", map[string]interface{}{
		"login": "has space",
		"email": "x@filmorate.test",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, r, http.MethodPut, "/users/1/friends/1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SELF_FRIENDSHIP", env.Error.Code)

	status, _ = do(t, r, http.MethodPut, "/users/1/friends/2", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, r, http.MethodGet, "/users/1/friends/common/2", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUserUpdateKeepsNameAndBirthday(t *testing.T) {
	r := newTestRouter(t)

	status, env := do(t, r, http.MethodPost, "/users", map[string]interface{}{
		"login":    "neo",
		"name":     "Thomas",
		"email":    "neo@filmorate.test",
		"birthday": "1990-05-01",
	})
	require.Equal(t, http.StatusCreated, status)
	created := decode[apiUser](t, env)

	status, env = do(t, r, http.MethodPut, "/users", map[string]interface{}{
		"id":    created.ID,
		"login": "the_one",
		"email": "neo@zion.test",
	})
	require.Equal(t, http.StatusOK, status)
	got := decode[map[string]interface{}](t, env)
	assert.Equal(t, "the_one", got["login"])
	assert.Equal(t, "Thomas", got["name"])
	assert.Equal(t, "1990-05-01", got["birthday"])
}

func TestScenarioOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	alice := createUser(t, r, "alice")
	bob := createUser(t, r, "bob")
	x := createUser(t, r, "x")
	y := createUser(t, r, "y")
	w := createFilm(t, r, "W")
	createFilm(t, r, "other")

	for _, u := range []apiUser{x, y, alice} {
		status, _ := do(t, r, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", w.ID, u.ID), nil)
		require.Equal(t, http.StatusOK, status)
	}
	// repeated like is a no-op
	status, _ := do(t, r, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", w.ID, alice.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, env := do(t, r, http.MethodGet, "/films/popular?count=1", nil)
	require.Equal(t, http.StatusOK, status)
	top := decode[[]apiFilm](t, env)
	require.Len(t, top, 1)
	assert.Equal(t, w.ID, top[0].ID)
	assert.Equal(t, 3, top[0].Rate)

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/films/%d/likes", w.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int64{alice.ID, x.ID, y.ID}, decode[[]int64](t, env))

	status, _ = do(t, r, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", alice.ID, bob.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d/friends", alice.ID), nil)
	require.Equal(t, http.StatusOK, status)
	friends := decode[[]apiUser](t, env)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)
	assert.Equal(t, []int64{alice.ID}, friends[0].Friends)

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d", bob.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int64{alice.ID}, decode[apiUser](t, env).Friends)

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d/friends/common/%d", alice.ID, bob.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]apiUser](t, env))

	status, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", w.ID, alice.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/films/%d", w.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, decode[apiFilm](t, env).Rate)

	status, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/users/%d/friends/%d", bob.ID, alice.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d/friends", alice.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]apiUser](t, env))
}
