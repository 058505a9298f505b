package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Go-Recipe-Chat/internal/realtime"
	"Go-Recipe-Chat/internal/store"
	"Go-Recipe-Chat/internal/utils"
	"Go-Recipe-Chat/internal/utils/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   interface{}     `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := utils.DefaultConfig()
	cfg.LogMode = "test"
	cfg.JWTSecret = "test-secret"
	cfg.RateLimitMax = 0

	app, err := NewApp(ctx, cfg, NewMemoryRepositories(store.New()), realtime.NewLocalBus(), logger.Nop())
	require.NoError(t, err)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, uid, email string) string {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/v1/users/login", "", map[string]interface{}{
		"externalUid": uid, "email": email, "displayName": "Test " + uid,
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func createRecipe(t *testing.T, app *fiber.App, title string, rating float64, ingredients ...string) uint {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/v1/recipes", "", map[string]interface{}{
		"title": title, "ingredients": ingredients, "instructions": []string{"cook"},
		"servings": 2, "difficulty": "Easy", "cuisine": "Italian", "category": "Main", "rating": rating,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var r struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &r))
	return r.ID
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserEndpoints(t *testing.T) {
	app := newTestApp(t)

	body := map[string]interface{}{"username": "alice", "email": "alice@example.com", "displayName": "Alice"}
	status, env := doJSON(t, app, http.MethodPost, "/api/v1/users", "", body)
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.True(t, env.Status)

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/users", "", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/users", "", map[string]interface{}{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/1", "", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/99", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	token := login(t, app, "carol-uid", "carol@example.com")
	status, env = doJSON(t, app, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "carol", me.Username)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = doJSON(t, app, http.MethodPut, "/api/v1/users/me/presence", token, map[string]interface{}{"isOnline": true})
	require.Equal(t, http.StatusOK, status, env.Error)
	var presence struct {
		IsOnline bool `json:"isOnline"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &presence))
	assert.True(t, presence.IsOnline)
}

func TestRecipeEndpoints(t *testing.T) {
	app := newTestApp(t)
	garlic := createRecipe(t, app, "Garlic Bread", 4.5, "Bread", "Garlic")
	createRecipe(t, app, "Kale Salad", 4.0, "Kale")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/recipes", "", map[string]interface{}{"title": "No steps"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", garlic), "", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/recipes/404", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/recipes/search/ingredients", "", map[string]interface{}{"ingredients": []string{"garlic", "kale"}})
	require.Equal(t, http.StatusOK, status)
	var found []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Len(t, found, 2)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/recipes/search/ingredients", "", map[string]interface{}{"ingredients": "garlic"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/recipes/search?q=", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, env = doJSON(t, app, http.MethodGet, "/api/v1/recipes/search?q=bread", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Len(t, found, 1)

	status, env = doJSON(t, app, http.MethodGet, "/api/v1/recipes/cuisine/italian", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Len(t, found, 2)

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/ai/recommendations", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 2)
	assert.Equal(t, "Garlic Bread", found[0].Title)
}

func TestFavoriteAndRecentEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "dave-uid", "dave@example.com")
	soup := createRecipe(t, app, "Soup", 4.0, "Water")

	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	for i := 0; i < 2; i++ {
		status, env := doJSON(t, app, http.MethodPost, "/api/v1/favorites", token, map[string]interface{}{"recipeId": soup})
		require.Equal(t, http.StatusOK, status, env.Error)
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/favorites", token, map[string]interface{}{"recipeId": 999})
	assert.Equal(t, http.StatusNotFound, status)

	status, env := doJSON(t, app, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, status)
	var favs []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &favs))
	assert.Len(t, favs, 1)

	status, env = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/favorites/%d/check", soup), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"isFavorite":true}`, string(env.Data))

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/%d", soup), token, nil)
	require.Equal(t, http.StatusOK, status)
	status, env = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/favorites/%d/check", soup), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"isFavorite":false}`, string(env.Data))

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/recent", token, map[string]interface{}{"recipeId": soup})
	require.Equal(t, http.StatusCreated, status)
	status, env = doJSON(t, app, http.MethodGet, "/api/v1/recent", token, nil)
	require.Equal(t, http.StatusOK, status)
	var recent []struct {
		Title    string `json:"title"`
		ViewedAt string `json:"viewedAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &recent))
	require.Len(t, recent, 1)
	assert.Equal(t, "Soup", recent[0].Title)
	assert.NotEmpty(t, recent[0].ViewedAt)
}

func TestChatEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/chats", "", map[string]interface{}{
		"participants": []string{"a", "b"}, "createdBy": "a",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/chats", "", map[string]interface{}{
		"participants": []string{"a", "b", "c"}, "createdBy": "a",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	path := fmt.Sprintf("/api/v1/chats/%d/messages", created.ID)
	status, env = doJSON(t, app, http.MethodPost, path, "", map[string]interface{}{
		"senderId": "a", "senderName": "Alice", "text": "hi",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var msg struct {
		ID   uint   `json:"id"`
		Read bool   `json:"read"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, "text", msg.Type)

	status, env = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/chats/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	var chat struct {
		LastMessage string `json:"lastMessage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chat))
	assert.Equal(t, "hi", chat.LastMessage)

	status, _ = doJSON(t, app, http.MethodPost, path, "", map[string]interface{}{
		"senderId": "a", "senderName": "Alice", "type": "image",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/chats/999/messages", "", map[string]interface{}{
		"senderId": "a", "senderName": "Alice", "text": "hello",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = doJSON(t, app, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, status)
	var messages []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &messages))
	assert.Len(t, messages, 1)

	status, env = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/messages/%d/read", msg.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.True(t, msg.Read)

	status, env = doJSON(t, app, http.MethodGet, "/api/v1/users/a/chats", "", nil)
	require.Equal(t, http.StatusOK, status)
	var chats []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &chats))
	assert.Len(t, chats, 1)
}

func TestUploadAndSocketGuards(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "erin-uid", "erin@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/uploads", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/ws?token="+token, "", nil)
	assert.Equal(t, http.StatusUpgradeRequired, status)
}

func TestNewAppNeedsJWTSecret(t *testing.T) {
	cfg := utils.DefaultConfig()
	_, err := NewApp(context.Background(), cfg, NewMemoryRepositories(store.New()), realtime.NewLocalBus(), logger.Nop())
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}
