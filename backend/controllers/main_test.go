package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"langbridge/backend/config"
	"langbridge/backend/models"
	"langbridge/backend/routes"
	"langbridge/backend/stores"
	"langbridge/backend/utils"
)

// env is a full application wired against the in-memory stores and a static
// token verifier. Production mode by default so error detail stays hidden;
// tests that assert on detail build their own development env.
type env struct {
	app           *fiber.App
	cfg           *config.Config
	verifier      *utils.StaticVerifier
	accounts      *stores.MemoryAccounts
	courses       *stores.MemoryCourses
	conversations *stores.MemoryConversations
}

func newEnv(environment string) *env {
	cfg := &config.Config{Env: environment, ServerPort: "8080"}
	verifier := &utils.StaticVerifier{Identities: map[string]utils.Identity{}}
	accounts := stores.NewMemoryAccounts()
	courses := stores.NewMemoryCourses(accounts)
	conversations := stores.NewMemoryConversations()

	app := fiber.New()
	routes.SetupRoutes(app, routes.Deps{
		Cfg:           cfg,
		Verifier:      verifier,
		Accounts:      accounts,
		Courses:       courses,
		Conversations: conversations,
	})

	return &env{
		app:           app,
		cfg:           cfg,
		verifier:      verifier,
		accounts:      accounts,
		courses:       courses,
		conversations: conversations,
	}
}

// addUser registers an account and a bearer token resolving to it.
func (e *env) addUser(t *testing.T, uid, email, role string) (*models.User, string) {
	t.Helper()
	user := &models.User{FirebaseUID: uid, Email: email, Role: role}
	require.NoError(t, e.accounts.Create(context.Background(), user))
	token := "token-" + uid
	e.verifier.Identities[token] = utils.Identity{Subject: uid, Email: email}
	return user, token
}

func (e *env) addCourse(t *testing.T, teacherID uint, title string) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:       title,
		Description: "desc",
		Level:       "B1",
		Category:    "general",
		TeacherID:   teacherID,
	}
	require.NoError(t, e.courses.Create(context.Background(), course))
	return course
}

func (e *env) request(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func data(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := decode(t, resp)
	payload, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return payload
}
