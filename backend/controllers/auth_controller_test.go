package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langbridge/backend/models"
	"langbridge/backend/utils"
)

func TestSignup(t *testing.T) {
	e := newEnv("production")

	resp := e.request(t, "POST", "/api/auth/signup", fiber.Map{
		"email":        "a@x.com",
		"firebase_uid": "u1",
		"role":         "student",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	payload := data(t, resp)
	assert.Equal(t, "a@x.com", payload["email"])
	assert.Equal(t, "student", payload["role"])
	assert.Equal(t, "u1", payload["firebase_uid"])
}

func TestSignupDefaultsToStudent(t *testing.T) {
	e := newEnv("production")

	resp := e.request(t, "POST", "/api/auth/signup", fiber.Map{
		"email":        "b@x.com",
		"firebase_uid": "u2",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "student", data(t, resp)["role"])
}

func TestSignupRejectsDuplicateSubject(t *testing.T) {
	e := newEnv("production")

	body := fiber.Map{"email": "a@x.com", "firebase_uid": "u1", "role": "student"}
	resp := e.request(t, "POST", "/api/auth/signup", body, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	writesAfterFirst := e.accounts.Writes()

	resp = e.request(t, "POST", "/api/auth/signup", body, "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "User already exists", result["message"])
	assert.Equal(t, writesAfterFirst, e.accounts.Writes(), "second signup must not write")
}

func TestSignupValidation(t *testing.T) {
	e := newEnv("production")

	resp := e.request(t, "POST", "/api/auth/signup", fiber.Map{
		"email":        "not-an-email",
		"firebase_uid": "u1",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = e.request(t, "POST", "/api/auth/signup", fiber.Map{
		"email":        "a@x.com",
		"firebase_uid": "u1",
		"role":         "superuser",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, 0, e.accounts.Writes())
}

func TestMe(t *testing.T) {
	e := newEnv("production")
	_, token := e.addUser(t, "u1", "a@x.com", models.RoleStudent)

	resp := e.request(t, "GET", "/api/auth/me", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := data(t, resp)
	assert.Equal(t, "a@x.com", payload["email"])
	assert.Equal(t, "student", payload["role"])
}

func TestMeWithoutToken(t *testing.T) {
	e := newEnv("production")

	resp := e.request(t, "GET", "/api/auth/me", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["success"])
}

func TestMeWithoutLocalAccount(t *testing.T) {
	e := newEnv("production")
	// Valid identity, but signup never happened.
	e.verifier.Identities["orphan"] = utils.Identity{Subject: "nobody", Email: "n@x.com"}

	resp := e.request(t, "GET", "/api/auth/me", nil, "orphan")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found in database", decode(t, resp)["message"])
}

func TestUpdateMe(t *testing.T) {
	e := newEnv("production")
	_, token := e.addUser(t, "u1", "a@x.com", models.RoleStudent)

	resp := e.request(t, "PUT", "/api/auth/me", fiber.Map{"email": "new@x.com"}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "new@x.com", data(t, resp)["email"])
}

func TestUpdateMeIgnoresImmutableFields(t *testing.T) {
	e := newEnv("production")
	_, token := e.addUser(t, "u1", "a@x.com", models.RoleStudent)

	// firebase_uid is not part of the update schema; it must survive intact.
	resp := e.request(t, "PUT", "/api/auth/me", fiber.Map{
		"email":        "new@x.com",
		"firebase_uid": "hijacked",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", data(t, resp)["firebase_uid"])
}

func TestRoleChangeTakesEffectImmediately(t *testing.T) {
	e := newEnv("production")
	_, token := e.addUser(t, "u1", "a@x.com", models.RoleStudent)

	resp := e.request(t, "POST", "/api/courses", fiber.Map{
		"title": "T", "description": "D", "level": "A1", "category": "general",
	}, token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = e.request(t, "PUT", "/api/auth/me", fiber.Map{"role": "teacher"}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// No role caching: the very next request sees the new role.
	resp = e.request(t, "POST", "/api/courses", fiber.Map{
		"title": "T", "description": "D", "level": "A1", "category": "general",
	}, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	e := newEnv("production")
	_, studentToken := e.addUser(t, "u1", "a@x.com", models.RoleStudent)
	_, adminToken := e.addUser(t, "u2", "admin@x.com", models.RoleAdmin)

	resp := e.request(t, "GET", "/api/auth/users", nil, studentToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Insufficient permissions", decode(t, resp)["message"])

	resp = e.request(t, "GET", "/api/auth/users", nil, adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	users, ok := result["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, users, 2)
}

func TestListUsersRoleFilter(t *testing.T) {
	e := newEnv("production")
	e.addUser(t, "u1", "a@x.com", models.RoleStudent)
	e.addUser(t, "u2", "t@x.com", models.RoleTeacher)
	_, adminToken := e.addUser(t, "u3", "admin@x.com", models.RoleAdmin)

	resp := e.request(t, "GET", "/api/auth/users?role=teacher", nil, adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	users := decode(t, resp)["data"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "t@x.com", users[0].(map[string]interface{})["email"])
}

func TestDeleteUser(t *testing.T) {
	e := newEnv("production")
	victim, _ := e.addUser(t, "u1", "a@x.com", models.RoleStudent)
	_, adminToken := e.addUser(t, "u2", "admin@x.com", models.RoleAdmin)

	resp := e.request(t, "DELETE", "/api/auth/users/999", nil, adminToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = e.request(t, "DELETE", "/api/auth/users/1", nil, adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err := e.accounts.BySubject(context.Background(), victim.FirebaseUID)
	assert.Error(t, err)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	e := newEnv("production")
	_, studentToken := e.addUser(t, "u1", "a@x.com", models.RoleStudent)
	e.addUser(t, "u2", "b@x.com", models.RoleStudent)
	writes := e.accounts.Writes()

	resp := e.request(t, "DELETE", "/api/auth/users/2", nil, studentToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, writes, e.accounts.Writes(), "denied delete must not write")
}

func TestHealth(t *testing.T) {
	e := newEnv("production")

	resp := e.request(t, "GET", "/api/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["success"])
}
