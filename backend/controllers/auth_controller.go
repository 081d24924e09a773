package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"langbridge/backend/config"
	"langbridge/backend/middleware"
	"langbridge/backend/models"
	"langbridge/backend/stores"
	"langbridge/backend/utils"
)

var validate = validator.New()

type AuthController struct {
	Accounts stores.AccountStore
	Cfg      *config.Config
}

func NewAuthController(accounts stores.AccountStore, cfg *config.Config) *AuthController {
	return &AuthController{Accounts: accounts, Cfg: cfg}
}

type SignupInput struct {
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebase_uid" validate:"required"`
	Role        string `json:"role" validate:"omitempty,oneof=student teacher admin"`
}

// Signup creates the local account for an externally issued identity. The
// subject identifier comes from the request body, not from a verified token:
// at this point the caller has no local account for a token to resolve
// against. Calling twice with the same subject fails the second time.
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var input SignupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, ac.Cfg, utils.ValidationError("Cannot parse JSON", err))
	}
	if err := validate.Struct(input); err != nil {
		return utils.Fail(c, ac.Cfg, utils.ValidationError("Invalid signup data", err))
	}

	if _, err := ac.Accounts.BySubject(c.Context(), input.FirebaseUID); err == nil {
		return utils.Fail(c, ac.Cfg, utils.ValidationError("User already exists", nil))
	} else if !errors.Is(err, stores.ErrNotFound) {
		return utils.Fail(c, ac.Cfg, utils.StoreError("Error creating user", err))
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		FirebaseUID: input.FirebaseUID,
		Email:       input.Email,
		Role:        role,
	}
	if err := ac.Accounts.Create(c.Context(), &user); err != nil {
		// Two signups racing on the same subject: the unique index wins
		// where the existence check above cannot.
		if errors.Is(err, stores.ErrDuplicate) {
			return utils.Fail(c, ac.Cfg, utils.ValidationError("User already exists", nil))
		}
		return utils.Fail(c, ac.Cfg, utils.StoreError("Error creating user", err))
	}

	return utils.Created(c, user)
}

// Me returns the account resolved by the auth middleware.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, ac.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	return utils.Success(c, fiber.StatusOK, account)
}

func (ac *AuthController) UpdateMe(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, ac.Cfg, utils.AuthenticationError("Authentication required", nil))
	}

	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.Fail(c, ac.Cfg, utils.ValidationError("Cannot parse JSON", err))
	}
	if err := validate.Struct(update); err != nil {
		return utils.Fail(c, ac.Cfg, utils.ValidationError("Invalid profile data", err))
	}

	updated, err := ac.Accounts.Update(c.Context(), account.ID, update)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, ac.Cfg, utils.AccountNotFoundError("User not found in database"))
		}
		return utils.Fail(c, ac.Cfg, utils.StoreError("Error updating user profile", err))
	}

	return utils.Success(c, fiber.StatusOK, updated)
}

func (ac *AuthController) ListUsers(c *fiber.Ctx) error {
	users, err := ac.Accounts.List(c.Context(), stores.ListUsersOptions{
		Limit:  c.QueryInt("limit", 10),
		Offset: c.QueryInt("offset", 0),
		Role:   c.Query("role"),
	})
	if err != nil {
		return utils.Fail(c, ac.Cfg, utils.StoreError("Error fetching users", err))
	}
	if users == nil {
		users = []models.User{}
	}
	return utils.Success(c, fiber.StatusOK, users)
}

func (ac *AuthController) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, ac.Cfg, utils.ValidationError("Invalid user id", err))
	}

	if err := ac.Accounts.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, ac.Cfg, utils.NotFoundError("User not found"))
		}
		return utils.Fail(c, ac.Cfg, utils.StoreError("Error deleting user", err))
	}

	return utils.Message(c, fiber.StatusOK, "User deleted successfully")
}
