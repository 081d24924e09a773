package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"langbridge/backend/config"
	"langbridge/backend/models"
	"langbridge/backend/stores"
	"langbridge/backend/utils"
)

const accountKey = "account"

// RequireAuth resolves the bearer credential to a verified identity and the
// identity to a local account, then attaches the account for downstream
// handlers. A missing or invalid credential is 401; a valid credential with
// no local account is 404, so clients can tell re-login from unfinished
// registration.
func RequireAuth(verifier utils.TokenVerifier, accounts stores.AccountStore, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.Fail(c, cfg, utils.AuthenticationError("No token provided", nil))
		}
		token := strings.TrimPrefix(header, "Bearer ")

		identity, err := verifier.Verify(c.Context(), token)
		if err != nil {
			return utils.Fail(c, cfg, utils.AuthenticationError("Invalid token", err))
		}

		account, err := accounts.BySubject(c.Context(), identity.Subject)
		if err != nil {
			if errors.Is(err, stores.ErrNotFound) {
				return utils.Fail(c, cfg, utils.AccountNotFoundError("User not found in database"))
			}
			return utils.Fail(c, cfg, utils.StoreError("Error resolving account", err))
		}

		c.Locals(accountKey, account)
		return c.Next()
	}
}

// RequireRole allows only accounts whose role is in the set. It must run
// after RequireAuth; with no account attached it reports
// authentication-required rather than permission-denied.
func RequireRole(cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := Account(c)
		if !ok {
			return utils.Fail(c, cfg, utils.AuthenticationError("Authentication required", nil))
		}
		for _, role := range roles {
			if account.Role == role {
				return c.Next()
			}
		}
		return utils.Fail(c, cfg, utils.PermissionError("Insufficient permissions"))
	}
}

// Account returns the account attached by RequireAuth.
func Account(c *fiber.Ctx) (*models.User, bool) {
	account, ok := c.Locals(accountKey).(*models.User)
	return account, ok
}
