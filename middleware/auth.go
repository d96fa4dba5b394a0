package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Frostyanand/SpeakEasy/auth"
	"github.com/Frostyanand/SpeakEasy/errors"
)

const (
	tokenKey    = "token"
	identityKey = "identity"
)

// Authenticate verifies the bearer token and stores the caller's
// auth.Identity for the handlers after it.
func Authenticate(gate *auth.Gate) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    gate.SigningKey(),
		SigningMethod: "HS256",
		Claims:        &auth.Claims{},
		ContextKey:    tokenKey,
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return errors.RaiseUnauthorizedError(c, "Invalid or expired JWT")
			}
			claims, _ := token.Claims.(*auth.Claims)

			identity, err := gate.IdentityOf(claims)
			if err != nil {
				return errors.RaiseUnauthorizedError(c, err.Error())
			}

			c.Locals(identityKey, identity)
			return c.Next()
		},
	})
}

// RequireRoles must run after Authenticate.
func RequireRoles(gate *auth.Gate, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return errors.RaiseUnauthorizedError(c, "Missing identity")
		}
		if !gate.Authorize(identity.Role, roles...) {
			return errors.RaisePermissionsError(c, "Access denied")
		}
		return c.Next()
	}
}

func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}
