package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Frostyanand/SpeakEasy/auth"
	"github.com/Frostyanand/SpeakEasy/model"
)

func newTestApp(gate *auth.Gate) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", Authenticate(gate), func(c *fiber.Ctx) error {
		identity, _ := IdentityFrom(c)
		return c.JSON(fiber.Map{"id": identity.SubjectID, "role": identity.Role})
	})
	app.Get("/speakers-only", Authenticate(gate), RequireRoles(gate, model.RoleSpeaker), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuthenticate(t *testing.T) {
	gate := auth.NewGate("test-sign", time.Hour)
	app := newTestApp(gate)

	userToken, err := gate.Issue(model.UserData{Id: "u-1", Email: "u@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	speakerToken, err := gate.Issue(model.UserData{Id: "s-1", Email: "s@example.com", Role: model.RoleSpeaker})
	require.NoError(t, err)
	foreign, err := auth.NewGate("other-sign", time.Hour).Issue(model.UserData{Id: "u-1", Role: model.RoleUser})
	require.NoError(t, err)
	expired, err := auth.NewGate("test-sign", -time.Minute).Issue(model.UserData{Id: "u-1", Role: model.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		description  string
		route        string
		token        string
		expectedCode int
	}{
		{"no token", "/whoami", "", fiber.StatusBadRequest},
		{"garbage token", "/whoami", "not-a-jwt", fiber.StatusUnauthorized},
		{"foreign signature", "/whoami", foreign, fiber.StatusUnauthorized},
		{"expired token", "/whoami", expired, fiber.StatusUnauthorized},
		{"valid token", "/whoami", userToken, fiber.StatusOK},
		{"wrong role", "/speakers-only", userToken, fiber.StatusForbidden},
		{"right role", "/speakers-only", speakerToken, fiber.StatusNoContent},
	}

	for _, test := range tests {
		req := httptest.NewRequest(fiber.MethodGet, test.route, nil)
		if test.token != "" {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+test.token)
		}

		res, err := app.Test(req, -1)
		require.NoError(t, err, test.description)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
	}
}

func TestAuthenticateStoresIdentity(t *testing.T) {
	gate := auth.NewGate("test-sign", time.Hour)
	app := newTestApp(gate)

	token, err := gate.Issue(model.UserData{Id: "s-1", Email: "s@example.com", Role: model.RoleSpeaker})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, map[string]string{"id": "s-1", "role": model.RoleSpeaker}, body)
}
