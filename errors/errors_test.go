package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindMatching(t *testing.T) {
	err := fmt.Errorf("op: %w", Capacity("session is fully booked"))

	assert.True(t, stderrors.Is(err, ErrCapacity))
	assert.False(t, stderrors.Is(err, ErrConflict))
	assert.Equal(t, KindCapacity, KindOf(err))
	assert.Equal(t, "op: session is fully booked", err.Error())
	assert.Equal(t, KindInternal, KindOf(stderrors.New("boom")))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad rating"), fiber.StatusBadRequest},
		{Conflict("already booked"), fiber.StatusConflict},
		{Capacity("full"), fiber.StatusConflict},
		{NotFound("no booking"), fiber.StatusNotFound},
		{Authorization("not yours"), fiber.StatusForbidden},
		{Unauthenticated("bad password"), fiber.StatusUnauthorized},
		{stderrors.New("db down"), fiber.StatusInternalServerError},
	}

	for _, test := range tests {
		assert.Equalf(t, test.want, StatusOf(test.err), "status for %v", test.err)
	}
}

func TestRaiseFromErrorHidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return RaiseFromError(c, stderrors.New("connection refused to 10.0.0.1"))
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return RaiseFromError(c, Conflict("you have already booked this session"))
	})

	res, err := app.Test(httptest.NewRequest("GET", "/internal", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	assert.NotContains(t, string(body), "10.0.0.1")

	res, err = app.Test(httptest.NewRequest("GET", "/conflict", nil), -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	assert.Equal(t, fiber.StatusConflict, res.StatusCode)
	assert.JSONEq(t, `{"status":"error","message":"conflict","data":"you have already booked this session"}`, string(body))
}
