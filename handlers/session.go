package handlers

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/middleware"
)

type createSessionRequest struct {
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	MaxSeats any    `json:"max_seats"`
}

// seatCount accepts a JSON number or a numeric string. Fractions are truncated.
func seatCount(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		seats, err := strconv.Atoi(strings.TrimSpace(n))
		return seats, err == nil
	default:
		return 0, false
	}
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	const op = "handlers.CreateSession"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	var req createSessionRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	if req.MaxSeats == nil {
		return errors.RaiseBadRequestError(c, "Missing required field: max_seats")
	}
	maxSeats, ok := seatCount(req.MaxSeats)
	if !ok {
		log.Info("invalid max_seats", slog.Any("max_seats", req.MaxSeats))
		return errors.RaiseBadRequestError(c, "max_seats must be a valid number")
	}

	id, err := h.bookings.CreateSession(c.UserContext(), identity.SubjectID, req.Date, req.Time, maxSeats)
	if err != nil {
		return h.fail(c, log, "failed to create session", err)
	}

	return success(c, fiber.StatusCreated, "Session created successfully!", fiber.Map{"session_id": id})
}
