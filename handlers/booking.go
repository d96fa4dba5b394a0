package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/middleware"
	"github.com/Frostyanand/SpeakEasy/model"
)

type bookSessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type cancelBookingRequest struct {
	BookingId string `json:"booking_id" validate:"required"`
}

type feedbackRequest struct {
	BookingId    string  `json:"booking_id" validate:"required"`
	Rating       *int    `json:"rating" validate:"required"`
	FeedbackText *string `json:"feedback_text"`
}

func (h *Handler) BookSession(c *fiber.Ctx) error {
	const op = "handlers.BookSession"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	var req bookSessionRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	id, err := h.bookings.BookSession(c.UserContext(), identity.SubjectID, req.SessionId)
	if err != nil {
		return h.fail(c, log, "failed to book session", err)
	}

	return success(c, fiber.StatusCreated, "Session booked successfully!", fiber.Map{"booking_id": id})
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	const op = "handlers.CancelBooking"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	var req cancelBookingRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	if err := h.bookings.CancelBooking(c.UserContext(), identity.SubjectID, req.BookingId); err != nil {
		return h.fail(c, log, "failed to cancel booking", err)
	}

	return success(c, fiber.StatusOK, "Booking cancelled successfully", nil)
}

func (h *Handler) SubmitFeedback(c *fiber.Ctx) error {
	const op = "handlers.SubmitFeedback"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	var req feedbackRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	err := h.bookings.SubmitFeedback(c.UserContext(), identity.SubjectID, req.BookingId, *req.Rating, req.FeedbackText)
	if err != nil {
		return h.fail(c, log, "failed to submit feedback", err)
	}

	return success(c, fiber.StatusOK, "Feedback submitted successfully", nil)
}

// GetMyBookings returns the caller's bookings, or for speakers their
// sessions with the users booked into them.
func (h *Handler) GetMyBookings(c *fiber.Ctx) error {
	const op = "handlers.GetMyBookings"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	var bookings any
	var count int
	if identity.Role == model.RoleSpeaker {
		sessions, err := h.bookings.GetSpeakerBookings(c.UserContext(), identity.SubjectID)
		if err != nil {
			return h.fail(c, log, "failed to fetch bookings", err)
		}
		bookings, count = sessions, len(sessions)
	} else {
		views, err := h.bookings.GetUserBookings(c.UserContext(), identity.SubjectID)
		if err != nil {
			return h.fail(c, log, "failed to fetch bookings", err)
		}
		bookings, count = views, len(views)
	}

	return success(c, fiber.StatusOK, "Bookings fetched", fiber.Map{"bookings": bookings, "count": count})
}

func (h *Handler) ClearPastSessions(c *fiber.Ctx) error {
	const op = "handlers.ClearPastSessions"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	cleared, err := h.bookings.ClearPastSessions(c.UserContext(), identity.SubjectID, identity.Role)
	if err != nil {
		return h.fail(c, log, "failed to clear past sessions", err)
	}

	return success(c, fiber.StatusOK, "Past sessions cleared", fiber.Map{"cleared_count": cleared})
}
