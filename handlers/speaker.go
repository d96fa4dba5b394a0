package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/middleware"
)

type speakerProfileRequest struct {
	Expertise       string   `json:"expertise" validate:"required"`
	PricePerSession *float64 `json:"price_per_session" validate:"required"`
}

func (h *Handler) UpsertSpeakerProfile(c *fiber.Ctx) error {
	const op = "handlers.UpsertSpeakerProfile"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	var req speakerProfileRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	id, err := h.speakers.UpsertProfile(c.UserContext(), identity.SubjectID, req.Expertise, *req.PricePerSession)
	if err != nil {
		return h.fail(c, log, "failed to save speaker profile", err)
	}

	return success(c, fiber.StatusCreated, "Speaker profile saved", fiber.Map{"profile_id": id})
}

func (h *Handler) GetSpeakerProfile(c *fiber.Ctx) error {
	const op = "handlers.GetSpeakerProfile"
	log := h.log.With(slog.String("op", op))

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	profile, err := h.speakers.GetProfile(c.UserContext(), identity.SubjectID)
	if err != nil {
		return h.fail(c, log, "failed to fetch speaker profile", err)
	}

	return success(c, fiber.StatusOK, "Speaker profile fetched", profile)
}

func (h *Handler) GetSpeakers(c *fiber.Ctx) error {
	const op = "handlers.GetSpeakers"
	log := h.log.With(slog.String("op", op))

	speakers, err := h.speakers.ListSpeakers(c.UserContext())
	if err != nil {
		return h.fail(c, log, "failed to list speakers", err)
	}

	return success(c, fiber.StatusOK, "Speakers fetched", fiber.Map{"speakers": speakers, "count": len(speakers)})
}
