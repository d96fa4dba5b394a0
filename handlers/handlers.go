package handlers

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/lib/logger/sl"
	"github.com/Frostyanand/SpeakEasy/model"
	"github.com/Frostyanand/SpeakEasy/services"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AccountService
type AccountService interface {
	Signup(ctx context.Context, in services.SignupInput) (string, error)
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SpeakerService
type SpeakerService interface {
	UpsertProfile(ctx context.Context, ownerID, expertise string, price float64) (string, error)
	GetProfile(ctx context.Context, ownerID string) (model.SpeakerProfile, error)
	ListSpeakers(ctx context.Context) ([]model.SpeakerListing, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingService
type BookingService interface {
	CreateSession(ctx context.Context, speakerID, date, at string, maxSeats int) (string, error)
	BookSession(ctx context.Context, userID, sessionID string) (string, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
	SubmitFeedback(ctx context.Context, userID, bookingID string, rating int, text *string) error
	ClearPastSessions(ctx context.Context, subjectID, role string) (int64, error)
	GetUserBookings(ctx context.Context, userID string) ([]model.UserBookingView, error)
	GetSpeakerBookings(ctx context.Context, speakerID string) ([]model.SpeakerSessionView, error)
}

type Handler struct {
	log      *slog.Logger
	accounts AccountService
	speakers SpeakerService
	bookings BookingService
	validate *validator.Validate
}

func New(log *slog.Logger, accounts AccountService, speakers SpeakerService, bookings BookingService) *Handler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return &Handler{
		log:      log,
		accounts: accounts,
		speakers: speakers,
		bookings: bookings,
		validate: validate,
	}
}

func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.SendString("SpeakEasy API is running.")
}

// parseRequest decodes and validates the body into req. On failure the 400
// response has already been written and the returned error is that write's.
func (h *Handler) parseRequest(c *fiber.Ctx, log *slog.Logger, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		return false, errors.RaiseBadRequestError(c, "failed to decode request")
	}

	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if stderrors.As(err, &validateErr) {
			log.Warn("invalid request", sl.Err(err))
			return false, errors.RaiseBadRequestError(c, validationMessage(validateErr))
		}
		return false, errors.RaiseBadRequestError(c, err.Error())
	}

	return true, nil
}

// fail writes the response for a service error.
func (h *Handler) fail(c *fiber.Ctx, log *slog.Logger, msg string, err error) error {
	if errors.KindOf(err) == errors.KindInternal {
		log.Error(msg, sl.Err(err))
	} else {
		log.Info(msg, sl.Err(err))
	}
	return errors.RaiseFromError(c, err)
}

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data})
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("Missing required field: %s", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
