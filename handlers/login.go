package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/middleware"
	"github.com/Frostyanand/SpeakEasy/services"
)

type signupRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=user speaker"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type resendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	const op = "handlers.Signup"
	log := h.log.With(slog.String("op", op))

	var req signupRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	id, err := h.accounts.Signup(c.UserContext(), services.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return h.fail(c, log, "failed to sign up", err)
	}

	return success(c, fiber.StatusCreated,
		"User registered successfully. Please verify your email with the OTP sent.",
		fiber.Map{"user_id": id})
}

func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	const op = "handlers.VerifyOTP"
	log := h.log.With(slog.String("op", op))

	var req verifyOTPRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	if err := h.accounts.VerifyOTP(c.UserContext(), req.Email, req.OTP); err != nil {
		return h.fail(c, log, "failed to verify otp", err)
	}

	return success(c, fiber.StatusOK, "Email verified successfully. You can now log in.", nil)
}

func (h *Handler) ResendOTP(c *fiber.Ctx) error {
	const op = "handlers.ResendOTP"
	log := h.log.With(slog.String("op", op))

	var req resendOTPRequest
	if ok, err := h.parseRequest(c, log, &req); !ok {
		return err
	}

	if err := h.accounts.ResendOTP(c.UserContext(), req.Email); err != nil {
		return h.fail(c, log, "failed to resend otp", err)
	}

	return success(c, fiber.StatusOK, "A new OTP has been sent to your email.", nil)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	const op = "handlers.Login"
	log := h.log.With(slog.String("op", op))

	var creds credentials
	if ok, err := h.parseRequest(c, log, &creds); !ok {
		return err
	}

	token, err := h.accounts.Login(c.UserContext(), creds.Email, creds.Password)
	if err != nil {
		return h.fail(c, log, "failed to log in", err)
	}

	return success(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "Missing identity")
	}

	return success(c, fiber.StatusOK, "Profile fetched", fiber.Map{
		"id":    identity.SubjectID,
		"email": identity.Email,
		"role":  identity.Role,
	})
}
