package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Frostyanand/SpeakEasy/auth"
	"github.com/Frostyanand/SpeakEasy/handlers"
	"github.com/Frostyanand/SpeakEasy/middleware"
	"github.com/Frostyanand/SpeakEasy/model"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler, gate *auth.Gate) {
	app.Use(recover.New(), cors.New())
	app.Get("/", h.GetHealth)

	api := app.Group("/api", logger.New())

	//Accounts
	api.Post("/signup", h.Signup)
	api.Post("/verify-otp", h.VerifyOTP)
	api.Post("/resend-otp", h.ResendOTP)
	api.Post("/login", h.Login)

	authn := middleware.Authenticate(gate)
	speakerOnly := middleware.RequireRoles(gate, model.RoleSpeaker)
	userOnly := middleware.RequireRoles(gate, model.RoleUser)

	api.Get("/profile", authn, h.GetProfile)
	api.Get("/speakers", authn, h.GetSpeakers)
	api.Get("/my-bookings", authn, h.GetMyBookings)
	api.Post("/clear-past-sessions", authn, h.ClearPastSessions)

	//Speaker
	// Guards are per route: group middleware matches by plain prefix and
	// would also catch /api/speakers.
	speaker := api.Group("/speaker")
	speaker.Post("/profile", authn, speakerOnly, h.UpsertSpeakerProfile)
	speaker.Get("/profile", authn, speakerOnly, h.GetSpeakerProfile)
	speaker.Post("/create-session", authn, speakerOnly, h.CreateSession)

	//Booking
	api.Post("/book-session", authn, userOnly, h.BookSession)
	api.Post("/cancel-booking", authn, userOnly, h.CancelBooking)
	api.Post("/submit-feedback", authn, userOnly, h.SubmitFeedback)
}
