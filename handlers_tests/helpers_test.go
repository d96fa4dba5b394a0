package handlers_tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Frostyanand/SpeakEasy/auth"
	"github.com/Frostyanand/SpeakEasy/handlers"
	"github.com/Frostyanand/SpeakEasy/handlers/mocks"
	"github.com/Frostyanand/SpeakEasy/lib/logger/handlers/slogdiscard"
	"github.com/Frostyanand/SpeakEasy/model"
	"github.com/Frostyanand/SpeakEasy/router"
)

const testSign = "handlers-test-sign"

type Test struct {
	description  string
	method       string
	route        string
	token        string
	bodyinput    []byte
	setup        func()
	expectedCode int
	expectedBody string
}

type mockedApp struct {
	app      *fiber.App
	gate     *auth.Gate
	accounts *mocks.AccountService
	speakers *mocks.SpeakerService
	bookings *mocks.BookingService
}

func newMockedApp(t *testing.T) *mockedApp {
	t.Helper()

	m := &mockedApp{
		app:      fiber.New(),
		gate:     auth.NewGate(testSign, time.Hour),
		accounts: mocks.NewAccountService(t),
		speakers: mocks.NewSpeakerService(t),
		bookings: mocks.NewBookingService(t),
	}
	h := handlers.New(slogdiscard.NewDiscardLogger(), m.accounts, m.speakers, m.bookings)
	router.SetupRoutes(m.app, h, m.gate)

	return m
}

func (m *mockedApp) token(t *testing.T, id, role string) string {
	t.Helper()

	token, err := m.gate.Issue(model.UserData{Id: id, Email: id + "@example.com", Role: role})
	require.NoError(t, err)
	return token
}

func runTests(t *testing.T, app *fiber.App, tests []Test) {
	t.Helper()

	for _, test := range tests {
		if test.setup != nil {
			test.setup()
		}

		res, body := do(t, app, test.method, test.route, test.token, test.bodyinput)

		assert.Equalf(t, test.expectedCode, res, test.description)
		if test.expectedBody != "" {
			assert.Containsf(t, body, test.expectedBody, test.description)
		}
	}
}

func do(t *testing.T, app *fiber.App, method, route, token string, body []byte) (int, string) {
	t.Helper()

	if method == "" {
		method = fiber.MethodPost
	}
	req := httptest.NewRequest(method, route, bytes.NewBuffer(body))
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		assert.Fail(t, "Invalid test, error occured while body parsing")
	}
	return res.StatusCode, string(raw)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, body string, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
