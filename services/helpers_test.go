package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Frostyanand/SpeakEasy/database/sqlite"
	"github.com/Frostyanand/SpeakEasy/lib/logger/handlers/slogdiscard"
	"github.com/Frostyanand/SpeakEasy/model"
	"github.com/Frostyanand/SpeakEasy/notify"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu            sync.Mutex
	bookings      []notify.BookingNotice
	cancellations []notify.CancellationNotice
	feedback      []notify.FeedbackNotice
	otps          []notify.OTPNotice
}

// The builders run inline so assertions can follow the call directly.

func (n *recordingNotifier) Booking(build notify.Build[notify.BookingNotice]) {
	v, err := build(context.Background())
	if err != nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bookings = append(n.bookings, v)
}

func (n *recordingNotifier) Cancellation(build notify.Build[notify.CancellationNotice]) {
	v, err := build(context.Background())
	if err != nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancellations = append(n.cancellations, v)
}

func (n *recordingNotifier) Feedback(build notify.Build[notify.FeedbackNotice]) {
	v, err := build(context.Background())
	if err != nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.feedback = append(n.feedback, v)
}

func (n *recordingNotifier) OTP(v notify.OTPNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.otps = append(n.otps, v)
}

func (n *recordingNotifier) lastOTP() notify.OTPNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.otps[len(n.otps)-1]
}

func testOptions() Options {
	return Options{
		StoreTimeout: 5 * time.Second,
		MaxTxRetries: 3,
		Now:          func() time.Time { return fixedNow },
	}
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "speakeasy.db"))
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(context.Background()))
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return store
}

type fixture struct {
	store    *sqlite.Store
	notifier *recordingNotifier
	bookings *BookingService
	speaker  model.UserData
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newTestStore(t)
	notifier := &recordingNotifier{}
	f := &fixture{
		store:    store,
		notifier: notifier,
		bookings: NewBookingService(slogdiscard.NewDiscardLogger(), store, notifier, testOptions()),
	}
	f.speaker = f.addUser(t, "Ada", "Lovelace", "ada@example.com", model.RoleSpeaker)

	_, err := store.UpsertSpeakerProfile(context.Background(), model.SpeakerProfile{
		UserId: f.speaker.Id, Expertise: "Public speaking", PricePerSession: 49.5,
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) addUser(t *testing.T, first, last, email, role string) model.UserData {
	t.Helper()

	user := model.UserData{
		FirstName: first, LastName: last, Email: email, HashedPassword: "x",
		Role: role, Verified: true, CreatedAt: fixedNow,
	}
	id, err := f.store.CreateUser(context.Background(), user)
	require.NoError(t, err)
	user.Id = id
	return user
}

func (f *fixture) createSession(t *testing.T, date, at string, seats int) string {
	t.Helper()

	id, err := f.bookings.CreateSession(context.Background(), f.speaker.Id, date, at, seats)
	require.NoError(t, err)
	return id
}
