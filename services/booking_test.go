package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/lib/logger/handlers/slogdiscard"
	"github.com/Frostyanand/SpeakEasy/model"
	"github.com/Frostyanand/SpeakEasy/notify"
)

func TestCreateSessionValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		description string
		date        string
		time        string
		seats       int
		wantErr     error
	}{
		{"first slot", "2099-01-01", "09:00", 1, nil},
		{"last slot", "2099-01-01", "15:00", 1, nil},
		{"today", fixedNow.Format("2006-01-02"), "10:00", 1, nil},
		{"before window", "2099-01-02", "08:59", 1, errors.ErrValidation},
		{"after window", "2099-01-02", "15:01", 1, errors.ErrValidation},
		{"unpadded hour", "2099-01-02", "9:00", 1, errors.ErrValidation},
		{"bad time", "2099-01-02", "noon", 1, errors.ErrValidation},
		{"yesterday", "2024-06-14", "10:00", 1, errors.ErrValidation},
		{"bad date", "2099-13-01", "10:00", 1, errors.ErrValidation},
		{"unpadded date", "2099-1-01", "10:00", 1, errors.ErrValidation},
		{"zero seats", "2099-01-03", "10:00", 0, errors.ErrValidation},
		{"negative seats", "2099-01-03", "10:00", -2, errors.ErrValidation},
		{"same slot again", "2099-01-01", "09:00", 3, errors.ErrConflict},
	}

	for _, test := range tests {
		id, err := f.bookings.CreateSession(ctx, f.speaker.Id, test.date, test.time, test.seats)
		if test.wantErr == nil {
			assert.NoErrorf(t, err, test.description)
			assert.NotEmptyf(t, id, test.description)
			continue
		}
		assert.ErrorIsf(t, err, test.wantErr, test.description)
	}
}

func TestCreateSessionShowsUpEmpty(t *testing.T) {
	f := newFixture(t)
	id := f.createSession(t, "2099-01-01", "10:00", 4)

	views, err := f.bookings.GetSpeakerBookings(context.Background(), f.speaker.Id)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, id, views[0].SessionId)
	assert.Equal(t, 0, views[0].SeatsBooked)
	assert.Equal(t, 4, views[0].MaxSeats)
	assert.NotNil(t, views[0].BookedUsers)
	assert.Empty(t, views[0].BookedUsers)
}

func TestBookingLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userB := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)
	userC := f.addUser(t, "Cat", "C", "c@example.com", model.RoleUser)

	sessionID := f.createSession(t, "2099-01-01", "10:00", 1)

	bookingB, err := f.bookings.BookSession(ctx, userB.Id, sessionID)
	require.NoError(t, err)

	_, err = f.bookings.BookSession(ctx, userC.Id, sessionID)
	assert.ErrorIs(t, err, errors.ErrCapacity)

	err = f.bookings.CancelBooking(ctx, userC.Id, bookingB)
	assert.ErrorIs(t, err, errors.ErrAuthorization)

	require.NoError(t, f.bookings.CancelBooking(ctx, userB.Id, bookingB))

	_, err = f.bookings.BookSession(ctx, userC.Id, sessionID)
	require.NoError(t, err)

	session, err := f.store.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.SeatsBooked)

	require.Len(t, f.notifier.bookings, 2)
	assert.Equal(t, "b@example.com", f.notifier.bookings[0].UserEmail)
	assert.Equal(t, "ada@example.com", f.notifier.bookings[0].SpeakerEmail)
	assert.Equal(t, "Ada Lovelace", f.notifier.bookings[0].SpeakerName)
	require.Len(t, f.notifier.cancellations, 1)
	assert.Equal(t, "Bob B", f.notifier.cancellations[0].UserName)
}

func TestBookSessionErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)
	sessionID := f.createSession(t, "2099-01-01", "10:00", 5)

	_, err := f.bookings.BookSession(ctx, user.Id, sessionID)
	require.NoError(t, err)

	_, err = f.bookings.BookSession(ctx, user.Id, sessionID)
	assert.ErrorIs(t, err, errors.ErrConflict)

	_, err = f.bookings.BookSession(ctx, user.Id, "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = f.bookings.BookSession(ctx, user.Id, "")
	assert.ErrorIs(t, err, errors.ErrValidation)

	err = f.bookings.CancelBooking(ctx, user.Id, "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestConcurrentBookSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const seats, users = 3, 10
	sessionID := f.createSession(t, "2099-01-01", "10:00", seats)

	var wg sync.WaitGroup
	errs := make([]error, users)
	for i := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.bookings.BookSession(ctx, fmt.Sprintf("user-%d", i), sessionID)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errors.ErrCapacity)
	}
	assert.Equal(t, seats, succeeded)

	session, err := f.store.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, seats, session.SeatsBooked)
}

func TestConcurrentSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)
	sessionID := f.createSession(t, "2099-01-01", "10:00", 1)

	bookingID, err := f.bookings.BookSession(ctx, user.Id, sessionID)
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = f.bookings.SubmitFeedback(ctx, user.Id, bookingID, i%5+1, nil)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errors.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	booking, err := f.store.GetBooking(ctx, bookingID)
	require.NoError(t, err)
	require.NotNil(t, booking.Rating)
	assert.Len(t, f.notifier.feedback, 1)
	assert.Equal(t, *booking.Rating, f.notifier.feedback[0].Rating)
}

// The seat check comes first, so a user holding the last seat who books
// again is told the session is full.
func TestRebookingFullSessionReportsCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)
	sessionID := f.createSession(t, "2099-01-01", "13:00", 1)

	_, err := f.bookings.BookSession(ctx, user.Id, sessionID)
	require.NoError(t, err)

	_, err = f.bookings.BookSession(ctx, user.Id, sessionID)
	assert.ErrorIs(t, err, errors.ErrCapacity)
	assert.Equal(t, fiber.StatusConflict, errors.StatusOf(err))
}

func TestSeatCountStaysInBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessionID := f.createSession(t, "2099-01-01", "11:00", 2)

	var held []struct{ user, booking string }
	for round := range 6 {
		user := fmt.Sprintf("user-%d", round)
		if id, err := f.bookings.BookSession(ctx, user, sessionID); err == nil {
			held = append(held, struct{ user, booking string }{user, id})
		}
		if round%2 == 1 && len(held) > 0 {
			require.NoError(t, f.bookings.CancelBooking(ctx, held[0].user, held[0].booking))
			held = held[1:]
		}

		session, err := f.store.GetSession(ctx, sessionID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, session.SeatsBooked, 0)
		assert.LessOrEqual(t, session.SeatsBooked, session.MaxSeats)
		assert.Equal(t, len(held), session.SeatsBooked)
	}
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)
	other := f.addUser(t, "Eve", "E", "e@example.com", model.RoleUser)
	sessionID := f.createSession(t, "2099-01-01", "10:00", 5)

	bookingID, err := f.bookings.BookSession(ctx, user.Id, sessionID)
	require.NoError(t, err)

	for _, rating := range []int{0, 6, -1} {
		err := f.bookings.SubmitFeedback(ctx, user.Id, bookingID, rating, nil)
		assert.ErrorIsf(t, err, errors.ErrValidation, "rating %d", rating)
	}

	err = f.bookings.SubmitFeedback(ctx, other.Id, bookingID, 5, nil)
	assert.ErrorIs(t, err, errors.ErrAuthorization)

	err = f.bookings.SubmitFeedback(ctx, user.Id, "missing", 5, nil)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	text := "Very helpful"
	require.NoError(t, f.bookings.SubmitFeedback(ctx, user.Id, bookingID, 4, &text))

	err = f.bookings.SubmitFeedback(ctx, user.Id, bookingID, 5, nil)
	assert.ErrorIs(t, err, errors.ErrConflict)

	views, err := f.bookings.GetUserBookings(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Rating)
	assert.Equal(t, 4, *views[0].Rating)
	assert.Equal(t, text, *views[0].FeedbackText)

	require.Len(t, f.notifier.feedback, 1)
	assert.Equal(t, 4, f.notifier.feedback[0].Rating)
	assert.Equal(t, text, f.notifier.feedback[0].FeedbackText)
	assert.Equal(t, "ada@example.com", f.notifier.feedback[0].SpeakerEmail)
}

func TestAcceptsEveryRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for rating := 1; rating <= 5; rating++ {
		user := fmt.Sprintf("user-%d", rating)
		sessionID := f.createSession(t, "2099-02-01", fmt.Sprintf("%02d:00", 8+rating), 1)
		bookingID, err := f.bookings.BookSession(ctx, user, sessionID)
		require.NoError(t, err)
		assert.NoError(t, f.bookings.SubmitFeedback(ctx, user, bookingID, rating, nil))
	}
}

func TestClearPastSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)

	past, err := f.store.CreateSession(ctx, model.Session{
		SpeakerId: f.speaker.Id, Date: "2024-06-14", Time: "10:00", MaxSeats: 3,
	})
	require.NoError(t, err)
	today := f.createSession(t, fixedNow.Format("2006-01-02"), "10:00", 3)
	future := f.createSession(t, "2099-01-01", "10:00", 3)

	for _, id := range []string{past, today, future} {
		_, err := f.bookings.BookSession(ctx, user.Id, id)
		require.NoError(t, err)
	}

	cleared, err := f.bookings.ClearPastSessions(ctx, user.Id, model.RoleUser)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)

	views, err := f.bookings.GetUserBookings(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, today, views[0].SessionId)
	assert.Equal(t, future, views[1].SessionId)

	speakerViews, err := f.bookings.GetSpeakerBookings(ctx, f.speaker.Id)
	require.NoError(t, err)
	require.Len(t, speakerViews, 3)
	assert.Equal(t, past, speakerViews[0].SessionId)
	require.Len(t, speakerViews[0].BookedUsers, 1)
	assert.Equal(t, "Bob B", speakerViews[0].BookedUsers[0].Name)

	cleared, err = f.bookings.ClearPastSessions(ctx, f.speaker.Id, model.RoleSpeaker)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)

	speakerViews, err = f.bookings.GetSpeakerBookings(ctx, f.speaker.Id)
	require.NoError(t, err)
	assert.Len(t, speakerViews, 2)

	session, err := f.store.GetSession(ctx, past)
	require.NoError(t, err)
	assert.Equal(t, 1, session.SeatsBooked)

	_, err = f.bookings.ClearPastSessions(ctx, user.Id, "admin")
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestGetUserBookingsDropsMissingJoins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)

	noProfile := f.addUser(t, "Nia", "N", "n@example.com", model.RoleSpeaker)
	orphan, err := f.store.CreateSession(ctx, model.Session{
		SpeakerId: noProfile.Id, Date: "2099-01-01", Time: "09:00", MaxSeats: 1,
	})
	require.NoError(t, err)
	ghost, err := f.store.CreateSession(ctx, model.Session{
		SpeakerId: "deleted-speaker", Date: "2099-01-01", Time: "11:00", MaxSeats: 1,
	})
	require.NoError(t, err)
	later := f.createSession(t, "2099-03-01", "09:00", 1)
	earlier := f.createSession(t, "2099-01-01", "14:00", 1)

	for _, id := range []string{orphan, ghost, later, earlier} {
		_, err := f.bookings.BookSession(ctx, user.Id, id)
		require.NoError(t, err)
	}

	views, err := f.bookings.GetUserBookings(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, earlier, views[0].SessionId)
	assert.Equal(t, later, views[1].SessionId)
	assert.Equal(t, "Ada Lovelace", views[0].SpeakerName)
	assert.Equal(t, "Public speaking", views[0].Expertise)
	assert.Equal(t, 49.5, views[0].PricePerSession)
}

// abortingStore fails BookSeat with ErrTxAborted a set number of times.
type abortingStore struct {
	database.Store
	mu       sync.Mutex
	failures int
	calls    int
}

func (s *abortingStore) BookSeat(ctx context.Context, userID, sessionID string, at time.Time) (model.Booking, model.Session, error) {
	s.mu.Lock()
	s.calls++
	fail := s.calls <= s.failures
	s.mu.Unlock()

	if fail {
		return model.Booking{}, model.Session{}, fmt.Errorf("book: %w", database.ErrTxAborted)
	}
	return s.Store.BookSeat(ctx, userID, sessionID, at)
}

func TestBookSessionRetriesAbortedTransactions(t *testing.T) {
	base := newFixture(t)
	sessionID := base.createSession(t, "2099-01-01", "10:00", 2)

	store := &abortingStore{Store: base.store, failures: 2}
	svc := NewBookingService(slogdiscard.NewDiscardLogger(), store, base.notifier, testOptions())

	_, err := svc.BookSession(context.Background(), "user-1", sessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, store.calls)
}

func TestBookSessionGivesUpAsConflict(t *testing.T) {
	base := newFixture(t)
	sessionID := base.createSession(t, "2099-01-01", "10:00", 2)

	store := &abortingStore{Store: base.store, failures: 100}
	svc := NewBookingService(slogdiscard.NewDiscardLogger(), store, base.notifier, testOptions())

	_, err := svc.BookSession(context.Background(), "user-1", sessionID)
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.Equal(t, 3, store.calls)

	session, err := base.store.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, session.SeatsBooked)
}

type failingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSink) fail(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func (s *failingSink) NotifyBooking(ctx context.Context, _ notify.BookingNotice) error {
	return s.fail(ctx)
}

func (s *failingSink) NotifyCancellation(ctx context.Context, _ notify.CancellationNotice) error {
	return s.fail(ctx)
}

func (s *failingSink) NotifyFeedback(ctx context.Context, _ notify.FeedbackNotice) error {
	return s.fail(ctx)
}

func (s *failingSink) SendOTP(ctx context.Context, _ notify.OTPNotice) error {
	return s.fail(ctx)
}

func TestBookingSucceedsWhenSinkHangs(t *testing.T) {
	base := newFixture(t)
	ctx := context.Background()
	user := base.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)
	sessionID := base.createSession(t, "2099-01-01", "10:00", 1)

	sink := &failingSink{}
	dispatcher := notify.NewDispatcher(sink, 500*time.Millisecond, slogdiscard.NewDiscardLogger())
	svc := NewBookingService(slogdiscard.NewDiscardLogger(), base.store, dispatcher, testOptions())

	start := time.Now()
	bookingID, err := svc.BookSession(ctx, user.Id, sessionID)
	require.NoError(t, err)
	require.NoError(t, svc.SubmitFeedback(ctx, user.Id, bookingID, 5, nil))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	dispatcher.Wait()
	assert.Equal(t, 2, sink.calls)
}

func TestBookingSucceedsWithoutNoticeDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "Bob", "B", "b@example.com", model.RoleUser)

	// No user record for the speaker, so the notice cannot be built.
	ghost, err := f.store.CreateSession(ctx, model.Session{
		SpeakerId: "deleted-speaker", Date: "2099-01-01", Time: "12:00", MaxSeats: 1,
	})
	require.NoError(t, err)

	_, err = f.bookings.BookSession(ctx, user.Id, ghost)
	require.NoError(t, err)
	assert.Empty(t, f.notifier.bookings)
}
