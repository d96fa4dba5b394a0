package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/lib/logger/handlers/slogdiscard"
	"github.com/Frostyanand/SpeakEasy/model"
)

func TestSpeakerProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewSpeakerService(slogdiscard.NewDiscardLogger(), f.store, testOptions())

	_, err := svc.UpsertProfile(ctx, f.speaker.Id, "  ", 10)
	assert.ErrorIs(t, err, errors.ErrValidation)
	_, err = svc.UpsertProfile(ctx, f.speaker.Id, "Go", 0)
	assert.ErrorIs(t, err, errors.ErrValidation)

	existing, err := f.store.GetSpeakerProfile(ctx, f.speaker.Id)
	require.NoError(t, err)

	id, err := svc.UpsertProfile(ctx, f.speaker.Id, "Storytelling", 80)
	require.NoError(t, err)
	assert.Equal(t, existing.Id, id)

	profile, err := svc.GetProfile(ctx, f.speaker.Id)
	require.NoError(t, err)
	assert.Equal(t, "Storytelling", profile.Expertise)
	assert.Equal(t, 80.0, profile.PricePerSession)

	_, err = svc.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestListSpeakersDropsOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewSpeakerService(slogdiscard.NewDiscardLogger(), f.store, testOptions())

	_, err := svc.UpsertProfile(ctx, "deleted-user", "Ghost stories", 5)
	require.NoError(t, err)

	listings, err := svc.ListSpeakers(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, model.SpeakerListing{
		ProfileId:       listings[0].ProfileId,
		UserId:          f.speaker.Id,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Expertise:       "Public speaking",
		PricePerSession: 49.5,
	}, listings[0])
}
