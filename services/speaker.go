package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/model"
)

type SpeakerService struct {
	log   *slog.Logger
	store database.Store
	opts  Options
}

func NewSpeakerService(log *slog.Logger, store database.Store, opts Options) *SpeakerService {
	return &SpeakerService{log: log, store: store, opts: opts.withDefaults()}
}

func (s *SpeakerService) UpsertProfile(ctx context.Context, ownerID, expertise string, price float64) (string, error) {
	const op = "services.SpeakerService.UpsertProfile"

	expertise = strings.TrimSpace(expertise)
	if expertise == "" {
		return "", errors.Validation("Missing required field: expertise")
	}
	if price <= 0 {
		return "", errors.Validation("price_per_session must be a positive number")
	}

	var id string
	err := s.opts.call(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.store.UpsertSpeakerProfile(ctx, model.SpeakerProfile{
			UserId:          ownerID,
			Expertise:       expertise,
			PricePerSession: price,
		})
		return err
	})
	if err != nil {
		return "", translate(op, err, nil)
	}

	s.log.Info("speaker profile saved", slog.String("op", op), slog.String("profile_id", id))
	return id, nil
}

func (s *SpeakerService) GetProfile(ctx context.Context, ownerID string) (model.SpeakerProfile, error) {
	const op = "services.SpeakerService.GetProfile"

	var profile model.SpeakerProfile
	err := s.opts.call(ctx, func(ctx context.Context) error {
		var err error
		profile, err = s.store.GetSpeakerProfile(ctx, ownerID)
		return err
	})
	if err != nil {
		return model.SpeakerProfile{}, translate(op, err, map[error]error{
			database.ErrNotFound: errors.NotFound("Speaker profile not found"),
		})
	}
	return profile, nil
}

// ListSpeakers skips profiles whose owner no longer exists.
func (s *SpeakerService) ListSpeakers(ctx context.Context) ([]model.SpeakerListing, error) {
	const op = "services.SpeakerService.ListSpeakers"

	ctx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	profiles, err := s.store.ListSpeakerProfiles(ctx)
	if err != nil {
		return nil, translate(op, err, nil)
	}

	listings := make([]model.SpeakerListing, 0, len(profiles))
	for _, p := range profiles {
		user, err := s.store.GetUserByID(ctx, p.UserId)
		if stderrors.Is(err, database.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, translate(op, err, nil)
		}

		listings = append(listings, model.SpeakerListing{
			ProfileId:       p.Id,
			UserId:          p.UserId,
			FirstName:       user.FirstName,
			LastName:        user.LastName,
			Email:           user.Email,
			Expertise:       p.Expertise,
			PricePerSession: p.PricePerSession,
		})
	}
	return listings, nil
}
