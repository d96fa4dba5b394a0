package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Frostyanand/SpeakEasy/auth"
	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/model"
	"github.com/Frostyanand/SpeakEasy/notify"
)

const minPasswordLength = 8

type TokenIssuer interface {
	Issue(user model.UserData) (string, error)
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

type AccountService struct {
	log      *slog.Logger
	users    database.UserStore
	tokens   TokenIssuer
	notifier Notifier
	otpTTL   time.Duration
	opts     Options
}

func NewAccountService(
	log *slog.Logger,
	users database.UserStore,
	tokens TokenIssuer,
	notifier Notifier,
	otpTTL time.Duration,
	opts Options,
) *AccountService {
	return &AccountService{
		log:      log,
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		otpTTL:   otpTTL,
		opts:     opts.withDefaults(),
	}
}

func (s *AccountService) Signup(ctx context.Context, in SignupInput) (string, error) {
	const op = "services.AccountService.Signup"

	in.Email = normalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return "", errors.Validation("All fields are required")
	}
	if !model.IsKnownRole(in.Role) {
		return "", errors.Validation("Role must be either 'user' or 'speaker'")
	}
	if len(in.Password) < minPasswordLength {
		return "", errors.Validation("Password must be at least %d characters", minPasswordLength)
	}

	passwordHash, err := auth.HashSecret(in.Password)
	if err != nil {
		return "", translate(op, err, nil)
	}
	code, otpHash, expiresAt, err := s.newOTP()
	if err != nil {
		return "", translate(op, err, nil)
	}

	user := model.UserData{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		HashedPassword: passwordHash,
		Role:           in.Role,
		OTPHash:        otpHash,
		OTPExpiresAt:   &expiresAt,
		CreatedAt:      s.opts.Now().UTC(),
	}

	err = s.opts.call(ctx, func(ctx context.Context) error {
		user.Id, err = s.users.CreateUser(ctx, user)
		return err
	})
	if err != nil {
		return "", translate(op, err, map[error]error{
			database.ErrDuplicate: errors.Conflict("Email already registered"),
		})
	}

	s.log.Info("user signed up", slog.String("op", op), slog.String("user_id", user.Id), slog.String("role", user.Role))

	s.notifier.OTP(notify.OTPNotice{Name: user.FirstName, Email: user.Email, Code: code, ExpiresAt: expiresAt})
	return user.Id, nil
}

func (s *AccountService) VerifyOTP(ctx context.Context, email, code string) error {
	const op = "services.AccountService.VerifyOTP"

	invalid := errors.Validation("Invalid email or OTP")

	user, err := s.userByEmail(ctx, email)
	if stderrors.Is(err, database.ErrNotFound) {
		return invalid
	} else if err != nil {
		return translate(op, err, nil)
	}

	if user.Verified {
		return nil
	}
	if user.OTPHash == "" || user.OTPExpiresAt == nil || s.opts.Now().After(*user.OTPExpiresAt) {
		return invalid
	}
	if !auth.IsSecretHashCorrect(user.OTPHash, code) {
		return invalid
	}

	if err := s.opts.call(ctx, func(ctx context.Context) error {
		return s.users.MarkUserVerified(ctx, user.Id)
	}); err != nil {
		return translate(op, err, nil)
	}

	s.log.Info("user verified", slog.String("op", op), slog.String("user_id", user.Id))
	return nil
}

func (s *AccountService) ResendOTP(ctx context.Context, email string) error {
	const op = "services.AccountService.ResendOTP"

	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return translate(op, err, map[error]error{
			database.ErrNotFound: errors.NotFound("User not found"),
		})
	}
	if user.Verified {
		return errors.Conflict("Account is already verified")
	}

	code, otpHash, expiresAt, err := s.newOTP()
	if err != nil {
		return translate(op, err, nil)
	}
	if err := s.opts.call(ctx, func(ctx context.Context) error {
		return s.users.SetUserOTP(ctx, user.Id, otpHash, expiresAt)
	}); err != nil {
		return translate(op, err, nil)
	}

	s.notifier.OTP(notify.OTPNotice{Name: user.FirstName, Email: user.Email, Code: code, ExpiresAt: expiresAt})
	return nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "services.AccountService.Login"

	invalid := errors.Unauthenticated("Invalid email or password")

	user, err := s.userByEmail(ctx, email)
	if stderrors.Is(err, database.ErrNotFound) {
		return "", invalid
	} else if err != nil {
		return "", translate(op, err, nil)
	}

	if !auth.IsSecretHashCorrect(user.HashedPassword, password) {
		return "", invalid
	}
	if !user.Verified {
		return "", errors.Unauthenticated("Please verify your email before logging in")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", translate(op, err, nil)
	}

	s.log.Info("user logged in", slog.String("op", op), slog.String("user_id", user.Id))
	return token, nil
}

func (s *AccountService) userByEmail(ctx context.Context, email string) (model.UserData, error) {
	var user model.UserData
	err := s.opts.call(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.GetUserByEmail(ctx, normalizeEmail(email))
		return err
	})
	return user, err
}

func (s *AccountService) newOTP() (code, hash string, expiresAt time.Time, err error) {
	if code, err = auth.GenerateOTP(); err != nil {
		return "", "", time.Time{}, err
	}
	if hash, err = auth.HashSecret(code); err != nil {
		return "", "", time.Time{}, err
	}
	return code, hash, s.opts.Now().Add(s.otpTTL).UTC(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
