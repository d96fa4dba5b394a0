package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/model"
)

const userColumns = `id, first_name, last_name, email, password_hash, role, verified,
	otp_hash, otp_expires_at, created_at`

func (s *Store) CreateUser(ctx context.Context, user model.UserData) (string, error) {
	id := uuid.NewString()

	var otpExpires sql.NullString
	if user.OTPExpiresAt != nil {
		otpExpires = sql.NullString{String: formatTime(*user.OTPExpiresAt), Valid: true}
	}
	otpHash := sql.NullString{String: user.OTPHash, Valid: user.OTPHash != ""}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, user.FirstName, user.LastName, user.Email, user.HashedPassword, user.Role,
		user.Verified, otpHash, otpExpires, formatTime(user.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("insert user: %w", classify(err))
	}

	return id, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.UserData, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if err != nil {
		return model.UserData{}, fmt.Errorf("find user by email: %w", notFound(err))
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (model.UserData, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		return model.UserData{}, fmt.Errorf("find user %s: %w", id, notFound(err))
	}
	return user, nil
}

func (s *Store) SetUserOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET otp_hash = ?, otp_expires_at = ? WHERE id = ?`,
		otpHash, formatTime(expiresAt), id)
	if err != nil {
		return fmt.Errorf("set otp for %s: %w", id, err)
	}
	return requireAffected(res)
}

func (s *Store) MarkUserVerified(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET verified = 1, otp_hash = NULL, otp_expires_at = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("verify user %s: %w", id, err)
	}
	return requireAffected(res)
}

func scanUser(row scanner) (model.UserData, error) {
	var u model.UserData
	var otpHash, otpExpires sql.NullString
	var createdAt string

	err := row.Scan(&u.Id, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.Role,
		&u.Verified, &otpHash, &otpExpires, &createdAt)
	if err != nil {
		return model.UserData{}, err
	}

	u.OTPHash = otpHash.String
	if u.OTPExpiresAt, err = parseNullTime(otpExpires); err != nil {
		return model.UserData{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.UserData{}, err
	}

	return u, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return nil
}
