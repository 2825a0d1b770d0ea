package db

import (
	"context"

	"github.com/otentika/otentika/internal/identity/entity"
)

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO users (id, email, phone, name, role, credential_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
		in.ID, in.Email, in.Phone, in.Name, int16(in.Role), in.CredentialHash,
	)

	return s.mapError(err)
}

// UpsertChallenge writes a challenge for the email, creating a minimal record
// when none exists. An existing challenge is overwritten (last write wins).
// It returns the id of the record holding the challenge.
func (s *DB) UpsertChallenge(ctx context.Context, in entity.UpsertChallenge) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "UpsertChallenge")
	defer func() { s.endSpan(span, err) }()

	var id int64
	err = s.conn.QueryRow(ctx, `
		INSERT INTO users (id, email, role, otp_code, otp_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (email) DO UPDATE
		SET otp_code = EXCLUDED.otp_code, otp_expires_at = EXCLUDED.otp_expires_at, updated_at = now()
		RETURNING id`,
		in.NewID, in.Email, int16(entity.RoleUser), in.Code, in.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return 0, s.mapError(err)
	}

	return id, nil
}

// ConsumeChallenge clears the challenge only while the stored code still
// equals the submitted one, making consumption exactly-once under races.
func (s *DB) ConsumeChallenge(ctx context.Context, userID int64, code string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallenge")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE users
		SET otp_code = NULL, otp_expires_at = NULL, updated_at = now()
		WHERE id = $1 AND otp_code = $2`,
		userID, code,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) CompleteRegistration(ctx context.Context, in entity.CompleteRegistration) (err error) {
	ctx, span := s.startSpan(ctx, "CompleteRegistration")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE users
		SET name = $2, phone = $3, credential_hash = $4, updated_at = now()
		WHERE id = $1`,
		in.UserID, in.Name, in.Phone, in.CredentialHash,
	)

	return s.mapError(err)
}

func (s *DB) PatchUser(ctx context.Context, in entity.PatchUser) (err error) {
	ctx, span := s.startSpan(ctx, "PatchUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE users
		SET email = COALESCE(NULLIF($2, ''), email),
		    phone = COALESCE(NULLIF($3, ''), phone),
		    name = COALESCE(NULLIF($4, ''), name),
		    role = CASE WHEN $5 > 0 THEN $5 ELSE role END,
		    updated_at = now()
		WHERE id = $1`,
		in.ID, in.Email, in.Phone, in.Name, int16(in.Role),
	)

	return s.mapError(err)
}

func (s *DB) DeleteUser(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}
