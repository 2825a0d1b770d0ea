package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/otentika/otentika/internal/identity/entity"
)

const userColumns = `id, email, phone, name, role, credential_hash, otp_code, otp_expires_at, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u          entity.User
		phone      pgtype.Text
		name       pgtype.Text
		credential pgtype.Text
		otpCode    pgtype.Text
		otpExpires pgtype.Timestamptz
	)

	err := row.Scan(&u.ID, &u.Email, &phone, &name, &u.Role, &credential, &otpCode, &otpExpires, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Phone = phone.String
	u.Name = name.String
	u.CredentialHash = credential.String
	u.OTPCode = otpCode.String
	if otpExpires.Valid {
		u.OTPExpiresAt = otpExpires.Time
	}

	return &u, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) GetUserList(ctx context.Context) (_ []entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return users, nil
}

func (s *DB) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsByEmailOrPhone")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR phone = $2)`,
		email, phone,
	).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}
