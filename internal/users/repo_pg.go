package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = "id, email, full_name, given_name, family_name, picture_url, created_at, updated_at"

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  given_name = EXCLUDED.given_name,
  family_name = EXCLUDED.family_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullString(user.FullName),
		nullString(user.GivenName),
		nullString(user.FamilyName),
		nullString(user.PictureURL),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`

	var (
		user                                     User
		fullName, givenName, familyName, picture sql.NullString
		updatedAt                                sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.Email,
		&fullName, &givenName, &familyName, &picture,
		&user.CreatedAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}

	user.FullName = fullName.String
	user.GivenName = givenName.String
	user.FamilyName = familyName.String
	user.PictureURL = picture.String
	user.UpdatedAt = updatedAt.Time
	if !updatedAt.Valid {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
