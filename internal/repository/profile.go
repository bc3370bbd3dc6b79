package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rihla-travel/portal/internal/model"
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.Profile, error)
	Create(profile *model.Profile) error
	Update(userID, name, phone string) error
	UpdateAvatar(userID, avatarURL string) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.Must(uuid.NewV7()).String()
	}
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}

	_, err := r.db.Exec(`
		INSERT INTO profiles (id, user_id, name, phone, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, profile.ID, profile.UserID, profile.Name, profile.Phone, profile.AvatarURL, profile.CreatedAt, profile.UpdatedAt)

	return err
}

func (r *profileRepository) Update(userID, name, phone string) error {
	return r.exec(`
		UPDATE profiles
		SET name = $1, phone = $2, updated_at = $3
		WHERE user_id = $4
	`, name, phone, time.Now(), userID)
}

func (r *profileRepository) UpdateAvatar(userID, avatarURL string) error {
	return r.exec(`
		UPDATE profiles
		SET avatar_url = $1, updated_at = $2
		WHERE user_id = $3
	`, avatarURL, time.Now(), userID)
}

func (r *profileRepository) exec(query string, args ...any) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
