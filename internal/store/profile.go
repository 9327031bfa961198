package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/devlink-social/apiserver/types"
)

// ProfileRepository handles persistence for profiles. The experience and
// education sequences live as JSONB columns on the profile row, so a
// sub-collection mutation is a fetch, an in-memory change, and a single
// row update.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, status, company, website, location, bio, github_username, skills, social, experience, education, created_at, updated_at`

func (r *ProfileRepository) List(ctx context.Context) ([]types.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]types.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int) (types.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Profile{}, ErrNotFound
		}
		return types.Profile{}, err
	}
	return profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile types.Profile) (types.Profile, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	skillsJSON, socialJSON, experienceJSON, educationJSON, err := marshalProfileJSON(profile)
	if err != nil {
		return types.Profile{}, err
	}

	const query = `
		INSERT INTO profiles (user_id, status, company, website, location, bio, github_username, skills, social, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		profile.UserID,
		profile.Status,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.GithubUsername,
		skillsJSON,
		socialJSON,
		experienceJSON,
		educationJSON,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&profile.ID); err != nil {
		if isUniqueViolation(err) {
			return types.Profile{}, ErrDuplicate
		}
		return types.Profile{}, err
	}
	return profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile types.Profile) (types.Profile, error) {
	profile.UpdatedAt = time.Now()

	skillsJSON, socialJSON, experienceJSON, educationJSON, err := marshalProfileJSON(profile)
	if err != nil {
		return types.Profile{}, err
	}

	const query = `
		UPDATE profiles
		SET status = $1,
			company = $2,
			website = $3,
			location = $4,
			bio = $5,
			github_username = $6,
			skills = $7,
			social = $8,
			experience = $9,
			education = $10,
			updated_at = $11
		WHERE user_id = $12`
	result, err := r.db.ExecContext(
		ctx,
		query,
		profile.Status,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.GithubUsername,
		skillsJSON,
		socialJSON,
		experienceJSON,
		educationJSON,
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		return types.Profile{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Profile{}, err
	}
	if affected == 0 {
		return types.Profile{}, ErrNotFound
	}

	return profile, nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID int) error {
	const query = `DELETE FROM profiles WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (types.Profile, error) {
	var profile types.Profile
	var skillsJSON, socialJSON, experienceJSON, educationJSON []byte
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Status,
		&profile.Company,
		&profile.Website,
		&profile.Location,
		&profile.Bio,
		&profile.GithubUsername,
		&skillsJSON,
		&socialJSON,
		&experienceJSON,
		&educationJSON,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return types.Profile{}, err
	}

	_ = json.Unmarshal(skillsJSON, &profile.Skills)
	_ = json.Unmarshal(socialJSON, &profile.Social)
	_ = json.Unmarshal(experienceJSON, &profile.Experience)
	_ = json.Unmarshal(educationJSON, &profile.Education)
	return profile, nil
}

func marshalProfileJSON(profile types.Profile) (skills, social, experience, education []byte, err error) {
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Experience == nil {
		profile.Experience = []types.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []types.Education{}
	}

	if skills, err = json.Marshal(profile.Skills); err != nil {
		return nil, nil, nil, nil, err
	}
	if social, err = json.Marshal(profile.Social); err != nil {
		return nil, nil, nil, nil, err
	}
	if experience, err = json.Marshal(profile.Experience); err != nil {
		return nil, nil, nil, nil, err
	}
	if education, err = json.Marshal(profile.Education); err != nil {
		return nil, nil, nil, nil, err
	}
	return skills, social, experience, education, nil
}
