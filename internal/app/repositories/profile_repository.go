package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
)

// ProfileRepository reads user profile snapshots. The rows belong to the
// user-profile service; this repository never writes them.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetSectionYear retrieves the profile snapshot used for conflict evaluation
func (r *ProfileRepository) GetSectionYear(ctx context.Context, userID int64) (*models.ProfileSnapshot, error) {
	query := squirrel.Select("id", "first_name", "last_name", "section", "year").
		From("users").
		Where("id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var profile models.ProfileSnapshot
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Section,
		&profile.Year,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &profile, nil
}

// scanProfileSnapshots runs a profile projection query and scans the rows
func scanProfileSnapshots(ctx context.Context, db *pgxpool.Pool, sql string, args []interface{}) ([]*models.ProfileSnapshot, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var profiles []*models.ProfileSnapshot
	for rows.Next() {
		var profile models.ProfileSnapshot
		err := rows.Scan(
			&profile.UserID,
			&profile.FirstName,
			&profile.LastName,
			&profile.Section,
			&profile.Year,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return profiles, nil
}
