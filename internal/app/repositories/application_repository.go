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
	"github.com/ozgur/teamup/internal/pkg/dberrors"
)

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts an application. The (post_id, applicant_id) pair is unique;
// a duplicate maps to ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (post_id, applicant_id, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, app.PostID, app.ApplicantID, models.DecisionPending, app.Message).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_post_id_applicant_id_key") {
			return 0, apperrors.ErrAlreadyApplied
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves an application with its applicant profile snapshot
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := squirrel.Select(
		"a.id", "a.post_id", "a.applicant_id", "a.status", "a.message",
		"a.applied_at", "a.reviewed_at",
		"u.first_name", "u.last_name", "u.section", "u.year",
	).
		From("applications a").
		Join("users u ON u.id = a.applicant_id").
		Where("a.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var app models.Application
	var profile models.ProfileSnapshot
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&app.ID,
		&app.PostID,
		&app.ApplicantID,
		&app.Status,
		&app.Message,
		&app.AppliedAt,
		&app.ReviewedAt,
		&profile.FirstName,
		&profile.LastName,
		&profile.Section,
		&profile.Year,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	profile.UserID = app.ApplicantID
	app.Applicant = &profile
	return &app, nil
}

// SetStatus conditionally moves an application from expected to next status.
// A concurrent reviewer who already resolved the row makes the predicate
// fail, which surfaces as ErrAlreadyReviewed.
func (r *ApplicationRepository) SetStatus(ctx context.Context, id int64, expected, next models.DecisionStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $3,
		    reviewed_at = CASE WHEN $3 = 'PENDING' THEN NULL ELSE NOW() END
		WHERE id = $1 AND status = $2
	`, id, expected, next)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAlreadyReviewed
	}

	return nil
}

// ListByPost retrieves applications for a post, newest first
func (r *ApplicationRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Application, error) {
	query := squirrel.Select(
		"a.id", "a.post_id", "a.applicant_id", "a.status", "a.message",
		"a.applied_at", "a.reviewed_at",
		"u.first_name", "u.last_name", "u.section", "u.year",
	).
		From("applications a").
		Join("users u ON u.id = a.applicant_id").
		Where("a.post_id = ?", postID).
		OrderBy("a.applied_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		var profile models.ProfileSnapshot
		err := rows.Scan(
			&app.ID,
			&app.PostID,
			&app.ApplicantID,
			&app.Status,
			&app.Message,
			&app.AppliedAt,
			&app.ReviewedAt,
			&profile.FirstName,
			&profile.LastName,
			&profile.Section,
			&profile.Year,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profile.UserID = app.ApplicantID
		app.Applicant = &profile
		apps = append(apps, &app)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return apps, nil
}

// ListPendingApplicantProfiles returns profile snapshots of everyone with a
// pending application to any post of the given team. Used for the advisory
// same-section warning.
func (r *ApplicationRepository) ListPendingApplicantProfiles(ctx context.Context, teamID int64) ([]*models.ProfileSnapshot, error) {
	query := squirrel.Select(
		"u.id", "u.first_name", "u.last_name", "u.section", "u.year",
	).
		From("applications a").
		Join("recruitment_posts p ON p.id = a.post_id").
		Join("users u ON u.id = a.applicant_id").
		Where("p.team_id = ? AND a.status = ?", teamID, models.DecisionPending).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanProfileSnapshots(ctx, r.db, sql, args)
}

// CountPendingPBLByUser counts the user's pending applications to PBL teams
func (r *ApplicationRepository) CountPendingPBLByUser(ctx context.Context, userID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("applications a").
		Join("recruitment_posts p ON p.id = a.post_id").
		Join("teams t ON t.id = p.team_id").
		Where("a.applicant_id = ? AND a.status = ? AND t.purpose = ?",
			userID, models.DecisionPending, models.TeamPurposePBL).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}
