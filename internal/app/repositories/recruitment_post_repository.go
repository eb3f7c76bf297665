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

// RecruitmentPostRepository handles database operations for recruitment posts
type RecruitmentPostRepository struct {
	db *pgxpool.Pool
}

// NewRecruitmentPostRepository creates a new RecruitmentPostRepository
func NewRecruitmentPostRepository(db *pgxpool.Pool) *RecruitmentPostRepository {
	return &RecruitmentPostRepository{db: db}
}

// Create inserts a recruitment post
func (r *RecruitmentPostRepository) Create(ctx context.Context, post *models.RecruitmentPost) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO recruitment_posts (team_id, title, description, positions_available, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, post.TeamID, post.Title, post.Description, post.PositionsAvailable, models.PostStatusOpen, post.ExpiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a recruitment post by ID
func (r *RecruitmentPostRepository) GetByID(ctx context.Context, id int64) (*models.RecruitmentPost, error) {
	query := squirrel.Select(
		"id", "team_id", "title", "description", "positions_available",
		"status", "expires_at", "created_at", "updated_at",
	).
		From("recruitment_posts").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var post models.RecruitmentPost
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&post.ID,
		&post.TeamID,
		&post.Title,
		&post.Description,
		&post.PositionsAvailable,
		&post.Status,
		&post.ExpiresAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &post, nil
}

// ListOpen retrieves open posts with pagination, newest first
func (r *RecruitmentPostRepository) ListOpen(ctx context.Context, teamID *int64, page, pageSize int) ([]models.RecruitmentPost, int64, error) {
	query := squirrel.Select(
		"id", "team_id", "title", "description", "positions_available",
		"status", "expires_at", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("recruitment_posts").
		Where("status = ?", models.PostStatusOpen).
		PlaceholderFormat(squirrel.Dollar)

	if teamID != nil {
		query = query.Where("team_id = ?", *teamID)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("created_at DESC").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []models.RecruitmentPost
	var total int64
	for rows.Next() {
		var post models.RecruitmentPost
		err := rows.Scan(
			&post.ID,
			&post.TeamID,
			&post.Title,
			&post.Description,
			&post.PositionsAvailable,
			&post.Status,
			&post.ExpiresAt,
			&post.CreatedAt,
			&post.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, total, nil
}

// DecrementPositions atomically decrements positions_available and closes the
// post when it reaches zero. The positions_available > 0 predicate keeps two
// concurrent acceptances from over-closing or double-decrementing.
func (r *RecruitmentPostRepository) DecrementPositions(ctx context.Context, postID int64) (int, models.RecruitmentPostStatus, error) {
	var remaining int
	var status models.RecruitmentPostStatus
	err := r.db.QueryRow(ctx, `
		UPDATE recruitment_posts
		SET positions_available = positions_available - 1,
		    status = CASE WHEN positions_available - 1 <= 0 THEN 'CLOSED' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1 AND positions_available > 0
		RETURNING positions_available, status
	`, postID).Scan(&remaining, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", apperrors.ErrPostNotOpen
		}
		return 0, "", fmt.Errorf("error executing query: %w", err)
	}

	return remaining, status, nil
}

// SetStatus updates the lifecycle status of a post
func (r *RecruitmentPostRepository) SetStatus(ctx context.Context, postID int64, status models.RecruitmentPostStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE recruitment_posts
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, postID, status)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}
