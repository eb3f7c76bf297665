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

// JoinRequestRepository handles database operations for join requests
type JoinRequestRepository struct {
	db *pgxpool.Pool
}

// NewJoinRequestRepository creates a new JoinRequestRepository
func NewJoinRequestRepository(db *pgxpool.Pool) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

// Create inserts a join request. The (team_id, requester_id) pair is unique;
// a rejected request is resubmitted through Resubmit, never duplicated.
func (r *JoinRequestRepository) Create(ctx context.Context, req *models.JoinRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO join_requests (team_id, requester_id, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.TeamID, req.RequesterID, models.DecisionPending, req.Message).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "join_requests_team_id_requester_id_key") {
			return 0, apperrors.ErrAlreadyRequested
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a join request with its requester profile snapshot
func (r *JoinRequestRepository) GetByID(ctx context.Context, id int64) (*models.JoinRequest, error) {
	query := squirrel.Select(
		"jr.id", "jr.team_id", "jr.requester_id", "jr.status", "jr.message",
		"jr.requested_at", "jr.reviewed_at",
		"u.first_name", "u.last_name", "u.section", "u.year",
	).
		From("join_requests jr").
		Join("users u ON u.id = jr.requester_id").
		Where("jr.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var req models.JoinRequest
	var profile models.ProfileSnapshot
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&req.ID,
		&req.TeamID,
		&req.RequesterID,
		&req.Status,
		&req.Message,
		&req.RequestedAt,
		&req.ReviewedAt,
		&profile.FirstName,
		&profile.LastName,
		&profile.Section,
		&profile.Year,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	profile.UserID = req.RequesterID
	req.Requester = &profile
	return &req, nil
}

// SetStatus conditionally moves a join request from expected to next status
func (r *JoinRequestRepository) SetStatus(ctx context.Context, id int64, expected, next models.DecisionStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE join_requests
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

// ListPendingByTeam retrieves pending join requests for a team, oldest first
func (r *JoinRequestRepository) ListPendingByTeam(ctx context.Context, teamID int64) ([]*models.JoinRequest, error) {
	query := squirrel.Select(
		"jr.id", "jr.team_id", "jr.requester_id", "jr.status", "jr.message",
		"jr.requested_at", "jr.reviewed_at",
		"u.first_name", "u.last_name", "u.section", "u.year",
	).
		From("join_requests jr").
		Join("users u ON u.id = jr.requester_id").
		Where("jr.team_id = ? AND jr.status = ?", teamID, models.DecisionPending).
		OrderBy("jr.requested_at").
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

	var requests []*models.JoinRequest
	for rows.Next() {
		var req models.JoinRequest
		var profile models.ProfileSnapshot
		err := rows.Scan(
			&req.ID,
			&req.TeamID,
			&req.RequesterID,
			&req.Status,
			&req.Message,
			&req.RequestedAt,
			&req.ReviewedAt,
			&profile.FirstName,
			&profile.LastName,
			&profile.Section,
			&profile.Year,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profile.UserID = req.RequesterID
		req.Requester = &profile
		requests = append(requests, &req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return requests, nil
}

// ListPendingRequesterProfiles returns profile snapshots of everyone with a
// pending join request for the team
func (r *JoinRequestRepository) ListPendingRequesterProfiles(ctx context.Context, teamID int64) ([]*models.ProfileSnapshot, error) {
	query := squirrel.Select(
		"u.id", "u.first_name", "u.last_name", "u.section", "u.year",
	).
		From("join_requests jr").
		Join("users u ON u.id = jr.requester_id").
		Where("jr.team_id = ? AND jr.status = ?", teamID, models.DecisionPending).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanProfileSnapshots(ctx, r.db, sql, args)
}

// CountPendingPBLByUser counts the user's pending join requests to PBL teams
func (r *JoinRequestRepository) CountPendingPBLByUser(ctx context.Context, userID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("join_requests jr").
		Join("teams t ON t.id = jr.team_id").
		Where("jr.requester_id = ? AND jr.status = ? AND t.purpose = ?",
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
