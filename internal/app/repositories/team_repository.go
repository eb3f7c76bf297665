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

// TeamRepository handles database operations for teams
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a team and its leader membership in one transaction.
// The leader is always a current member, so both rows appear together.
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, description, leader_id, purpose, year, max_size, member_count, is_full)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $6 <= 1)
		RETURNING id
	`, team.Name, team.Description, team.LeaderID, team.Purpose, team.Year, team.MaxSize).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
	`, id, team.LeaderID)
	if err != nil {
		return 0, fmt.Errorf("error inserting leader membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	return id, nil
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	query := squirrel.Select(
		"id", "name", "description", "leader_id", "purpose", "year",
		"max_size", "member_count", "is_full", "created_at", "updated_at",
	).
		From("teams").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var team models.Team
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.LeaderID,
		&team.Purpose,
		&team.Year,
		&team.MaxSize,
		&team.MemberCount,
		&team.IsFull,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &team, nil
}

// GetAll retrieves teams with filtering and pagination
func (r *TeamRepository) GetAll(ctx context.Context, purpose *string, leaderID *int64, search *string, page, pageSize int) ([]models.Team, int64, error) {
	query := squirrel.Select(
		"id", "name", "description", "leader_id", "purpose", "year",
		"max_size", "member_count", "is_full", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("teams").
		PlaceholderFormat(squirrel.Dollar)

	if purpose != nil && *purpose != "" {
		query = query.Where("purpose = ?", *purpose)
	}
	if leaderID != nil {
		query = query.Where("leader_id = ?", *leaderID)
	}
	if search != nil && *search != "" {
		query = query.Where("name ILIKE ?", "%"+*search+"%")
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("id").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	var total int64
	for rows.Next() {
		var team models.Team
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Description,
			&team.LeaderID,
			&team.Purpose,
			&team.Year,
			&team.MaxSize,
			&team.MemberCount,
			&team.IsFull,
			&team.CreatedAt,
			&team.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		teams = append(teams, team)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return teams, total, nil
}

// SetLeader reassigns team leadership. The new leader must already be an
// active member, which the guarding subquery enforces in the same statement.
func (r *TeamRepository) SetLeader(ctx context.Context, teamID, newLeaderID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE teams
		SET leader_id = $2, updated_at = NOW()
		WHERE id = $1
		  AND EXISTS (
			SELECT 1 FROM team_members
			WHERE team_id = $1 AND user_id = $2
		  )
	`, teamID, newLeaderID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotTeamMember
	}

	return nil
}
