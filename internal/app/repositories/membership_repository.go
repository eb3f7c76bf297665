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

// MembershipRepository handles database operations for team memberships.
// It is the roster store: the uniqueness constraint on (team_id, user_id)
// and the locking seat claim inside the insert are what keep concurrent
// decisions from over-filling a team.
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// InsertMembership claims a seat and inserts the membership in one statement.
// The claim is the conditional UPDATE on the teams row: it takes the row lock,
// so a concurrent claim waits and then re-evaluates member_count against the
// committed value. Two inserts racing for the last seat therefore cannot both
// succeed. A duplicate (team_id, user_id) aborts the whole statement, claim
// included, and is reported as added=false with a nil error (idempotent
// retry); an empty claim means the team is full or missing.
func (r *MembershipRepository) InsertMembership(ctx context.Context, teamID, userID int64) (bool, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		WITH claimed AS (
			UPDATE teams
			SET member_count = member_count + 1,
			    is_full = member_count + 1 >= max_size,
			    updated_at = NOW()
			WHERE id = $1 AND member_count < max_size
			RETURNING id
		)
		INSERT INTO team_members (team_id, user_id)
		SELECT id, $2
		FROM claimed
		RETURNING id
	`, teamID, userID).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "team_members_team_id_user_id_key") {
			return false, nil
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrCapacityExceeded
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// DeleteMembership removes a membership row
func (r *MembershipRepository) DeleteMembership(ctx context.Context, teamID, userID int64) error {
	query := squirrel.Delete("team_members").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotTeamMember
	}

	return nil
}

// GetActiveMembers retrieves the team roster with profile snapshots
func (r *MembershipRepository) GetActiveMembers(ctx context.Context, teamID int64) ([]*models.TeamMember, error) {
	query := squirrel.Select(
		"tm.id", "tm.team_id", "tm.user_id", "tm.joined_at",
		"u.first_name", "u.last_name", "u.section", "u.year",
	).
		From("team_members tm").
		Join("users u ON u.id = tm.user_id").
		Where("tm.team_id = ?", teamID).
		OrderBy("tm.joined_at").
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

	var members []*models.TeamMember
	for rows.Next() {
		var member models.TeamMember
		var profile models.ProfileSnapshot
		err := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.UserID,
			&member.JoinedAt,
			&profile.FirstName,
			&profile.LastName,
			&profile.Section,
			&profile.Year,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profile.UserID = member.UserID
		member.Profile = &profile
		members = append(members, &member)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return members, nil
}

// IsMember checks if a user is an active member of a team
func (r *MembershipRepository) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	query := squirrel.Select("1").
		From("team_members").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// RefreshDerivedFields recomputes member_count and is_full from the
// authoritative membership set. Inserts keep the counter in step through the
// seat claim; this recount reconciles it after removals and heals any drift.
func (r *MembershipRepository) RefreshDerivedFields(ctx context.Context, teamID int64) (int, bool, error) {
	var memberCount int
	var isFull bool
	err := r.db.QueryRow(ctx, `
		UPDATE teams t
		SET member_count = c.cnt,
		    is_full = c.cnt >= t.max_size,
		    updated_at = NOW()
		FROM (
			SELECT COUNT(*) AS cnt
			FROM team_members
			WHERE team_id = $1
		) c
		WHERE t.id = $1
		RETURNING t.member_count, t.is_full
	`, teamID).Scan(&memberCount, &isFull)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, apperrors.ErrTeamNotFound
		}
		return 0, false, fmt.Errorf("error executing query: %w", err)
	}

	return memberCount, isFull, nil
}
