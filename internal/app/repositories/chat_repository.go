package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozgur/teamup/internal/app/models"
)

// ChatRepository handles database operations for team chat channels.
// Message content lives in the chat backend; this side only provisions
// channels and their member lists.
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetChannelByTeamID retrieves the channel of a team, nil if none exists yet
func (r *ChatRepository) GetChannelByTeamID(ctx context.Context, teamID int64) (*models.ChatChannel, error) {
	query := squirrel.Select("id", "team_id", "external_id", "created_at").
		From("team_channels").
		Where("team_id = ?", teamID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var channel models.ChatChannel
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&channel.ID,
		&channel.TeamID,
		&channel.ExternalID,
		&channel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &channel, nil
}

// EnsureChannel creates the team channel if absent and returns its ID.
// Safe to call concurrently; the unique team_id constraint plus the
// DO NOTHING conflict clause make the create race-free.
func (r *ChatRepository) EnsureChannel(ctx context.Context, teamID int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO team_channels (team_id, external_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id) DO UPDATE SET team_id = EXCLUDED.team_id
		RETURNING id
	`, teamID, uuid.New().String()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// AddChannelMember idempotently adds a user to a channel
func (r *ChatRepository) AddChannelMember(ctx context.Context, channelID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO team_channel_members (channel_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (channel_id, user_id) DO NOTHING
	`, channelID, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RemoveChannelMember removes a user from a channel, no-op if absent
func (r *ChatRepository) RemoveChannelMember(ctx context.Context, channelID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM team_channel_members
		WHERE channel_id = $1 AND user_id = $2
	`, channelID, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// ListChannelMemberIDs returns the user IDs present in a channel
func (r *ChatRepository) ListChannelMemberIDs(ctx context.Context, channelID int64) ([]int64, error) {
	query := squirrel.Select("user_id").
		From("team_channel_members").
		Where("channel_id = ?", channelID).
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

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return userIDs, nil
}
