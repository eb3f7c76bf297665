//go:build integration
// +build integration

package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/repositories"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
)

// The tests below exercise the conditional SQL the roster's concurrency
// guarantees live in, against a real Postgres.

func TestInsertMembershipLastSeatRace(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	teams := repositories.NewTeamRepository(pool)
	members := repositories.NewMembershipRepository(pool)

	seedUsers(t, pool, 1, 2, 3)

	teamID, err := teams.Create(ctx, &models.Team{
		Name: "Racers", LeaderID: 1, Purpose: models.TeamPurposeHackathon, Year: 2, MaxSize: 2,
	})
	require.NoError(t, err)

	// One seat left. Two candidates take it at the same moment; the seat
	// claim must let exactly one through.
	var wg sync.WaitGroup
	start := make(chan struct{})
	added := make([]bool, 2)
	errs := make([]error, 2)
	for i, userID := range []int64{2, 3} {
		wg.Add(1)
		go func(i int, userID int64) {
			defer wg.Done()
			<-start
			added[i], errs[i] = members.InsertMembership(ctx, teamID, userID)
		}(i, userID)
	}
	close(start)
	wg.Wait()

	winners := 0
	for i := range errs {
		if errs[i] == nil {
			assert.True(t, added[i])
			winners++
		} else {
			assert.ErrorIs(t, errs[i], apperrors.ErrCapacityExceeded)
			assert.False(t, added[i])
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent accept may take the last seat")

	team, err := teams.GetByID(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, 2, team.MemberCount)
	assert.True(t, team.IsFull)

	var rosterSize int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID).Scan(&rosterSize))
	assert.Equal(t, 2, rosterSize)
	assert.LessOrEqual(t, rosterSize, team.MaxSize)
}

func TestInsertMembershipIdempotentRetry(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	teams := repositories.NewTeamRepository(pool)
	members := repositories.NewMembershipRepository(pool)

	seedUsers(t, pool, 1, 2)

	teamID, err := teams.Create(ctx, &models.Team{
		Name: "Retries", LeaderID: 1, Purpose: models.TeamPurposePBL, Year: 2, MaxSize: 4,
	})
	require.NoError(t, err)

	added, err := members.InsertMembership(ctx, teamID, 2)
	require.NoError(t, err)
	assert.True(t, added)

	// A retry of the same insert reports not-added and must not consume
	// another seat through the claim.
	added, err = members.InsertMembership(ctx, teamID, 2)
	require.NoError(t, err)
	assert.False(t, added)

	team, err := teams.GetByID(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, 2, team.MemberCount)
	assert.False(t, team.IsFull)

	count, isFull, err := members.RefreshDerivedFields(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.False(t, isFull)
}

func TestInsertMembershipFullTeam(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	teams := repositories.NewTeamRepository(pool)
	members := repositories.NewMembershipRepository(pool)

	seedUsers(t, pool, 1, 2)

	teamID, err := teams.Create(ctx, &models.Team{
		Name: "Solo", LeaderID: 1, Purpose: models.TeamPurposeOther, Year: 2, MaxSize: 1,
	})
	require.NoError(t, err)

	added, err := members.InsertMembership(ctx, teamID, 2)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.False(t, added)

	team, err := teams.GetByID(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, 1, team.MemberCount)
}

func TestApplicationStatusClaim(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	teams := repositories.NewTeamRepository(pool)
	posts := repositories.NewRecruitmentPostRepository(pool)
	apps := repositories.NewApplicationRepository(pool)

	seedUsers(t, pool, 1, 2)

	teamID, err := teams.Create(ctx, &models.Team{
		Name: "Claims", LeaderID: 1, Purpose: models.TeamPurposeHackathon, Year: 2, MaxSize: 4,
	})
	require.NoError(t, err)

	postID, err := posts.Create(ctx, &models.RecruitmentPost{
		TeamID: teamID, Title: "Backend", PositionsAvailable: 2,
	})
	require.NoError(t, err)

	appID, err := apps.Create(ctx, &models.Application{PostID: postID, ApplicantID: 2})
	require.NoError(t, err)

	// First claim wins, the second reviewer sees AlreadyReviewed.
	require.NoError(t, apps.SetStatus(ctx, appID, models.DecisionPending, models.DecisionAccepted))
	err = apps.SetStatus(ctx, appID, models.DecisionPending, models.DecisionRejected)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)

	// Claim compensation after a lost seat race restores pending.
	require.NoError(t, apps.SetStatus(ctx, appID, models.DecisionAccepted, models.DecisionPending))
	app, err := apps.GetByID(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, models.DecisionPending, app.Status)
}

func TestDecrementPositionsClosesAtZero(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	teams := repositories.NewTeamRepository(pool)
	posts := repositories.NewRecruitmentPostRepository(pool)

	seedUsers(t, pool, 1)

	teamID, err := teams.Create(ctx, &models.Team{
		Name: "Closing", LeaderID: 1, Purpose: models.TeamPurposeCollegeEvent, Year: 2, MaxSize: 4,
	})
	require.NoError(t, err)

	postID, err := posts.Create(ctx, &models.RecruitmentPost{
		TeamID: teamID, Title: "Designer", PositionsAvailable: 1,
	})
	require.NoError(t, err)

	remaining, status, err := posts.DecrementPositions(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, models.PostStatusClosed, status)

	// An exhausted post refuses a further decrement.
	_, _, err = posts.DecrementPositions(ctx, postID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotOpen)
}
