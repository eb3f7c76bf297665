package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ozgur/teamup/internal/app/models"
	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
)

type recruitmentFixture struct {
	posts    *MockRecruitmentPostStore
	teams    *MockTeamStore
	members  *MockMembershipStore
	apps     *MockApplicationStore
	requests *MockJoinRequestStore
	service  *RecruitmentService
}

func newRecruitmentFixture() *recruitmentFixture {
	f := &recruitmentFixture{
		posts:    new(MockRecruitmentPostStore),
		teams:    new(MockTeamStore),
		members:  new(MockMembershipStore),
		apps:     new(MockApplicationStore),
		requests: new(MockJoinRequestStore),
	}
	f.service = NewRecruitmentService(f.posts, f.teams, f.members, f.apps, f.requests, testConfig())
	return f
}

func TestRecruitmentService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("leader opens positions within the remaining seats", func(t *testing.T) {
		f := newRecruitmentFixture()
		req := &dto.CreateRecruitmentPostRequest{Title: "Need backend", PositionsAvailable: 2}

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *models.RecruitmentPost) bool {
			return p.TeamID == 5 && p.PositionsAvailable == 2
		})).Return(int64(10), nil)
		f.posts.On("GetByID", mock.Anything, int64(10)).Return(openPost(), nil)

		result, err := f.service.CreatePost(ctx, 5, 3, req)

		require.NoError(t, err)
		assert.Equal(t, int64(10), result.ID)
		f.posts.AssertExpectations(t)
	})

	t.Run("only the leader can post", func(t *testing.T) {
		f := newRecruitmentFixture()
		req := &dto.CreateRecruitmentPostRequest{Title: "x", PositionsAvailable: 1}

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)

		_, err := f.service.CreatePost(ctx, 5, 99, req)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("positions beyond the remaining seats are refused", func(t *testing.T) {
		f := newRecruitmentFixture()
		req := &dto.CreateRecruitmentPostRequest{Title: "x", PositionsAvailable: 3}

		// team has 4 seats, 2 taken
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)

		_, err := f.service.CreatePost(ctx, 5, 3, req)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("a full team cannot post", func(t *testing.T) {
		f := newRecruitmentFixture()
		team := teamWithRoom()
		team.MemberCount = team.MaxSize
		req := &dto.CreateRecruitmentPostRequest{Title: "x", PositionsAvailable: 1}

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(team, nil)

		_, err := f.service.CreatePost(ctx, 5, 3, req)

		assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	})

	t.Run("expiry in the past is refused", func(t *testing.T) {
		f := newRecruitmentFixture()
		past := time.Now().Add(-time.Hour)
		req := &dto.CreateRecruitmentPostRequest{Title: "x", PositionsAvailable: 1, ExpiresAt: &past}

		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)

		_, err := f.service.CreatePost(ctx, 5, 3, req)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestRecruitmentService_Apply(t *testing.T) {
	ctx := context.Background()
	payload := &dto.ApplyRequest{Message: "pick me"}

	t.Run("files an application against an open post", func(t *testing.T) {
		f := newRecruitmentFixture()

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(openPost(), nil)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(7)).Return(false, nil)
		f.apps.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Application) bool {
			return a.PostID == 10 && a.ApplicantID == 7
		})).Return(int64(1), nil)
		f.apps.On("GetByID", mock.Anything, int64(1)).Return(pendingApplication(), nil)

		result, err := f.service.Apply(ctx, 10, 7, payload)

		require.NoError(t, err)
		assert.Equal(t, string(models.DecisionPending), result.Status)
	})

	t.Run("closed post refuses applications", func(t *testing.T) {
		f := newRecruitmentFixture()
		post := openPost()
		post.Status = models.PostStatusClosed

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(post, nil)

		_, err := f.service.Apply(ctx, 10, 7, payload)

		assert.ErrorIs(t, err, apperrors.ErrPostNotOpen)
	})

	t.Run("expired post refuses applications", func(t *testing.T) {
		f := newRecruitmentFixture()
		post := openPost()
		past := time.Now().Add(-time.Hour)
		post.ExpiresAt = &past

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(post, nil)

		_, err := f.service.Apply(ctx, 10, 7, payload)

		assert.ErrorIs(t, err, apperrors.ErrPostExpired)
	})

	t.Run("current members cannot apply", func(t *testing.T) {
		f := newRecruitmentFixture()

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(openPost(), nil)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(7)).Return(true, nil)

		_, err := f.service.Apply(ctx, 10, 7, payload)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	})

	t.Run("PBL limit blocks a third pending candidacy", func(t *testing.T) {
		f := newRecruitmentFixture()
		team := teamWithRoom()
		team.Purpose = models.TeamPurposePBL

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(openPost(), nil)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(team, nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(7)).Return(false, nil)
		f.apps.On("CountPendingPBLByUser", mock.Anything, int64(7)).Return(2, nil)
		f.requests.On("CountPendingPBLByUser", mock.Anything, int64(7)).Return(0, nil)

		_, err := f.service.Apply(ctx, 10, 7, payload)

		assert.ErrorIs(t, err, apperrors.ErrPendingPBLLimit)
		f.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("second application to the same post is refused", func(t *testing.T) {
		f := newRecruitmentFixture()

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(openPost(), nil)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.members.On("IsMember", mock.Anything, int64(5), int64(7)).Return(false, nil)
		f.apps.On("Create", mock.Anything, mock.Anything).
			Return(int64(0), apperrors.ErrAlreadyApplied)

		_, err := f.service.Apply(ctx, 10, 7, payload)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	})
}

func TestRecruitmentService_ListApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("leader sees the post's applications", func(t *testing.T) {
		f := newRecruitmentFixture()

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(openPost(), nil)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)
		f.apps.On("ListByPost", mock.Anything, int64(10)).
			Return([]*models.Application{pendingApplication()}, nil)

		result, err := f.service.ListApplications(ctx, 10, 3)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Ada", result[0].Applicant)
	})

	t.Run("non-leader is refused", func(t *testing.T) {
		f := newRecruitmentFixture()

		f.posts.On("GetByID", mock.Anything, int64(10)).Return(openPost(), nil)
		f.teams.On("GetByID", mock.Anything, int64(5)).Return(teamWithRoom(), nil)

		_, err := f.service.ListApplications(ctx, 10, 99)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
