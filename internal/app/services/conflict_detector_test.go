package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozgur/teamup/internal/app/models"
)

func member(userID int64, section string, year int) *models.TeamMember {
	return &models.TeamMember{
		UserID: userID,
		Profile: &models.ProfileSnapshot{
			UserID:    userID,
			FirstName: "User",
			Section:   section,
			Year:      year,
		},
	}
}

func TestConflictDetector_FindConflict(t *testing.T) {
	detector := NewConflictDetector()

	t.Run("same section and year blocks the candidate", func(t *testing.T) {
		roster := []*models.TeamMember{member(1, "A", 2), member(2, "B", 2)}
		candidate := &models.ProfileSnapshot{UserID: 9, Section: "A", Year: 2}

		blocker := detector.FindConflict(roster, candidate)

		assert.NotNil(t, blocker)
		assert.Equal(t, int64(1), blocker.UserID)
	})

	t.Run("section comparison ignores case and whitespace", func(t *testing.T) {
		roster := []*models.TeamMember{member(1, " a ", 2)}
		candidate := &models.ProfileSnapshot{UserID: 9, Section: "A", Year: 2}

		assert.NotNil(t, detector.FindConflict(roster, candidate))
	})

	t.Run("same section in a different year is fine", func(t *testing.T) {
		roster := []*models.TeamMember{member(1, "A", 3)}
		candidate := &models.ProfileSnapshot{UserID: 9, Section: "A", Year: 2}

		assert.Nil(t, detector.FindConflict(roster, candidate))
	})

	t.Run("candidate without section never conflicts", func(t *testing.T) {
		roster := []*models.TeamMember{member(1, "", 2), member(2, "A", 2)}
		candidate := &models.ProfileSnapshot{UserID: 9, Section: "  ", Year: 2}

		assert.Nil(t, detector.FindConflict(roster, candidate))
	})

	t.Run("member without section never conflicts", func(t *testing.T) {
		roster := []*models.TeamMember{member(1, "", 2)}
		candidate := &models.ProfileSnapshot{UserID: 9, Section: "A", Year: 2}

		assert.Nil(t, detector.FindConflict(roster, candidate))
	})

	t.Run("candidate already on the roster does not block itself", func(t *testing.T) {
		roster := []*models.TeamMember{member(9, "A", 2)}
		candidate := &models.ProfileSnapshot{UserID: 9, Section: "A", Year: 2}

		assert.Nil(t, detector.FindConflict(roster, candidate))
	})

	t.Run("member row without profile is skipped", func(t *testing.T) {
		roster := []*models.TeamMember{{UserID: 1}}
		candidate := &models.ProfileSnapshot{UserID: 9, Section: "A", Year: 2}

		assert.Nil(t, detector.FindConflict(roster, candidate))
	})
}

func TestConflictDetector_HasPendingSameSection(t *testing.T) {
	detector := NewConflictDetector()
	candidate := &models.ProfileSnapshot{UserID: 9, Section: "A", Year: 2}

	t.Run("another pending candidate with the same section and year", func(t *testing.T) {
		pending := []*models.ProfileSnapshot{
			{UserID: 4, Section: "a", Year: 2},
		}
		assert.True(t, detector.HasPendingSameSection(pending, candidate))
	})

	t.Run("the candidate's own pending rows are ignored", func(t *testing.T) {
		pending := []*models.ProfileSnapshot{
			{UserID: 9, Section: "A", Year: 2},
		}
		assert.False(t, detector.HasPendingSameSection(pending, candidate))
	})

	t.Run("no advisory without a section", func(t *testing.T) {
		bare := &models.ProfileSnapshot{UserID: 9, Section: "", Year: 2}
		pending := []*models.ProfileSnapshot{
			{UserID: 4, Section: "", Year: 2},
		}
		assert.False(t, detector.HasPendingSameSection(pending, bare))
	})

	t.Run("different year is no advisory", func(t *testing.T) {
		pending := []*models.ProfileSnapshot{
			{UserID: 4, Section: "A", Year: 3},
		}
		assert.False(t, detector.HasPendingSameSection(pending, candidate))
	})
}
