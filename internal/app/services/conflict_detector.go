package services

import (
	"github.com/ozgur/teamup/internal/app/models"
)

// ConflictDetector evaluates the section/year exclusivity rule: a team may
// not hold two active members with the same normalized section in the same
// year. Users without a section never conflict.
type ConflictDetector struct{}

// NewConflictDetector creates a new ConflictDetector
func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{}
}

// FindConflict returns the profile of the roster member that blocks the
// candidate, or nil when the candidate is admissible. The candidate's own
// membership row, if present, is ignored so idempotent retries pass.
func (d *ConflictDetector) FindConflict(roster []*models.TeamMember, candidate *models.ProfileSnapshot) *models.ProfileSnapshot {
	section := candidate.NormalizedSection()
	if section == "" {
		return nil
	}

	for _, member := range roster {
		if member.Profile == nil || member.UserID == candidate.UserID {
			continue
		}
		if member.Profile.NormalizedSection() == section && member.Profile.Year == candidate.Year {
			return member.Profile
		}
	}

	return nil
}

// HasPendingSameSection reports whether another pending candidate shares the
// accepted candidate's section and year. This is advisory only: it produces
// a warning on the decision, never a rejection.
func (d *ConflictDetector) HasPendingSameSection(pending []*models.ProfileSnapshot, candidate *models.ProfileSnapshot) bool {
	section := candidate.NormalizedSection()
	if section == "" {
		return false
	}

	for _, profile := range pending {
		if profile.UserID == candidate.UserID {
			continue
		}
		if profile.NormalizedSection() == section && profile.Year == candidate.Year {
			return true
		}
	}

	return false
}
