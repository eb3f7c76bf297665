package models

import "strings"

// ProfileSnapshot is a read-only projection of a user used for roster
// decisions. It is owned by the user-profile service and never mutated here.
type ProfileSnapshot struct {
	UserID    int64  `json:"userId" db:"user_id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Section   string `json:"section" db:"section"`
	Year      int    `json:"year" db:"year"`
}

// FullName returns the display name of the user
func (p *ProfileSnapshot) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NormalizedSection returns the section trimmed and uppercased for
// conflict comparison. An empty result means the user carries no
// section constraint.
func (p *ProfileSnapshot) NormalizedSection() string {
	return NormalizeSection(p.Section)
}

// NormalizeSection trims and uppercases a section label
func NormalizeSection(section string) string {
	return strings.ToUpper(strings.TrimSpace(section))
}
