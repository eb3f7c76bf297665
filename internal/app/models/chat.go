package models

import "time"

// ChatChannel is the communication channel provisioned for a team
type ChatChannel struct {
	ID         int64     `json:"id" db:"id"`
	TeamID     int64     `json:"teamId" db:"team_id"`
	ExternalID string    `json:"externalId" db:"external_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// ChatChannelMember ties a user into a team channel
type ChatChannelMember struct {
	ID        int64     `json:"id" db:"id"`
	ChannelID int64     `json:"channelId" db:"channel_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}
