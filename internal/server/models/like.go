package models

import "time"

// Like is a join record. At most one exists per (user, reel) pair; the
// unique index on that pair is the authority, not application locking.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ReelID    string    `json:"reelId"`
	CreatedAt time.Time `json:"createdAt"`
}
