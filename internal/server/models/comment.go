package models

import "time"

// Comment is append-only: never edited or deleted through the API. It
// disappears only when its reel is deleted (FK cascade).
type Comment struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	ReelID    string      `json:"reelId"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    UserSummary `json:"user"`
}
