package models

import "time"

// Reel is a posted video. VideoURL points at the external media host.
type Reel struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	VideoURL  string    `json:"videoUrl"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedReel is a reel enriched for listing: owner summary, interaction
// counts, and whether the viewer has liked it (false for anonymous
// viewers).
type FeedReel struct {
	Reel
	Owner        UserSummary `json:"user"`
	LikeCount    int64       `json:"likeCount"`
	CommentCount int64       `json:"commentCount"`
	ViewerLiked  bool        `json:"viewerLiked"`
}
