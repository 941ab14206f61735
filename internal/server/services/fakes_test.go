package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/windhans/reels/internal/common"
	"github.com/windhans/reels/internal/dbx"
	"github.com/windhans/reels/internal/logging"
	"github.com/windhans/reels/internal/server/models"
	"github.com/windhans/reels/internal/server/repositories/comments"
	"github.com/windhans/reels/internal/server/repositories/likes"
	"github.com/windhans/reels/internal/server/repositories/reels"
	"github.com/windhans/reels/internal/server/repositories/users"
)

// ---- test logger ----

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger          { return n }

// ---- in-memory repositories ----
//
// The fakes enforce the same invariants as the schema: unique email,
// unique (user, reel) like pairs, cascade from reel to likes/comments.

type fakeStore struct {
	seq      int
	users    map[string]*models.User // by id
	reels    []*models.Reel
	likes    map[string]*models.Like // by userID+"/"+reelID
	comments []*models.Comment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*models.User{},
		likes: map[string]*models.Like{},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

type fakeUsersRepo struct{ s *fakeStore }

func (r *fakeUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	user.ID = r.s.nextID("u")
	user.CreatedAt = time.Now()
	stored := *user
	r.s.users[user.ID] = &stored
	return user, nil
}

func (r *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

type fakeReelsRepo struct{ s *fakeStore }

func (r *fakeReelsRepo) Create(_ context.Context, reel *models.Reel) (*models.Reel, error) {
	reel.ID = r.s.nextID("r")
	reel.CreatedAt = time.Now()
	stored := *reel
	r.s.reels = append(r.s.reels, &stored)
	return reel, nil
}

func (r *fakeReelsRepo) GetByID(_ context.Context, id string) (*models.Reel, error) {
	for _, reel := range r.s.reels {
		if reel.ID == id {
			copied := *reel
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeReelsRepo) Delete(_ context.Context, id string) error {
	for i, reel := range r.s.reels {
		if reel.ID == id {
			r.s.reels = append(r.s.reels[:i], r.s.reels[i+1:]...)
			// cascade, as the FK constraints do
			for k, l := range r.s.likes {
				if l.ReelID == id {
					delete(r.s.likes, k)
				}
			}
			kept := r.s.comments[:0]
			for _, c := range r.s.comments {
				if c.ReelID != id {
					kept = append(kept, c)
				}
			}
			r.s.comments = kept
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *fakeReelsRepo) enrich(reel *models.Reel, viewerID string) *models.FeedReel {
	item := &models.FeedReel{Reel: *reel}
	if owner, ok := r.s.users[reel.UserID]; ok {
		item.Owner = owner.Summary()
	}
	for _, l := range r.s.likes {
		if l.ReelID == reel.ID {
			item.LikeCount++
			if l.UserID == viewerID {
				item.ViewerLiked = true
			}
		}
	}
	for _, c := range r.s.comments {
		if c.ReelID == reel.ID {
			item.CommentCount++
		}
	}
	return item
}

func (r *fakeReelsRepo) ListFeed(_ context.Context, viewerID string, limit int) ([]*models.FeedReel, error) {
	out := []*models.FeedReel{}
	for i := len(r.s.reels) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.enrich(r.s.reels[i], viewerID))
	}
	return out, nil
}

func (r *fakeReelsRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.FeedReel, error) {
	out := []*models.FeedReel{}
	for i := len(r.s.reels) - 1; i >= 0; i-- {
		if r.s.reels[i].UserID == ownerID {
			out = append(out, r.enrich(r.s.reels[i], ownerID))
		}
	}
	return out, nil
}

type fakeLikesRepo struct{ s *fakeStore }

func likeKey(userID, reelID string) string { return userID + "/" + reelID }

func (r *fakeLikesRepo) Create(_ context.Context, like *models.Like) (*models.Like, error) {
	key := likeKey(like.UserID, like.ReelID)
	if _, ok := r.s.likes[key]; ok {
		return nil, common.ErrorAlreadyExists
	}
	like.ID = r.s.nextID("l")
	like.CreatedAt = time.Now()
	stored := *like
	r.s.likes[key] = &stored
	return like, nil
}

func (r *fakeLikesRepo) Delete(_ context.Context, userID, reelID string) (bool, error) {
	key := likeKey(userID, reelID)
	if _, ok := r.s.likes[key]; !ok {
		return false, nil
	}
	delete(r.s.likes, key)
	return true, nil
}

func (r *fakeLikesRepo) Exists(_ context.Context, userID, reelID string) (bool, error) {
	_, ok := r.s.likes[likeKey(userID, reelID)]
	return ok, nil
}

type fakeCommentsRepo struct{ s *fakeStore }

func (r *fakeCommentsRepo) Create(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	comment.ID = r.s.nextID("c")
	comment.CreatedAt = time.Now()
	stored := *comment
	r.s.comments = append(r.s.comments, &stored)
	return comment, nil
}

func (r *fakeCommentsRepo) ListByReel(_ context.Context, reelID string) ([]*models.Comment, error) {
	out := []*models.Comment{}
	for i := len(r.s.comments) - 1; i >= 0; i-- {
		if r.s.comments[i].ReelID == reelID {
			copied := *r.s.comments[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ---- fake manager ----

type fakeRepoManager struct{ s *fakeStore }

func newFakeRepoManager() *fakeRepoManager { return &fakeRepoManager{s: newFakeStore()} }

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository       { return &fakeUsersRepo{s: m.s} }
func (m *fakeRepoManager) Reels(dbx.DBTX) reels.Repository       { return &fakeReelsRepo{s: m.s} }
func (m *fakeRepoManager) Likes(dbx.DBTX) likes.Repository       { return &fakeLikesRepo{s: m.s} }
func (m *fakeRepoManager) Comments(dbx.DBTX) comments.Repository { return &fakeCommentsRepo{s: m.s} }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
