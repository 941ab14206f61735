package httpapi

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/windhans/reels/internal/common"
	"github.com/windhans/reels/internal/logging"
	"github.com/windhans/reels/internal/server/models"
	"github.com/windhans/reels/internal/server/services"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger          { return n }

// stubBackend is an in-memory implementation of the service surfaces
// the handlers depend on. It mirrors the service-layer semantics the
// handlers rely on for status mapping.
type stubBackend struct {
	seq       int
	users     map[string]*models.User
	passwords map[string]string
	reels     map[string]*models.Reel
	order     []string
	likes     map[string]bool // userID+"/"+reelID
	comments  map[string][]*models.Comment
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		users:     map[string]*models.User{},
		passwords: map[string]string{},
		reels:     map[string]*models.Reel{},
		likes:     map[string]bool{},
		comments:  map[string][]*models.Comment{},
	}
}

func (b *stubBackend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s-%d", prefix, b.seq)
}

func (b *stubBackend) Register(_ context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || len(password) < 6 {
		return nil, common.ErrorValidation
	}
	for _, u := range b.users {
		if u.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u := &models.User{ID: b.nextID("u"), Name: name, Email: email, CreatedAt: time.Now()}
	b.users[u.ID] = u
	b.passwords[u.ID] = password
	return u, nil
}

func (b *stubBackend) Login(_ context.Context, email, password string) (*models.User, error) {
	for _, u := range b.users {
		if u.Email == email && b.passwords[u.ID] == password {
			return u, nil
		}
	}
	return nil, common.ErrorUnauthorized
}

func (b *stubBackend) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := b.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (b *stubBackend) Upload(_ context.Context, actor *models.User, video io.Reader, size int64, contentType, caption string) (*models.Reel, error) {
	if actor == nil {
		return nil, common.ErrorUnauthorized
	}
	if video == nil || size <= 0 {
		return nil, common.ErrorValidation
	}
	r := &models.Reel{
		ID:        b.nextID("r"),
		UserID:    actor.ID,
		Caption:   strings.TrimSpace(caption),
		VideoURL:  "memory://test/" + b.nextID("k"),
		CreatedAt: time.Now(),
	}
	b.reels[r.ID] = r
	b.order = append(b.order, r.ID)
	return r, nil
}

func (b *stubBackend) enrich(r *models.Reel, viewerID string) *models.FeedReel {
	item := &models.FeedReel{Reel: *r}
	if owner, ok := b.users[r.UserID]; ok {
		item.Owner = owner.Summary()
	}
	for key, liked := range b.likes {
		if liked && strings.HasSuffix(key, "/"+r.ID) {
			item.LikeCount++
			if key == viewerID+"/"+r.ID {
				item.ViewerLiked = true
			}
		}
	}
	item.CommentCount = int64(len(b.comments[r.ID]))
	return item
}

func (b *stubBackend) Feed(_ context.Context, viewerID string, _ int) ([]*models.FeedReel, error) {
	out := []*models.FeedReel{}
	for i := len(b.order) - 1; i >= 0; i-- {
		out = append(out, b.enrich(b.reels[b.order[i]], viewerID))
	}
	return out, nil
}

func (b *stubBackend) ListByOwner(_ context.Context, ownerID string) ([]*models.FeedReel, error) {
	out := []*models.FeedReel{}
	for i := len(b.order) - 1; i >= 0; i-- {
		if r := b.reels[b.order[i]]; r.UserID == ownerID {
			out = append(out, b.enrich(r, ownerID))
		}
	}
	return out, nil
}

func (b *stubBackend) Delete(_ context.Context, actor *models.User, reelID string) (services.DeleteResult, error) {
	if actor == nil {
		return services.DeleteResult{}, common.ErrorUnauthorized
	}
	r, ok := b.reels[reelID]
	if !ok {
		return services.DeleteResult{}, common.ErrorNotFound
	}
	if r.UserID != actor.ID {
		return services.DeleteResult{}, common.ErrorForbidden
	}
	delete(b.reels, reelID)
	for i, id := range b.order {
		if id == reelID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	delete(b.comments, reelID)
	return services.DeleteResult{MediaRemoved: true}, nil
}

func (b *stubBackend) ToggleLike(_ context.Context, actor *models.User, reelID string) (bool, error) {
	if actor == nil {
		return false, common.ErrorUnauthorized
	}
	key := actor.ID + "/" + reelID
	if b.likes[key] {
		delete(b.likes, key)
		return false, nil
	}
	b.likes[key] = true
	return true, nil
}

func (b *stubBackend) AddComment(_ context.Context, actor *models.User, reelID, text string) (*models.Comment, error) {
	if actor == nil {
		return nil, common.ErrorUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrorValidation
	}
	c := &models.Comment{
		ID:        b.nextID("c"),
		ReelID:    reelID,
		UserID:    actor.ID,
		Text:      text,
		CreatedAt: time.Now(),
		Author:    actor.Summary(),
	}
	b.comments[reelID] = append([]*models.Comment{c}, b.comments[reelID]...)
	return c, nil
}

func (b *stubBackend) ListComments(_ context.Context, reelID string) ([]*models.Comment, error) {
	out := b.comments[reelID]
	if out == nil {
		out = []*models.Comment{}
	}
	return out, nil
}
