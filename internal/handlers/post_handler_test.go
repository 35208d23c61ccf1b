package handlers

import (
	"context"
	"testing"

	"github.com/seedit-social/backend/internal/repositories"
)

type recordingPostRepo struct {
	repositories.PostRepository
	subscribed []uint
}

func (f *recordingPostRepo) Subscribe(ctx context.Context, postID string, userID uint) error {
	f.subscribed = append(f.subscribed, userID)
	return nil
}

func TestSubscribeMentionedSkipsActor(t *testing.T) {
	db := newTestDB(t)
	alice := seedHandlerUser(t, db, "alice")
	bob := seedHandlerUser(t, db, "bob")

	posts := &recordingPostRepo{}
	userRepo := repositories.NewPostgresUserRepository(db)
	h := NewPostHandler(posts, userRepo, nil, nil, nil)

	// Alice mentions herself and bob in her own post: only bob may be
	// subscribed.
	h.subscribeMentioned("note to self @alice, ping @bob", "p1", alice.ID)

	if len(posts.subscribed) != 1 || posts.subscribed[0] != bob.ID {
		t.Fatalf("subscribed = %v, want just %d", posts.subscribed, bob.ID)
	}
}

func TestSubscribeMentionedNoMentions(t *testing.T) {
	db := newTestDB(t)
	alice := seedHandlerUser(t, db, "alice")

	posts := &recordingPostRepo{}
	userRepo := repositories.NewPostgresUserRepository(db)
	h := NewPostHandler(posts, userRepo, nil, nil, nil)

	h.subscribeMentioned("a plain post", "p1", alice.ID)

	if len(posts.subscribed) != 0 {
		t.Fatalf("subscribed = %v, want none", posts.subscribed)
	}
}
