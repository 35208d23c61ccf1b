package notify

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/repositories"
)

// Fakes embed the repository interfaces so only the methods the resolver
// touches need implementing.

type fakeUserRepo struct {
	repositories.UserRepository
	byUsername map[string]uint
}

func (f *fakeUserRepo) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	var users []models.User
	for _, name := range usernames {
		if id, ok := f.byUsername[name]; ok {
			users = append(users, models.User{ID: id, UserName: name})
		}
	}
	return users, nil
}

type fakePostRepo struct {
	repositories.PostRepository
	posts map[string]*models.Post
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("post not found")
}

type fakeTagRepo struct {
	repositories.TagRepository
	tags map[string][]uint
}

func (f *fakeTagRepo) GetTagsByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, name := range names {
		if followers, ok := f.tags[name]; ok {
			tags = append(tags, models.Tag{Tag: name, Followers: followers})
		}
	}
	return tags, nil
}

type fakeFollowRepo struct {
	repositories.FollowRepository
	followers map[uint][]uint
}

func (f *fakeFollowRepo) GetFollowerIDs(userID uint) ([]uint, error) {
	return f.followers[userID], nil
}

func newTestResolver() *Resolver {
	return NewResolver(
		&fakeUserRepo{byUsername: map[string]uint{"bob": 2, "carol": 3}},
		&fakePostRepo{posts: map[string]*models.Post{
			"p1": {PostedBy: 1, Subscribers: []uint{2, 3}},
			"p2": {PostedBy: 2, Subscribers: []uint{2, 4, 4}},
		}},
		&fakeTagRepo{tags: map[string][]uint{
			"cactus": {2, 3},
			"ferns":  {3, 5},
		}},
		&fakeFollowRepo{followers: map[uint][]uint{1: {2, 3, 4}}},
	)
}

func TestResolvePostAudience(t *testing.T) {
	r := newTestResolver()

	ids, err := r.Resolve(context.Background(), Event{
		Type: TypeWater, ActorID: 5, Resource: Resource{Name: "post", ID: "p1"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := []uint{1, 2, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("recipients = %v, want %v", ids, want)
	}
}

func TestResolveExcludesActorAndDuplicates(t *testing.T) {
	r := newTestResolver()

	// Actor 2 owns p2 and is also subscribed to it; 4 is subscribed twice.
	ids, err := r.Resolve(context.Background(), Event{
		Type: TypeComment, ActorID: 2, Resource: Resource{Name: "post", ID: "p2"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := []uint{4}; !reflect.DeepEqual(ids, want) {
		t.Errorf("recipients = %v, want %v", ids, want)
	}
}

func TestResolveFollow(t *testing.T) {
	r := newTestResolver()

	ids, err := r.Resolve(context.Background(), Event{
		Type: TypeFollow, ActorID: 1, Resource: Resource{Name: "user", ID: "7"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := []uint{7}; !reflect.DeepEqual(ids, want) {
		t.Errorf("recipients = %v, want %v", ids, want)
	}
}

func TestResolveFollowBadResourceID(t *testing.T) {
	r := newTestResolver()

	if _, err := r.Resolve(context.Background(), Event{
		Type: TypeFollow, ActorID: 1, Resource: Resource{Name: "user", ID: "not-a-number"},
	}); err == nil {
		t.Fatal("expected error for malformed user resource id")
	}
}

func TestResolveMention(t *testing.T) {
	r := newTestResolver()

	ids, err := r.Resolve(context.Background(), Event{
		Type: TypeMention, ActorID: 1, Text: "hey @bob and @carol and @ghost",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Unknown usernames are dropped, not an error.
	if want := []uint{2, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("recipients = %v, want %v", ids, want)
	}
}

func TestResolveMentionNoMentions(t *testing.T) {
	r := newTestResolver()

	ids, err := r.Resolve(context.Background(), Event{Type: TypeMention, ActorID: 1, Text: "plain text"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("recipients = %v, want none", ids)
	}
}

func TestResolveFeed(t *testing.T) {
	r := newTestResolver()

	ids, err := r.Resolve(context.Background(), Event{Type: TypeFeed, ActorID: 1})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := []uint{2, 3, 4}; !reflect.DeepEqual(ids, want) {
		t.Errorf("recipients = %v, want %v", ids, want)
	}
}

func TestResolveTagfeed(t *testing.T) {
	r := newTestResolver()

	// Follower 3 follows both tags and must appear once; actor 2 is dropped.
	ids, err := r.Resolve(context.Background(), Event{
		Type: TypeTagfeed, ActorID: 2, Text: "new growth #cactus #ferns",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := []uint{3, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("recipients = %v, want %v", ids, want)
	}
}

func TestResolveUnknownType(t *testing.T) {
	r := newTestResolver()

	if _, err := r.Resolve(context.Background(), Event{Type: Type("bogus"), ActorID: 1}); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}
