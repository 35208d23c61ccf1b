package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/repositories"
)

// Resolver computes the recipient set for an event. The acting user is
// always excluded, and the result carries no duplicates.
type Resolver struct {
	users   repositories.UserRepository
	posts   repositories.PostRepository
	tags    repositories.TagRepository
	follows repositories.FollowRepository
}

// NewResolver creates a Resolver over the entity repositories
func NewResolver(users repositories.UserRepository, posts repositories.PostRepository, tags repositories.TagRepository, follows repositories.FollowRepository) *Resolver {
	return &Resolver{users: users, posts: posts, tags: tags, follows: follows}
}

// Resolve returns the deduplicated recipient user IDs for the event. Zero
// recipients is a valid outcome, not an error.
func (r *Resolver) Resolve(ctx context.Context, ev Event) ([]uint, error) {
	var ids []uint
	var err error

	switch ev.Type {
	case TypeWater, TypeUnwater, TypeComment, TypeReply:
		ids, err = r.postAudience(ctx, ev.Resource.ID)
	case TypeFollow, TypeChatMessage:
		ids, err = resourceUser(ev.Resource.ID)
	case TypeMention:
		ids, err = r.mentionedUsers(ev.Text)
	case TypeFeed:
		ids, err = r.follows.GetFollowerIDs(ev.ActorID)
	case TypeTagfeed:
		ids, err = r.tagFollowers(ctx, ev.Text)
	default:
		return nil, fmt.Errorf("unknown event type %q", ev.Type)
	}
	if err != nil {
		return nil, err
	}

	return dedupeExcluding(ids, ev.ActorID), nil
}

// postAudience is the post owner plus every subscriber
func (r *Resolver) postAudience(ctx context.Context, postID string) ([]uint, error) {
	post, err := r.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return append([]uint{post.PostedBy}, post.Subscribers...), nil
}

// mentionedUsers resolves @username mentions to accounts. Unknown usernames
// are silently dropped.
func (r *Resolver) mentionedUsers(text string) ([]uint, error) {
	usernames := models.MentionedUsernames(text)
	if len(usernames) == 0 {
		return nil, nil
	}
	users, err := r.users.GetUsersByUsernames(usernames)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

// tagFollowers is the union of followers of every #tag in the text
func (r *Resolver) tagFollowers(ctx context.Context, text string) ([]uint, error) {
	names := models.MentionedTags(text)
	if len(names) == 0 {
		return nil, nil
	}
	tags, err := r.tags.GetTagsByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	var ids []uint
	for _, tag := range tags {
		ids = append(ids, tag.Followers...)
	}
	return ids, nil
}

func resourceUser(id string) ([]uint, error) {
	userID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed user resource id %q: %w", id, err)
	}
	return []uint{uint(userID)}, nil
}

func dedupeExcluding(ids []uint, actorID uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == actorID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
