package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB. Comments, waters and the
// subscriber list are embedded so a single document carries everything the
// notification fan-out needs.
type Post struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostedBy    uint               `json:"posted_by" bson:"posted_by"`
	Text        string             `json:"text" bson:"text"`
	ImageURLs   []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	Tags        []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Waters      []uint             `json:"waters" bson:"waters"`
	Subscribers []uint             `json:"subscribers" bson:"subscribers"`
	Comments    []Comment          `json:"comments" bson:"comments"`
	DeleteFlag  bool               `json:"-" bson:"delete_flag"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Comment is embedded in a post document
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	CommentBy uint               `json:"comment_by" bson:"comment_by"`
	Text      string             `json:"text" bson:"text"`
	Replies   []Reply            `json:"replies,omitempty" bson:"replies,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Reply is nested inside a comment
type Reply struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	ReplyBy   uint               `json:"reply_by" bson:"reply_by"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

var (
	mentionRe = regexp.MustCompile(`@([A-Za-z0-9_]+)`)
	hashtagRe = regexp.MustCompile(`#([A-Za-z0-9_]+)`)
)

// MentionedUsernames extracts @username mentions from post text,
// lowercased and deduplicated in order of first appearance.
func MentionedUsernames(text string) []string {
	return extract(mentionRe, text)
}

// MentionedTags extracts #hashtag mentions from post text,
// lowercased and deduplicated in order of first appearance.
func MentionedTags(text string) []string {
	return extract(hashtagRe, text)
}

func extract(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.ToLower(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text      string   `json:"text" validate:"required,min=1,max=1000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// CreateReplyRequest defines the request body for replying to a comment
type CreateReplyRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
