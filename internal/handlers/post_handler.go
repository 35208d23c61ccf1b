package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/notify"
	"github.com/seedit-social/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	tagRepository    repositories.TagRepository
	followRepository repositories.FollowRepository
	notifier         *notify.Service
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	tagRepo repositories.TagRepository,
	followRepo repositories.FollowRepository,
	notifier *notify.Service,
) *PostHandler {
	return &PostHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		tagRepository:    tagRepo,
		followRepository: followRepo,
		notifier:         notifier,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetAllPosts)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/feed", h.GetFeed)
	g.POST("/posts/:id/water", h.WaterPost)
	g.DELETE("/posts/:id/water", h.UnwaterPost)
	g.POST("/posts/:id/comments", h.CreateComment)
	g.POST("/posts/:id/comments/:comment_id/replies", h.CreateReply)
}

// CreatePost creates a new post and kicks off mention, tag and follower
// fan-outs. The response never waits on notification delivery.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		PostedBy:  currentUserID,
		Text:      req.Text,
		ImageURLs: req.ImageURLs,
		Tags:      models.MentionedTags(req.Text),
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Register any new tags before the tagfeed fan-out resolves them
	if len(post.Tags) > 0 {
		if err := h.tagRepository.CreateTags(c.Request().Context(), post.Tags, currentUserID); err != nil {
			log.Printf("post: tags for %s not created: %v", post.ID.Hex(), err)
		}
	}

	postID := post.ID.Hex()
	go h.subscribeMentioned(post.Text, postID, currentUserID)

	resource := notify.Resource{Name: "post", ID: postID}

	h.notifier.Dispatch(notify.Event{
		Type:     notify.TypeMention,
		ActorID:  currentUserID,
		Resource: resource,
		Text:     post.Text,
	})
	h.notifier.Dispatch(notify.Event{
		Type:     notify.TypeTagfeed,
		ActorID:  currentUserID,
		Resource: resource,
		Text:     post.Text,
		Config:   notify.Config{AvoidEmail: true, SystemLevel: true},
	})
	h.notifier.DispatchFollowers(notify.Event{
		Type:     notify.TypeFeed,
		ActorID:  currentUserID,
		Resource: resource,
		Config:   notify.Config{AvoidEmail: true, SystemLevel: true},
	})

	return c.JSON(http.StatusCreated, post)
}

// subscribeMentioned adds mentioned users to the post's subscriber list so
// they receive future activity on it. Subscription is a set add: repeats
// and the post owner are no-ops.
func (h *PostHandler) subscribeMentioned(text, postID string, actorID uint) {
	usernames := models.MentionedUsernames(text)
	if len(usernames) == 0 {
		return
	}
	users, err := h.userRepository.GetUsersByUsernames(usernames)
	if err != nil {
		log.Printf("post: mentioned users for %s not resolved: %v", postID, err)
		return
	}
	ctx := context.Background()
	for _, u := range users {
		if u.ID == actorID {
			continue
		}
		if err := h.postRepository.Subscribe(ctx, postID, u.ID); err != nil {
			log.Printf("post: subscribe user %d to %s failed: %v", u.ID, postID, err)
		}
	}
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// GetAllPosts retrieves all posts with pagination
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	skip, limit := paginationParams(c)
	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(posts), "posts": posts})
}

// GetFeed returns posts by the users the current user follows
func (h *PostHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(followingIDs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"count": 0, "posts": []models.Post{}})
	}

	skip, limit := paginationParams(c)
	posts, err := h.postRepository.GetPostsByUserIDs(c.Request().Context(), followingIDs, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(posts), "posts": posts})
}

// DeletePost soft-deletes a post owned by the current user
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.PostedBy != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// WaterPost waters (likes) a post and notifies its owner and subscribers
func (h *PostHandler) WaterPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	if err := h.postRepository.AddWater(c.Request().Context(), postID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Dispatch(notify.Event{
		Type:     notify.TypeWater,
		ActorID:  currentUserID,
		Resource: notify.Resource{Name: "post", ID: postID},
	})

	return c.JSON(http.StatusOK, echo.Map{"watered": true})
}

// UnwaterPost removes a water. The fan-out is system level so no unread
// record is persisted and no email is sent.
func (h *PostHandler) UnwaterPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	if err := h.postRepository.RemoveWater(c.Request().Context(), postID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	h.notifier.Dispatch(notify.Event{
		Type:     notify.TypeUnwater,
		ActorID:  currentUserID,
		Resource: notify.Resource{Name: "post", ID: postID},
		Config:   notify.Config{SystemLevel: true, AvoidEmail: true},
	})

	return c.JSON(http.StatusOK, echo.Map{"watered": false})
}

// CreateComment adds a comment to a post and notifies the post audience
func (h *PostHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment := &models.Comment{
		CommentBy: currentUserID,
		Text:      req.Text,
	}
	if err := h.postRepository.AddComment(c.Request().Context(), postID, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Dispatch(notify.Event{
		Type:     notify.TypeComment,
		ActorID:  currentUserID,
		Resource: notify.Resource{Name: "post", ID: postID},
	})

	return c.JSON(http.StatusCreated, comment)
}

// CreateReply adds a reply to a comment and notifies the post audience
func (h *PostHandler) CreateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	commentID := c.Param("comment_id")

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply := &models.Reply{
		ReplyBy: currentUserID,
		Text:    req.Text,
	}
	if err := h.postRepository.AddReply(c.Request().Context(), postID, commentID, reply); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	h.notifier.Dispatch(notify.Event{
		Type:     notify.TypeReply,
		ActorID:  currentUserID,
		Resource: notify.Resource{Name: "post", ID: postID},
	})

	return c.JSON(http.StatusCreated, reply)
}

func paginationParams(c echo.Context) (skip, limit int64) {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	perPage, _ := strconv.ParseInt(c.QueryParam("perPage"), 10, 64)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return (page - 1) * perPage, perPage
}
