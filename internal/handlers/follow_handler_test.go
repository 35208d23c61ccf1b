package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/notify"
	"github.com/seedit-social/backend/internal/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	db, err := gorm.Open(dsn, &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Device{}, &models.Follow{}, &models.Notification{}, &models.Outbox{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newFollowHandler(t *testing.T, db *gorm.DB) *FollowHandler {
	t.Helper()
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	outboxRepo := repositories.NewPostgresOutboxRepository(db)
	resolver := notify.NewResolver(userRepo, nil, nil, followRepo)
	notifier := notify.NewService(resolver, userRepo, followRepo, notificationRepo, outboxRepo)
	return NewFollowHandler(followRepo, userRepo, notifier)
}

func seedHandlerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{UserName: username, Name: username, Email: username + "@example.com"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func followRequest(e *echo.Echo, actorID uint, targetID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id/follow")
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	c.Set("user", &models.JwtCustomClaims{UserID: actorID})
	return c, rec
}

func TestFollowUser(t *testing.T) {
	db := newTestDB(t)
	h := newFollowHandler(t, db)
	e := echo.New()
	alice := seedHandlerUser(t, db, "alice")
	bob := seedHandlerUser(t, db, "bob")

	c, rec := followRequest(e, alice.ID, strconv.FormatUint(uint64(bob.ID), 10))
	if err := h.FollowUser(c); err != nil {
		t.Fatalf("FollowUser: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var count int64
	db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", alice.ID, bob.ID).Count(&count)
	if count != 1 {
		t.Errorf("follow rows = %d, want 1", count)
	}
}

func TestFollowUserSelf(t *testing.T) {
	db := newTestDB(t)
	h := newFollowHandler(t, db)
	e := echo.New()
	alice := seedHandlerUser(t, db, "alice")

	c, _ := followRequest(e, alice.ID, strconv.FormatUint(uint64(alice.ID), 10))
	err := h.FollowUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestFollowUserUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	h := newFollowHandler(t, db)
	e := echo.New()
	alice := seedHandlerUser(t, db, "alice")

	c, _ := followRequest(e, alice.ID, "9999")
	err := h.FollowUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestFollowUserDuplicate(t *testing.T) {
	db := newTestDB(t)
	h := newFollowHandler(t, db)
	e := echo.New()
	alice := seedHandlerUser(t, db, "alice")
	bob := seedHandlerUser(t, db, "bob")
	if err := db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	c, _ := followRequest(e, alice.ID, strconv.FormatUint(uint64(bob.ID), 10))
	err := h.FollowUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("err = %v, want 409", err)
	}
}

func TestUnfollowUser(t *testing.T) {
	db := newTestDB(t)
	h := newFollowHandler(t, db)
	e := echo.New()
	alice := seedHandlerUser(t, db, "alice")
	bob := seedHandlerUser(t, db, "bob")
	if err := db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id/follow")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(bob.ID), 10))
	c.Set("user", &models.JwtCustomClaims{UserID: alice.ID})

	if err := h.UnfollowUser(c); err != nil {
		t.Fatalf("UnfollowUser: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("follow rows = %d, want 0", count)
	}
}
