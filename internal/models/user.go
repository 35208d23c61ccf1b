package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User represents an account stored in PostgreSQL
type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserName    string `json:"user_name" gorm:"uniqueIndex;size:64"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Phone       string `json:"phone,omitempty"`
	Password    string `json:"-"` // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"index"`
	Bio         string `json:"bio,omitempty"`

	// Notification channel preferences. Mail and push are opted in by
	// default, SMS is opt-in only.
	NotifyMail bool `json:"notify_mail" gorm:"default:true"`
	NotifyPush bool `json:"notify_push" gorm:"default:true"`
	NotifySms  bool `json:"notify_sms" gorm:"default:false"`

	ActiveFlag bool `json:"active_flag" gorm:"default:true"`
	DeleteFlag bool `json:"-" gorm:"default:false;index"`
}

// Device is a push target registered by a user's client
type Device struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_device"`
	DeviceID   string    `json:"device_id" gorm:"uniqueIndex:idx_user_device"`
	DeviceType string    `json:"device_type" gorm:"size:20"` // e.g. "android", "ios", "web"
	CreatedAt  time.Time `json:"created_at"`
}

// UserCompact is the trimmed user shape embedded in other responses
type UserCompact struct {
	ID       uint   `json:"id"`
	UserName string `json:"user_name"`
	Name     string `json:"name"`
}

// ToCompact converts a User into its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, UserName: u.UserName, Name: u.Name}
}

// DisplayName returns the name shown in rendered notifications
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.UserName
}

type SignupRequest struct {
	UserName string `json:"user_name" validate:"required,min=2,max=64"`
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken  string `json:"id_token" validate:"required"`
	UserName string `json:"user_name,omitempty" validate:"omitempty,min=2,max=64"`
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
}

type UpdateUserRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Bio   string `json:"bio,omitempty" validate:"omitempty,max=280"`
	Phone string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// UpdatePreferencesRequest toggles notification channels for the current user
type UpdatePreferencesRequest struct {
	Mail *bool `json:"mail,omitempty"`
	Push *bool `json:"push,omitempty"`
	Sms  *bool `json:"sms,omitempty"`
}

// RegisterDeviceRequest registers a push device token
type RegisterDeviceRequest struct {
	DeviceID   string `json:"device_id" validate:"required"`
	DeviceType string `json:"device_type" validate:"required,oneof=android ios web"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
