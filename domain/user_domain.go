package domain

import (
	"fmt"
	"time"

	"Go-Recipe-Chat/entities"
)

var (
	MessageSuccessCreateUser     = "user created successfully"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessLogin          = "login success"
	MessageSuccessUpdatePresence = "presence updated successfully"

	MessageFailedCreateUser     = "failed to create user"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedLogin          = "failed to login"
	MessageFailedUpdatePresence = "failed to update presence"

	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrUsernameTaken     = fmt.Errorf("%w: username already taken", ErrInvalidArgument)
	ErrEmailTaken        = fmt.Errorf("%w: email already registered", ErrInvalidArgument)
	ErrExternalUIDTaken  = fmt.Errorf("%w: external identity already linked", ErrInvalidArgument)
	ErrUnknownUniqueKey  = fmt.Errorf("%w: field is not a unique user key", ErrInvalidArgument)
	ErrUsernameExhausted = fmt.Errorf("%w: could not derive a free username", ErrInvalidArgument)
)

// UniqueField names a user field declared unique in the data model.
type UniqueField string

const (
	FieldUsername    UniqueField = "username"
	FieldEmail       UniqueField = "email"
	FieldExternalUID UniqueField = "externalUid"
)

func (f UniqueField) Valid() bool {
	switch f {
	case FieldUsername, FieldEmail, FieldExternalUID:
		return true
	}
	return false
}

type (
	CreateUserRequest struct {
		Username    string  `json:"username" validate:"required,min=3,max=32"`
		Email       string  `json:"email" validate:"required,email"`
		DisplayName string  `json:"displayName" validate:"required,max=64"`
		PhotoURL    *string `json:"photoURL" validate:"omitempty,url"`
		ExternalUID *string `json:"externalUid" validate:"omitempty,min=1,max=128"`
	}

	// IdentityLoginRequest carries the profile an identity provider returned
	// for a verified account.
	IdentityLoginRequest struct {
		ExternalUID string  `json:"externalUid" validate:"required,max=128"`
		Email       string  `json:"email" validate:"required,email"`
		DisplayName string  `json:"displayName" validate:"required,max=64"`
		PhotoURL    *string `json:"photoURL" validate:"omitempty,url"`
		Username    string  `json:"username" validate:"omitempty,min=3,max=32"`
	}

	UpdatePresenceRequest struct {
		IsOnline *bool `json:"isOnline" validate:"required"`
	}

	LoginResponse struct {
		Token     string        `json:"token"`
		User      entities.User `json:"user"`
		IsNewUser bool          `json:"isNewUser"`
	}

	UserResponse struct {
		ID          uint       `json:"id"`
		Username    string     `json:"username"`
		DisplayName string     `json:"displayName"`
		PhotoURL    *string    `json:"photoURL"`
		IsOnline    bool       `json:"isOnline"`
		LastSeen    *time.Time `json:"lastSeen"`
	}
)

// ToUserResponse strips the fields other users should not see.
func ToUserResponse(u entities.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		IsOnline:    u.IsOnline,
		LastSeen:    u.LastSeen,
	}
}
