package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
)

type (
	UserRepository interface {
		// CreateUser stores user and sets its ID. A clash on username, email
		// or external uid fails with the matching domain error and stores
		// nothing.
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
		// FindUserBy is a lookup on a unique field; the first match wins.
		FindUserBy(ctx context.Context, field domain.UniqueField, value string) (*entities.User, error)
		UpdatePresence(ctx context.Context, id uint, online bool, at time.Time) (*entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUnique(tx, "username", user.Username, domain.ErrUsernameTaken); err != nil {
			return err
		}
		if err := checkUnique(tx, "email", user.Email, domain.ErrEmailTaken); err != nil {
			return err
		}
		if user.ExternalUID != nil {
			if err := checkUnique(tx, "external_uid", *user.ExternalUID, domain.ErrExternalUIDTaken); err != nil {
				return err
			}
		}
		return tx.Create(user).Error
	})
}

func checkUnique(tx *gorm.DB, column, value string, taken error) error {
	var count int64
	if err := tx.Model(&entities.User{}).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return taken
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindUserBy(ctx context.Context, field domain.UniqueField, value string) (*entities.User, error) {
	column, ok := userColumns[field]
	if !ok {
		return nil, domain.ErrUnknownUniqueKey
	}
	var user entities.User
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).Order("id asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePresence(ctx context.Context, id uint, online bool, at time.Time) (*entities.User, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_online": online, "last_seen": at})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.GetUserByID(ctx, id)
}

var userColumns = map[domain.UniqueField]string{
	domain.FieldUsername:    "username",
	domain.FieldEmail:       "email",
	domain.FieldExternalUID: "external_uid",
}
