package user

import (
	"context"
	"time"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/store"
)

type memoryUserRepository struct {
	store *store.Store
}

func NewMemoryUserRepository(st *store.Store) UserRepository {
	return &memoryUserRepository{store: st}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		for _, u := range tx.Users.List() {
			switch {
			case u.Username == user.Username:
				return domain.ErrUsernameTaken
			case u.Email == user.Email:
				return domain.ErrEmailTaken
			case user.ExternalUID != nil && u.ExternalUID != nil && *u.ExternalUID == *user.ExternalUID:
				return domain.ErrExternalUIDTaken
			}
		}
		*user = tx.Users.Create(*user)
		return nil
	})
}

func (r *memoryUserRepository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var out *entities.User
	err := r.store.View(ctx, func(tx *store.Tx) error {
		u, ok := tx.Users.Get(id)
		if !ok {
			return domain.ErrUserNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *memoryUserRepository) FindUserBy(ctx context.Context, field domain.UniqueField, value string) (*entities.User, error) {
	match, ok := userMatchers[field]
	if !ok {
		return nil, domain.ErrUnknownUniqueKey
	}
	var out *entities.User
	err := r.store.View(ctx, func(tx *store.Tx) error {
		u, found := tx.Users.Find(func(u entities.User) bool { return match(u, value) })
		if !found {
			return domain.ErrUserNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *memoryUserRepository) UpdatePresence(ctx context.Context, id uint, online bool, at time.Time) (*entities.User, error) {
	var out *entities.User
	err := r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		u, ok := tx.Users.Update(id, func(u *entities.User) {
			u.IsOnline = online
			u.LastSeen = &at
		})
		if !ok {
			return domain.ErrUserNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

var userMatchers = map[domain.UniqueField]func(entities.User, string) bool{
	domain.FieldUsername: func(u entities.User, v string) bool { return u.Username == v },
	domain.FieldEmail:    func(u entities.User, v string) bool { return u.Email == v },
	domain.FieldExternalUID: func(u entities.User, v string) bool {
		return u.ExternalUID != nil && *u.ExternalUID == v
	},
}
