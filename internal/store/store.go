// Package store holds the canonical in-memory copy of every entity type.
// All access goes through View or RunInTransaction; rows are copied on the
// way in and on the way out so callers never share memory with the store.
package store

import (
	"context"
	"slices"
	"sync"

	"Go-Recipe-Chat/entities"
)

// Tx exposes the tables for the duration of one View or RunInTransaction
// call. It must not be retained after the callback returns.
type Tx struct {
	Users       *Table[entities.User]
	Recipes     *Table[entities.Recipe]
	Chats       *Table[entities.Chat]
	Messages    *Table[entities.Message]
	Favorites   *Table[entities.Favorite]
	RecentViews *Table[entities.RecentView]

	writable bool
	undo     []func()
}

func (tx *Tx) journal(fn func()) {
	tx.undo = append(tx.undo, fn)
}

func (tx *Tx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
}

type Store struct {
	mu sync.RWMutex
	tx Tx
}

func New() *Store {
	s := &Store{}
	s.tx = Tx{
		Users: newTable("user",
			func(u *entities.User, id uint) { u.ID = id }, cloneUser),
		Recipes: newTable("recipe",
			func(r *entities.Recipe, id uint) { r.ID = id }, cloneRecipe),
		Chats: newTable("chat",
			func(c *entities.Chat, id uint) { c.ID = id }, cloneChat),
		Messages: newTable("message",
			func(m *entities.Message, id uint) { m.ID = id }, cloneMessage),
		Favorites: newTable("favorite",
			func(f *entities.Favorite, id uint) { f.ID = id }, func(f entities.Favorite) entities.Favorite { return f }),
		RecentViews: newTable("recent_view",
			func(v *entities.RecentView, id uint) { v.ID = id }, func(v entities.RecentView) entities.RecentView { return v }),
	}
	s.tx.Users.tx = &s.tx
	s.tx.Recipes.tx = &s.tx
	s.tx.Chats.tx = &s.tx
	s.tx.Messages.tx = &s.tx
	s.tx.Favorites.tx = &s.tx
	s.tx.RecentViews.tx = &s.tx
	return s
}

// View runs fn under the read lock. Writes inside fn panic.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.tx)
}

// RunInTransaction runs fn under the write lock. If fn returns an error or
// panics, every write it made is undone before the lock is released.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx *Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tx.writable = true
	s.tx.undo = s.tx.undo[:0]
	committed := false
	defer func() {
		if !committed {
			s.tx.rollback()
		}
		s.tx.writable = false
		s.tx.undo = s.tx.undo[:0]
	}()

	if err := fn(&s.tx); err != nil {
		return err
	}
	committed = true
	return nil
}

func cloneUser(u entities.User) entities.User {
	u.PhotoURL = clonePtr(u.PhotoURL)
	u.ExternalUID = clonePtr(u.ExternalUID)
	u.LastSeen = clonePtr(u.LastSeen)
	return u
}

func cloneRecipe(r entities.Recipe) entities.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Instructions = slices.Clone(r.Instructions)
	r.ImageURL = clonePtr(r.ImageURL)
	return r
}

func cloneChat(c entities.Chat) entities.Chat {
	c.Name = clonePtr(c.Name)
	c.Participants = slices.Clone(c.Participants)
	c.LastMessage = clonePtr(c.LastMessage)
	c.LastMessageTime = clonePtr(c.LastMessageTime)
	return c
}

func cloneMessage(m entities.Message) entities.Message {
	m.FileURL = clonePtr(m.FileURL)
	m.FileName = clonePtr(m.FileName)
	m.FileSize = clonePtr(m.FileSize)
	return m
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
