package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Go-Recipe-Chat/entities"
)

func TestCreateAssignsMonotonicIDsPerType(t *testing.T) {
	st := New()
	ctx := context.Background()

	var recipeIDs, chatIDs []uint
	err := st.RunInTransaction(ctx, func(tx *Tx) error {
		for i := 0; i < 3; i++ {
			recipeIDs = append(recipeIDs, tx.Recipes.Create(entities.Recipe{Title: "r"}).ID)
		}
		chatIDs = append(chatIDs, tx.Chats.Create(entities.Chat{Participants: []string{"a", "b"}}).ID)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3}, recipeIDs)
	assert.Equal(t, []uint{1}, chatIDs)
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	st := New()
	ctx := context.Background()

	require.NoError(t, st.RunInTransaction(ctx, func(tx *Tx) error {
		first := tx.Favorites.Create(entities.Favorite{UserID: 1, RecipeID: 1})
		require.True(t, tx.Favorites.Delete(first.ID))
		second := tx.Favorites.Create(entities.Favorite{UserID: 1, RecipeID: 1})
		assert.Equal(t, uint(2), second.ID)
		return nil
	}))
}

func TestRowsAreDefensiveCopies(t *testing.T) {
	st := New()
	ctx := context.Background()

	var created entities.Recipe
	require.NoError(t, st.RunInTransaction(ctx, func(tx *Tx) error {
		in := entities.Recipe{Title: "Soup", Ingredients: []string{"water", "salt"}}
		created = tx.Recipes.Create(in)
		in.Ingredients[0] = "mutated"
		return nil
	}))
	created.Ingredients[1] = "pepper"

	require.NoError(t, st.View(ctx, func(tx *Tx) error {
		got, ok := tx.Recipes.Get(created.ID)
		require.True(t, ok)
		assert.Equal(t, []string{"water", "salt"}, got.Ingredients)
		got.Ingredients[0] = "oil"

		again, _ := tx.Recipes.Get(created.ID)
		assert.Equal(t, "water", again.Ingredients[0])
		return nil
	}))
}

func TestFailedTransactionLeavesNoPartialWrites(t *testing.T) {
	st := New()
	ctx := context.Background()

	require.NoError(t, st.RunInTransaction(ctx, func(tx *Tx) error {
		tx.Chats.Create(entities.Chat{Participants: []string{"a", "b"}})
		return nil
	}))

	boom := errors.New("boom")
	err := st.RunInTransaction(ctx, func(tx *Tx) error {
		tx.Messages.Create(entities.Message{ChatID: 1, Text: "hi"})
		text := "hi"
		tx.Chats.Update(1, func(c *entities.Chat) { c.LastMessage = &text })
		tx.Chats.Delete(1)
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, st.View(ctx, func(tx *Tx) error {
		assert.Equal(t, 0, tx.Messages.Len())
		chat, ok := tx.Chats.Get(1)
		require.True(t, ok)
		assert.Nil(t, chat.LastMessage)
		return nil
	}))
}

func TestUpdateKeepsID(t *testing.T) {
	st := New()
	ctx := context.Background()

	require.NoError(t, st.RunInTransaction(ctx, func(tx *Tx) error {
		u := tx.Users.Create(entities.User{Username: "alice"})
		updated, ok := tx.Users.Update(u.ID, func(u *entities.User) {
			u.ID = 42
			u.IsOnline = true
		})
		require.True(t, ok)
		assert.Equal(t, uint(1), updated.ID)
		assert.True(t, updated.IsOnline)

		_, ok = tx.Users.Update(99, func(*entities.User) {})
		assert.False(t, ok)
		return nil
	}))
}

func TestFindAndFilterFollowIDOrder(t *testing.T) {
	st := New()
	ctx := context.Background()

	require.NoError(t, st.RunInTransaction(ctx, func(tx *Tx) error {
		for _, name := range []string{"b", "a", "b"} {
			tx.Users.Create(entities.User{Username: name})
		}
		return nil
	}))

	require.NoError(t, st.View(ctx, func(tx *Tx) error {
		u, ok := tx.Users.Find(func(u entities.User) bool { return u.Username == "b" })
		require.True(t, ok)
		assert.Equal(t, uint(1), u.ID)

		bs := tx.Users.Filter(func(u entities.User) bool { return u.Username == "b" })
		require.Len(t, bs, 2)
		assert.Equal(t, uint(3), bs[1].ID)

		_, ok = tx.Users.Find(func(u entities.User) bool { return u.Username == "zed" })
		assert.False(t, ok)
		return nil
	}))
}

func TestWriteInsideViewPanics(t *testing.T) {
	st := New()
	assert.Panics(t, func() {
		_ = st.View(context.Background(), func(tx *Tx) error {
			tx.Recipes.Create(entities.Recipe{})
			return nil
		})
	})
}

func TestCanceledContextIsRejected(t *testing.T) {
	st := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := st.RunInTransaction(ctx, func(tx *Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
