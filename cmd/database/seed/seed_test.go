package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/internal/store"
	"Go-Recipe-Chat/internal/utils/logger"
	"Go-Recipe-Chat/pkg/chat"
	"Go-Recipe-Chat/pkg/recipe"
	"Go-Recipe-Chat/pkg/user"
)

func TestSeedIsIdempotent(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	users := user.NewMemoryUserRepository(st)
	recipes := recipe.NewMemoryRecipeRepository(st)
	chats := chat.NewMemoryChatRepository(st)

	require.NoError(t, Seed(ctx, users, recipes, chats, logger.Nop()))
	require.NoError(t, Seed(ctx, users, recipes, chats, logger.Nop()))

	all, err := recipes.GetAllRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(demoRecipes()))

	bob, err := users.FindUserBy(ctx, domain.FieldExternalUID, "bob-uid")
	require.NoError(t, err)
	assert.Equal(t, "bob", bob.Username)

	demo, err := chats.GetChatByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, demo.LastMessage)
	assert.Equal(t, greeting, *demo.LastMessage)

	messages, err := chats.GetMessagesByChat(ctx, demo.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
