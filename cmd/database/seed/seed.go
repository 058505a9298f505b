package seed

import (
	"context"
	"errors"
	"time"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/utils/logger"
	"Go-Recipe-Chat/pkg/chat"
	"Go-Recipe-Chat/pkg/recipe"
	"Go-Recipe-Chat/pkg/user"
)

const greeting = "Hey there! How are you?"

// Seed loads the demo users, chat and recipes. It does nothing when the
// demo user alice already exists.
func Seed(ctx context.Context, users user.UserRepository, recipes recipe.RecipeRepository, chats chat.ChatRepository, log *logger.Logger) error {
	_, err := users.FindUserBy(ctx, domain.FieldUsername, "alice")
	if err == nil {
		log.Info("demo data already present")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	now := time.Now()
	hourAgo := now.Add(-time.Hour)
	for _, u := range []entities.User{
		{
			Username:    "alice",
			Email:       "alice@example.com",
			DisplayName: "Alice Smith",
			PhotoURL:    strPtr("https://images.unsplash.com/photo-1494790108755-2616b612b5bc?w=150&h=150&fit=crop&crop=face"),
			ExternalUID: strPtr("alice-uid"),
			IsOnline:    true,
			LastSeen:    &now,
			CreatedAt:   now,
		},
		{
			Username:    "bob",
			Email:       "bob@example.com",
			DisplayName: "Bob Johnson",
			PhotoURL:    strPtr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face"),
			ExternalUID: strPtr("bob-uid"),
			LastSeen:    &hourAgo,
			CreatedAt:   now,
		},
	} {
		u := u
		if err := users.CreateUser(ctx, &u); err != nil {
			return err
		}
	}

	demoChat := &entities.Chat{
		Participants: []string{"alice-uid", "bob-uid"},
		CreatedBy:    "alice-uid",
		CreatedAt:    now,
	}
	if err := chats.CreateChat(ctx, demoChat); err != nil {
		return err
	}
	if err := chats.CreateMessage(ctx, &entities.Message{
		ChatID:     demoChat.ID,
		SenderID:   "alice-uid",
		SenderName: "Alice Smith",
		Text:       greeting,
		Type:       entities.MessageTypeText,
		Timestamp:  now,
	}); err != nil {
		return err
	}

	for _, r := range demoRecipes() {
		r := r
		r.CreatedAt = now
		if err := recipes.CreateRecipe(ctx, &r); err != nil {
			return err
		}
	}

	log.Info("demo data seeded", "users", 2, "chats", 1, "recipes", len(demoRecipes()))
	return nil
}

func demoRecipes() []entities.Recipe {
	return []entities.Recipe{
		{
			Title:        "Garlic Butter Pasta",
			Description:  "Spaghetti tossed in browned garlic butter with parmesan.",
			Ingredients:  []string{"Spaghetti", "Garlic", "Butter", "Parmesan", "Parsley"},
			Instructions: []string{"Boil the pasta.", "Brown the garlic in butter.", "Toss with pasta and cheese."},
			PrepTime:     10, CookTime: 15, Servings: 2,
			Difficulty: entities.DifficultyEasy, Cuisine: "Italian", Category: "Main Course",
			Rating: 4.7, ReviewCount: 128,
		},
		{
			Title:        "Kale Caesar Salad",
			Description:  "Massaged kale with a lemony anchovy dressing and croutons.",
			Ingredients:  []string{"Kale", "Lemon", "Anchovies", "Parmesan", "Croutons"},
			Instructions: []string{"Massage the kale with dressing.", "Top with croutons and cheese."},
			PrepTime:     15, CookTime: 0, Servings: 2,
			Difficulty: entities.DifficultyEasy, Cuisine: "American", Category: "Salad",
			Rating: 4.3, ReviewCount: 64,
		},
		{
			Title:        "Chicken Tikka Masala",
			Description:  "Grilled chicken in a spiced tomato cream sauce.",
			Ingredients:  []string{"Chicken thighs", "Yogurt", "Garam masala", "Tomatoes", "Cream", "Garlic"},
			Instructions: []string{"Marinate the chicken.", "Grill until charred.", "Simmer in the sauce."},
			PrepTime:     30, CookTime: 40, Servings: 4,
			Difficulty: entities.DifficultyMedium, Cuisine: "Indian", Category: "Main Course",
			Rating: 4.8, ReviewCount: 342,
		},
		{
			Title:        "Peanut Noodles",
			Description:  "Cold noodles in a sesame peanut sauce.",
			Ingredients:  []string{"Noodles", "Peanut butter", "Soy sauce", "Sesame oil", "Scallions"},
			Instructions: []string{"Cook and chill the noodles.", "Whisk the sauce.", "Toss together."},
			PrepTime:     10, CookTime: 10, Servings: 2,
			Difficulty: entities.DifficultyEasy, Cuisine: "Chinese", Category: "Main Course",
			Rating: 4.5, ReviewCount: 97,
		},
		{
			Title:        "Beef Wellington",
			Description:  "Beef tenderloin wrapped in mushroom duxelles and puff pastry.",
			Ingredients:  []string{"Beef tenderloin", "Mushrooms", "Prosciutto", "Puff pastry", "Egg"},
			Instructions: []string{"Sear the beef.", "Wrap in duxelles and prosciutto.", "Encase in pastry and bake."},
			PrepTime:     45, CookTime: 40, Servings: 6,
			Difficulty: entities.DifficultyHard, Cuisine: "British", Category: "Main Course",
			Rating: 4.9, ReviewCount: 211,
		},
		{
			Title:        "Banana Pancakes",
			Description:  "Fluffy pancakes with mashed banana.",
			Ingredients:  []string{"Flour", "Banana", "Egg", "Milk", "Baking powder"},
			Instructions: []string{"Mix the batter.", "Fry on a hot griddle."},
			PrepTime:     10, CookTime: 15, Servings: 3,
			Difficulty: entities.DifficultyEasy, Cuisine: "American", Category: "Breakfast",
			Rating: 4.4, ReviewCount: 150,
		},
	}
}

func strPtr(s string) *string { return &s }
