package chat

import (
	"context"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/store"
)

type memoryChatRepository struct {
	store *store.Store
}

func NewMemoryChatRepository(st *store.Store) ChatRepository {
	return &memoryChatRepository{store: st}
}

func (r *memoryChatRepository) CreateChat(ctx context.Context, chat *entities.Chat) error {
	return r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		*chat = tx.Chats.Create(*chat)
		return nil
	})
}

func (r *memoryChatRepository) GetChatByID(ctx context.Context, id uint) (*entities.Chat, error) {
	var out *entities.Chat
	err := r.store.View(ctx, func(tx *store.Tx) error {
		chat, ok := tx.Chats.Get(id)
		if !ok {
			return domain.ErrChatNotFound
		}
		out = &chat
		return nil
	})
	return out, err
}

func (r *memoryChatRepository) GetChatsByParticipant(ctx context.Context, uid string) ([]entities.Chat, error) {
	var out []entities.Chat
	err := r.store.View(ctx, func(tx *store.Tx) error {
		out = tx.Chats.Filter(func(c entities.Chat) bool { return c.HasParticipant(uid) })
		return nil
	})
	return out, err
}

func (r *memoryChatRepository) CreateMessage(ctx context.Context, message *entities.Message) error {
	return r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		chat, ok := tx.Chats.Get(message.ChatID)
		if !ok {
			return domain.ErrChatNotFound
		}
		if chat.LastMessageTime != nil && message.Timestamp.Before(*chat.LastMessageTime) {
			message.Timestamp = *chat.LastMessageTime
		}
		created := tx.Messages.Create(*message)
		tx.Chats.Update(chat.ID, func(c *entities.Chat) {
			text, at := created.Text, created.Timestamp
			c.LastMessage = &text
			c.LastMessageTime = &at
		})
		*message = created
		return nil
	})
}

func (r *memoryChatRepository) GetMessageByID(ctx context.Context, id uint) (*entities.Message, error) {
	var out *entities.Message
	err := r.store.View(ctx, func(tx *store.Tx) error {
		m, ok := tx.Messages.Get(id)
		if !ok {
			return domain.ErrMessageNotFound
		}
		out = &m
		return nil
	})
	return out, err
}

func (r *memoryChatRepository) GetMessagesByChat(ctx context.Context, chatID uint) ([]entities.Message, error) {
	var out []entities.Message
	err := r.store.View(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Chats.Get(chatID); !ok {
			return domain.ErrChatNotFound
		}
		out = tx.Messages.Filter(func(m entities.Message) bool { return m.ChatID == chatID })
		return nil
	})
	return out, err
}

func (r *memoryChatRepository) MarkMessageRead(ctx context.Context, id uint) (*entities.Message, error) {
	var out *entities.Message
	err := r.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		m, ok := tx.Messages.Update(id, func(m *entities.Message) { m.Read = true })
		if !ok {
			return domain.ErrMessageNotFound
		}
		out = &m
		return nil
	})
	return out, err
}
