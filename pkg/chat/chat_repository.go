package chat

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
)

type (
	ChatRepository interface {
		CreateChat(ctx context.Context, chat *entities.Chat) error
		GetChatByID(ctx context.Context, id uint) (*entities.Chat, error)
		GetChatsByParticipant(ctx context.Context, uid string) ([]entities.Chat, error)

		// CreateMessage stores message and moves the owning chat's last
		// message fields to it in one transaction. The message timestamp is
		// raised to the chat's current last message time when it is older,
		// so the chat summary never goes backwards.
		CreateMessage(ctx context.Context, message *entities.Message) error
		GetMessageByID(ctx context.Context, id uint) (*entities.Message, error)
		GetMessagesByChat(ctx context.Context, chatID uint) ([]entities.Message, error)
		MarkMessageRead(ctx context.Context, id uint) (*entities.Message, error)
	}

	chatRepository struct {
		db *gorm.DB
	}
)

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateChat(ctx context.Context, chat *entities.Chat) error {
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatRepository) GetChatByID(ctx context.Context, id uint) (*entities.Chat, error) {
	return getChat(r.db.WithContext(ctx), id)
}

func getChat(db *gorm.DB, id uint) (*entities.Chat, error) {
	var chat entities.Chat
	if err := db.Where("id = ?", id).First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetChatsByParticipant(ctx context.Context, uid string) ([]entities.Chat, error) {
	// participants is a JSON array column; LIKE narrows the scan and
	// HasParticipant drops the false positives.
	quoted, err := json.Marshal(uid)
	if err != nil {
		return nil, err
	}
	var candidates []entities.Chat
	if err := r.db.WithContext(ctx).
		Where("participants LIKE ?", "%"+string(quoted)+"%").
		Order("id asc").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	chats := make([]entities.Chat, 0, len(candidates))
	for _, c := range candidates {
		if c.HasParticipant(uid) {
			chats = append(chats, c)
		}
	}
	return chats, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chat, err := getChat(tx, message.ChatID)
		if err != nil {
			return err
		}
		if chat.LastMessageTime != nil && message.Timestamp.Before(*chat.LastMessageTime) {
			message.Timestamp = *chat.LastMessageTime
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Chat{}).
			Where("id = ?", chat.ID).
			Updates(map[string]interface{}{
				"last_message":      message.Text,
				"last_message_time": message.Timestamp,
			}).Error
	})
}

func (r *chatRepository) GetMessageByID(ctx context.Context, id uint) (*entities.Message, error) {
	var message entities.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *chatRepository) GetMessagesByChat(ctx context.Context, chatID uint) ([]entities.Message, error) {
	db := r.db.WithContext(ctx)
	if _, err := getChat(db, chatID); err != nil {
		return nil, err
	}
	messages := make([]entities.Message, 0)
	if err := db.Where("chat_id = ?", chatID).
		Order("sent_at asc, id asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepository) MarkMessageRead(ctx context.Context, id uint) (*entities.Message, error) {
	var message entities.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&message).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMessageNotFound
			}
			return err
		}
		message.Read = true
		return tx.Model(&message).Update("is_read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}
