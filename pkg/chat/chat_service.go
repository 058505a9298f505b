package chat

import (
	"context"
	"sort"
	"strings"
	"time"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/utils/logger"
)

type (
	ChatService interface {
		CreateChat(ctx context.Context, req domain.CreateChatRequest) (*entities.Chat, error)
		GetChat(ctx context.Context, id uint) (*entities.Chat, error)
		GetUserChats(ctx context.Context, uid string) ([]entities.Chat, error)
		GetChatMessages(ctx context.Context, chatID uint) ([]entities.Message, error)
		GetMessage(ctx context.Context, id uint) (*entities.Message, error)
		PostMessage(ctx context.Context, chatID uint, sender domain.Sender, text string, msgType entities.MessageType, file *domain.FileRef) (*entities.Message, error)
		SendMessage(ctx context.Context, req domain.SendMessageRequest) (*entities.Message, error)
		MarkMessageRead(ctx context.Context, id uint) (*entities.Message, error)
	}

	chatService struct {
		chatRepository ChatRepository
		log            *logger.Logger
		now            func() time.Time
	}
)

func NewChatService(chatRepository ChatRepository, log *logger.Logger) ChatService {
	return &chatService{
		chatRepository: chatRepository,
		log:            log.With("service", "ChatService"),
		now:            time.Now,
	}
}

func (s *chatService) CreateChat(ctx context.Context, req domain.CreateChatRequest) (*entities.Chat, error) {
	participants := make([]string, 0, len(req.Participants))
	seen := make(map[string]bool, len(req.Participants))
	for _, p := range req.Participants {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if seen[p] {
			return nil, domain.ErrDuplicateParticipant
		}
		seen[p] = true
		participants = append(participants, p)
	}
	if len(participants) == 0 {
		return nil, domain.ErrNoParticipants
	}
	if !req.IsGroup && len(participants) != 2 {
		return nil, domain.ErrDirectChatParticipants
	}

	chat := &entities.Chat{
		Name:         req.Name,
		IsGroup:      req.IsGroup,
		Participants: participants,
		CreatedBy:    strings.TrimSpace(req.CreatedBy),
		CreatedAt:    s.now(),
	}
	if err := s.chatRepository.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	s.log.Info("chat created", "chatId", chat.ID, "participants", len(chat.Participants))
	return chat, nil
}

func (s *chatService) GetChat(ctx context.Context, id uint) (*entities.Chat, error) {
	return s.chatRepository.GetChatByID(ctx, id)
}

// GetUserChats lists the chats uid takes part in, most recently active
// first.
func (s *chatService) GetUserChats(ctx context.Context, uid string) ([]entities.Chat, error) {
	chats, err := s.chatRepository.GetChatsByParticipant(ctx, uid)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(chats, func(i, j int) bool {
		a, b := chats[i].LastActivity(), chats[j].LastActivity()
		if !a.Equal(b) {
			return a.After(b)
		}
		return chats[i].ID > chats[j].ID
	})
	return chats, nil
}

// GetChatMessages returns the chat history oldest first.
func (s *chatService) GetChatMessages(ctx context.Context, chatID uint) ([]entities.Message, error) {
	messages, err := s.chatRepository.GetMessagesByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].Timestamp.Before(messages[j].Timestamp)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages, nil
}

func (s *chatService) GetMessage(ctx context.Context, id uint) (*entities.Message, error) {
	return s.chatRepository.GetMessageByID(ctx, id)
}

func (s *chatService) PostMessage(
	ctx context.Context,
	chatID uint,
	sender domain.Sender,
	text string,
	msgType entities.MessageType,
	file *domain.FileRef,
) (*entities.Message, error) {
	if msgType == "" {
		msgType = entities.MessageTypeText
	}
	switch msgType {
	case entities.MessageTypeText:
		if strings.TrimSpace(text) == "" && file == nil {
			return nil, domain.ErrEmptyMessageText
		}
	case entities.MessageTypeImage, entities.MessageTypeFile:
		if file == nil {
			return nil, domain.ErrFileRefRequired
		}
	default:
		return nil, domain.ErrUnknownMessageType
	}
	if strings.TrimSpace(sender.ID) == "" {
		return nil, domain.InvalidArgument("senderId is required")
	}

	message := &entities.Message{
		ChatID:     chatID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Text:       text,
		Type:       msgType,
		Timestamp:  s.now(),
	}
	if file != nil {
		url, name, size := file.URL, file.Name, file.Size
		message.FileURL = &url
		message.FileName = &name
		message.FileSize = &size
	}

	if err := s.chatRepository.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	s.log.Debug("message posted", "chatId", chatID, "messageId", message.ID, "type", msgType)
	return message, nil
}

func (s *chatService) SendMessage(ctx context.Context, req domain.SendMessageRequest) (*entities.Message, error) {
	file, err := req.FileRef()
	if err != nil {
		return nil, err
	}
	return s.PostMessage(
		ctx,
		req.ChatID,
		domain.Sender{ID: req.SenderID, Name: req.SenderName},
		req.Text,
		entities.MessageType(req.Type),
		file,
	)
}

func (s *chatService) MarkMessageRead(ctx context.Context, id uint) (*entities.Message, error) {
	return s.chatRepository.MarkMessageRead(ctx, id)
}
