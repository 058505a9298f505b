package domain

import (
	"fmt"
)

var (
	MessageSuccessGetChat     = "success get chat"
	MessageSuccessGetChats    = "success get chats"
	MessageSuccessCreateChat  = "chat created successfully"
	MessageSuccessGetMessages = "success get messages"
	MessageSuccessSendMessage = "message sent successfully"
	MessageSuccessMarkAsRead  = "message marked as read"

	MessageFailedGetChat     = "failed to get chat"
	MessageFailedGetChats    = "failed to get chats"
	MessageFailedCreateChat  = "failed to create chat"
	MessageFailedGetMessages = "failed to get messages"
	MessageFailedSendMessage = "failed to send message"
	MessageFailedMarkAsRead  = "failed to mark message as read"

	ErrChatNotFound           = fmt.Errorf("chat %w", ErrNotFound)
	ErrMessageNotFound        = fmt.Errorf("message %w", ErrNotFound)
	ErrNoParticipants         = fmt.Errorf("%w: participants must not be empty", ErrInvalidArgument)
	ErrDuplicateParticipant   = fmt.Errorf("%w: participants must be unique", ErrInvalidArgument)
	ErrDirectChatParticipants = fmt.Errorf("%w: a direct chat needs exactly two participants", ErrInvalidArgument)
	ErrFileRefRequired        = fmt.Errorf("%w: fileUrl, fileName and fileSize are required for non-text messages", ErrInvalidArgument)
	ErrIncompleteFileRef      = fmt.Errorf("%w: fileUrl, fileName and fileSize must be provided together", ErrInvalidArgument)
	ErrEmptyMessageText       = fmt.Errorf("%w: text messages need a body", ErrInvalidArgument)
	ErrUnknownMessageType     = fmt.Errorf("%w: message type must be text, image or file", ErrInvalidArgument)
)

type (
	CreateChatRequest struct {
		Name         *string  `json:"name" validate:"omitempty,max=100"`
		IsGroup      bool     `json:"isGroup"`
		Participants []string `json:"participants" validate:"required,min=1,dive,required"`
		CreatedBy    string   `json:"createdBy" validate:"required"`
	}

	// SendMessageRequest is shared by the HTTP endpoint and the socket
	// "send-message" event; ChatID is taken from the path for HTTP.
	SendMessageRequest struct {
		ChatID     uint    `json:"chatId"`
		SenderID   string  `json:"senderId" validate:"required"`
		SenderName string  `json:"senderName" validate:"required"`
		Text       string  `json:"text" validate:"max=4000"`
		Type       string  `json:"type" validate:"omitempty,oneof=text image file"`
		FileURL    *string `json:"fileUrl" validate:"omitempty,url"`
		FileName   *string `json:"fileName" validate:"omitempty,max=255"`
		FileSize   *int64  `json:"fileSize" validate:"omitempty,min=0"`
	}

	// Sender identifies who posted a message, with the display name as it
	// was at send time.
	Sender struct {
		ID   string
		Name string
	}

	FileRef struct {
		URL  string
		Name string
		Size int64
	}
)

// FileRef collects the optional file fields. It returns nil when none are
// set and ErrIncompleteFileRef when only some are.
func (r SendMessageRequest) FileRef() (*FileRef, error) {
	set := 0
	for _, present := range []bool{r.FileURL != nil, r.FileName != nil, r.FileSize != nil} {
		if present {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 3:
		return &FileRef{URL: *r.FileURL, Name: *r.FileName, Size: *r.FileSize}, nil
	default:
		return nil, ErrIncompleteFileRef
	}
}
