package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/internal/api/presenters"
	"Go-Recipe-Chat/internal/utils/storage"
)

const uploadFolder = "chat-files"

type (
	UploadHandler interface {
		Upload(c *fiber.Ctx) error
	}

	uploadHandler struct {
		s3 storage.AwsS3
	}
)

func NewUploadHandler(s3 storage.AwsS3) UploadHandler {
	return &uploadHandler{s3: s3}
}

// Upload stores a multipart "file" and returns the reference a non-text
// chat message carries.
func (h *uploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFile, err)
	}

	url, err := h.s3.UploadFile(c.Context(), uploadFolder, file)
	if err != nil {
		if errors.Is(err, storage.ErrStorageNotConfigured) {
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedUploadFile, err)
		}
		return presenters.FailResponse(c, domain.MessageFailedUploadFile, err)
	}

	return presenters.SuccessResponse(c, domain.UploadFileResponse{
		URL:  url,
		Name: file.Filename,
		Size: file.Size,
	}, fiber.StatusCreated, domain.MessageSuccessUploadFile)
}
