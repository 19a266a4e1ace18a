package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/storage"
)

func (handler *Handler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if header.Size > handler.uploads.MaxBytes() {
		handler.recorder.ObserveMutation("upload", "validation")
		return apiError(c, fiber.StatusBadRequest, storage.ErrTooLarge.Error())
	}

	file, err := header.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	defer file.Close()

	url, err := handler.uploads.Save(file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrEmptyUpload) {
			handler.recorder.ObserveMutation("upload", "validation")
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("upload file: %v", err)
		handler.recorder.ObserveMutation("upload", "store")
		return apiError(c, fiber.StatusInternalServerError, "Failed to upload file")
	}

	handler.recorder.ObserveMutation("upload", "success")
	return c.JSON(fiber.Map{"success": true, "url": url})
}
