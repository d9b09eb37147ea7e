package handler

import (
	"github.com/labstack/echo/v4"

	"freestuff/internal/infrastructure/storage"
	"freestuff/pkg/errors"
	"freestuff/pkg/response"
)

var fileHandler *FileHandler

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = &FileHandler{
		storageClient: storageClient,
	}
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

// UploadImage accepts a multipart image and returns the public URL to store
// in an item's photos list.
func (h *FileHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("failed to open uploaded file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.storageClient.UploadImage(c.Request().Context(), file, contentType)
	if err != nil {
		return response.Error(c, errors.Internal("failed to upload image", err))
	}

	return response.Created(c, map[string]string{"url": url})
}
