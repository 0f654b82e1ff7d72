package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plateful/plateful-backend/internal/storage"
)

// maxImageBytes caps uploaded image payloads at 10 MiB.
const maxImageBytes = 10 << 20

// ImageService validates and stores recipe images.
type ImageService struct {
	store storage.ImageStore
}

func NewImageService(store storage.ImageStore) *ImageService {
	return &ImageService{store: store}
}

// Store validates that the upload decodes as an image and persists it under
// a freshly generated name. The user-supplied filename contributes only its
// extension; the stored name is a random uuid, avoiding collisions and path
// injection. Returns the stored path.
func (s *ImageService) Store(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxImageBytes {
		return "", ErrNotAnImage
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", ErrNotAnImage
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}

	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	if ext == "" {
		ext = "." + format
	}

	key := path.Join("uploads", "recipe", uuid.New().String()+ext)
	return s.store.Save(ctx, key, data, "image/"+format)
}

// Remove releases a stored image, best-effort. Replacing an image or
// deleting its recipe must not fail because cleanup did.
func (s *ImageService) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove stored image")
	}
}
