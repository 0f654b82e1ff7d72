package storage

import "context"

// ImageStore persists uploaded image bytes under a caller-chosen key and
// releases them again. Keys are relative paths like uploads/recipe/<name>.
type ImageStore interface {
	// Save stores data under key and returns the path recorded on the
	// recipe row.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete releases a previously stored object. Missing objects are not
	// an error.
	Delete(ctx context.Context, key string) error
}
