package media

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
)

var ErrEmptyFile = errors.New("no file to upload")

const (
	FolderAvatars     = "avatars"
	FolderCoverImages = "cover-images"
)

// Store uploads and deletes user assets in an external object store.
type Store interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.Asset, error)
	Delete(ctx context.Context, key string) error
}
