package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/repository"
	"page-builder-backend/pkg/logger"
	"page-builder-backend/pkg/media"
	"page-builder-backend/pkg/validator"
)

// MediaService stores uploaded images and videos on disk and records them in
// the media library.
type MediaService struct {
	mediaRepo repository.MediaRepository
	uploadDir string
	uploadURL string
	maxSize   int64
}

func NewMediaService(mediaRepo repository.MediaRepository, uploadDir, uploadURL string, maxSize int64) (*MediaService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if uploadURL == "" {
		uploadURL = "/uploads"
	}
	return &MediaService{
		mediaRepo: mediaRepo,
		uploadDir: uploadDir,
		uploadURL: uploadURL,
		maxSize:   maxSize,
	}, nil
}

func (s *MediaService) Upload(ctx context.Context, file *multipart.FileHeader, folder, alt string) (*models.MediaItem, error) {
	if file == nil {
		return nil, invalid("file is required")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return s.Store(ctx, file.Filename, src, file.Size, folder, alt)
}

// Store sniffs src, rejects anything that is not an allowed image or video
// and writes it under a generated name.
func (s *MediaService) Store(ctx context.Context, originalName string, src io.ReadSeeker, size int64, folder, alt string) (*models.MediaItem, error) {
	if size <= 0 {
		return nil, invalid("file is empty")
	}
	if !validator.ValidateFileSize(size, s.maxSize) {
		return nil, models.ErrMediaTooLarge
	}

	info, err := media.Sniff(src)
	if err != nil {
		if errors.Is(err, media.ErrUnsupported) {
			return nil, models.ErrUnsupportedMedia
		}
		return nil, err
	}

	allowed := false
	switch info.Kind {
	case media.KindImage:
		allowed = validator.ValidateImageContentType(info.MimeType)
	case media.KindVideo:
		allowed = validator.ValidateVideoContentType(info.MimeType)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedMedia, info.MimeType)
	}

	filename := uuid.NewString() + info.Extension
	target := filepath.Join(s.uploadDir, filename)

	written, err := writeFile(target, src)
	if err != nil {
		return nil, err
	}

	item := &models.MediaItem{
		FileName:        filename,
		OriginalName:    validator.SanitizeFilename(filepath.Base(strings.TrimSpace(originalName))),
		FileURL:         path.Join(s.uploadURL, filename),
		MimeType:        info.MimeType,
		Size:            written,
		Folder:          strings.TrimSpace(validator.SanitizeString(folder)),
		Alt:             strings.TrimSpace(validator.SanitizeString(alt)),
		DurationSeconds: info.Duration.Seconds(),
	}
	if err := s.mediaRepo.Create(ctx, item); err != nil {
		os.Remove(target)
		return nil, err
	}

	logger.Info("Media uploaded", map[string]interface{}{
		"media_id":  item.ID,
		"mime_type": item.MimeType,
		"size":      item.Size,
	})
	return item, nil
}

func writeFile(target string, src io.Reader) (int64, error) {
	dst, err := os.Create(target)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(target)
		return 0, err
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return 0, err
	}
	return written, nil
}

func (s *MediaService) List(ctx context.Context, filter models.MediaFilter) ([]models.MediaItem, int64, error) {
	return s.mediaRepo.List(ctx, filter)
}

func (s *MediaService) GetByID(ctx context.Context, id uint) (*models.MediaItem, error) {
	return s.mediaRepo.GetByID(ctx, id)
}
