package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"

	"imacms/api/internal/config"
	"imacms/api/internal/ids"
	"imacms/api/internal/media/sniffer"
	"imacms/api/internal/models"
	"imacms/api/internal/storage"
	"imacms/api/internal/store"
)

var ErrUnsupportedMedia = errors.New("unsupported media type")

// MediaService stores admin image uploads in the object store and records
// their metadata so the admin UI can reference hosted URLs.
type MediaService struct {
	uploads store.Collection[models.Upload]
	objects *storage.ObjectStore
	cfg     *config.AppConfig
	log     zerolog.Logger
}

func NewMediaService(
	uploads store.Collection[models.Upload],
	objects *storage.ObjectStore,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *MediaService {
	return &MediaService{uploads: uploads, objects: objects, cfg: cfg, log: log}
}

func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (models.Upload, error) {
	if file == nil || header == nil {
		return models.Upload{}, errors.New("invalid file payload")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return models.Upload{}, errors.New("empty file")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return models.Upload{}, ErrUnsupportedMedia
	}

	uploadID := ids.New()
	objectKey := buildObjectKey(uploadID, string(result.Type))
	bucket := s.cfg.Storage.BucketMedia

	_, err = s.objects.Client().PutObject(ctx, bucket, objectKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: result.MIME})
	if err != nil {
		return models.Upload{}, fmt.Errorf("put object: %w", err)
	}

	upload := models.Upload{
		ID:        uploadID,
		Bucket:    bucket,
		ObjectKey: objectKey,
		Format:    string(result.Type),
		SizeBytes: int64(len(data)),
		URL:       s.objects.PublicURL(bucket, objectKey),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.uploads.Insert(ctx, upload); err != nil {
		return models.Upload{}, fmt.Errorf("save upload metadata: %w", err)
	}

	return upload, nil
}

func buildObjectKey(uploadID string, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", uploadID, ext))
}
