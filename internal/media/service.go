package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/pkg/config"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
)

// Accepted image content types for product media.
var allowedContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type objectUploader interface {
	UploadObject(ctx context.Context, object string, data []byte, contentType string) (string, error)
}

// UploadResultDTO reports where an uploaded asset is served from.
type UploadResultDTO struct {
	URL         string `json:"url"`
	Object      string `json:"object"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Service stores seller-uploaded product imagery.
type Service interface {
	Upload(ctx context.Context, storeID uuid.UUID, filename, contentType string, data []byte) (*UploadResultDTO, error)
}

type service struct {
	uploader objectUploader
	cfg      config.MediaConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the media service to an object store.
func NewService(uploader objectUploader, cfg config.MediaConfig, logg *logger.Logger) (Service, error) {
	if uploader == nil {
		return nil, fmt.Errorf("object uploader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{uploader: uploader, cfg: cfg, logg: logg, now: time.Now}, nil
}

// Upload validates size and content type, then writes the object under the
// store's prefix. Filenames are regenerated so uploads never collide.
func (s *service) Upload(ctx context.Context, storeID uuid.UUID, filename, contentType string, data []byte) (*UploadResultDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte upload limit", s.cfg.MaxUploadBytes))
	}

	contentType = normalizeContentType(contentType)
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only png, jpeg, webp and gif images are accepted")
	}

	object := s.objectKey(storeID, filename, ext)
	url, err := s.uploader.UploadObject(ctx, object, data, contentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload object")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"object":     object,
		"size_bytes": len(data),
	}), "media uploaded")

	return &UploadResultDTO{
		URL:         url,
		Object:      object,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}, nil
}

// objectKey builds stores/<id>/products/<date>-<uuid><ext>. The original
// filename only contributes a sanitized hint for debugging in the console.
func (s *service) objectKey(storeID uuid.UUID, filename, ext string) string {
	hint := sanitizeHint(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	stamp := s.now().UTC().Format("20060102")
	name := fmt.Sprintf("%s-%s%s", stamp, uuid.NewString(), ext)
	if hint != "" {
		name = fmt.Sprintf("%s-%s-%s%s", stamp, hint, uuid.NewString(), ext)
	}
	return fmt.Sprintf("stores/%s/products/%s", storeID, name)
}

func normalizeContentType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if contentType == "image/jpg" {
		return "image/jpeg"
	}
	return contentType
}

func sanitizeHint(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ':
			b.WriteRune('-')
		}
	}
	hint := strings.Trim(b.String(), "-")
	if len(hint) > 40 {
		hint = hint[:40]
	}
	return hint
}
