package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/whatscart/whatscart-backend/pkg/config"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
)

func TestUploadStoresImageUnderStorePrefix(t *testing.T) {
	t.Parallel()

	uploader := &stubUploader{url: "https://storage.googleapis.com/wc-media/obj"}
	svc := newTestService(t, uploader, config.MediaConfig{MaxUploadBytes: 1024})

	storeID := uuid.New()
	result, err := svc.Upload(context.Background(), storeID, "Front View.JPG", "image/jpeg", []byte("fake-image"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.URL != uploader.url {
		t.Fatalf("expected public URL passthrough, got %q", result.URL)
	}
	prefix := "stores/" + storeID.String() + "/products/"
	if !strings.HasPrefix(result.Object, prefix) {
		t.Fatalf("object %q not under store prefix %q", result.Object, prefix)
	}
	if !strings.HasSuffix(result.Object, ".jpg") {
		t.Fatalf("expected .jpg extension, got %q", result.Object)
	}
	if !strings.Contains(result.Object, "front-view") {
		t.Fatalf("expected sanitized filename hint in %q", result.Object)
	}
	if uploader.contentType != "image/jpeg" {
		t.Fatalf("expected normalized content type, got %q", uploader.contentType)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubUploader{}, config.MediaConfig{MaxUploadBytes: 8})

	_, err := svc.Upload(context.Background(), uuid.New(), "big.png", "image/png", []byte("123456789"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsNonImageContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubUploader{}, config.MediaConfig{MaxUploadBytes: 1024})

	for _, contentType := range []string{"application/pdf", "video/mp4", "text/html", ""} {
		_, err := svc.Upload(context.Background(), uuid.New(), "file", contentType, []byte("data"))
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", contentType, err)
		}
	}
}

func TestUploadAcceptsContentTypeWithParameters(t *testing.T) {
	t.Parallel()

	uploader := &stubUploader{url: "https://storage.googleapis.com/wc-media/obj"}
	svc := newTestService(t, uploader, config.MediaConfig{MaxUploadBytes: 1024})

	result, err := svc.Upload(context.Background(), uuid.New(), "p.png", "image/png; charset=binary", []byte("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.ContentType != "image/png" {
		t.Fatalf("expected stripped parameters, got %q", result.ContentType)
	}
}

func TestUploadSurfacesStorageFailures(t *testing.T) {
	t.Parallel()

	uploader := &stubUploader{err: io.ErrUnexpectedEOF}
	svc := newTestService(t, uploader, config.MediaConfig{MaxUploadBytes: 1024})

	_, err := svc.Upload(context.Background(), uuid.New(), "p.png", "image/png", []byte("data"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func newTestService(t *testing.T, uploader objectUploader, cfg config.MediaConfig) Service {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(uploader, cfg, logg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubUploader struct {
	url         string
	err         error
	object      string
	contentType string
}

func (s *stubUploader) UploadObject(_ context.Context, object string, _ []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.object = object
	s.contentType = contentType
	return s.url, nil
}
