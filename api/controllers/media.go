package controllers

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/api/middleware"
	"github.com/whatscart/whatscart-backend/api/responses"
	"github.com/whatscart/whatscart-backend/internal/media"
	"github.com/whatscart/whatscart-backend/pkg/config"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
)

const mediaFormField = "file"

// MediaUpload accepts a multipart image upload for the seller's store and
// returns the public URL to reference from product records.
func MediaUpload(svc media.Service, cfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := sellerFromContext(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// One extra byte so an at-limit file parses and an over-limit one fails.
		limit := cfg.MaxUploadBytes
		if limit <= 0 {
			limit = 5 << 20
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit*2)

		if err := r.ParseMultipartForm(limit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart request"))
			return
		}

		file, header, err := r.FormFile(mediaFormField)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload"))
			return
		}

		result, err := svc.Upload(r.Context(), storeID, header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func storeFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.StoreIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid store id")
	}
	return id, nil
}
