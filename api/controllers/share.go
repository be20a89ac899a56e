package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/api/responses"
	"github.com/whatscart/whatscart-backend/api/validators"
	"github.com/whatscart/whatscart-backend/internal/share"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
)

// ShareCart exports the device's cart as an immutable snapshot and returns
// the shareable URL.
func ShareCart(svc share.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ShareCart(r.Context(), storeSlug(r), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// SharedCart resolves a snapshot by short id. No cart token needed; the link
// is the credential.
func SharedCart(svc share.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shortID, err := shareShortID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetSharedCart(r.Context(), storeSlug(r), shortID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// SharedCartReconcile reports how the snapshot holds up against live stock.
func SharedCartReconcile(svc share.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shortID, err := shareShortID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Reconcile(r.Context(), storeSlug(r), shortID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

// SharedCartAddAll imports every available snapshot line into the caller's
// own cart.
func SharedCartAddAll(svc share.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shortID, err := shareShortID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddAllAvailable(r.Context(), storeSlug(r), shortID, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func shareShortID(r *http.Request) (string, error) {
	shortID := strings.TrimSpace(chi.URLParam(r, "shortID"))
	if shortID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "share id is required")
	}
	return shortID, nil
}

func parseUUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return id, nil
}
