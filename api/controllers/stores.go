package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/api/middleware"
	"github.com/whatscart/whatscart-backend/api/responses"
	"github.com/whatscart/whatscart-backend/api/validators"
	"github.com/whatscart/whatscart-backend/internal/stores"
	"github.com/whatscart/whatscart-backend/pkg/enums"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
)

// StoreProfile returns the authenticated seller's storefront.
func StoreProfile(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetMine(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type storeCreateRequest struct {
	Name           string  `json:"name" validate:"required,min=1"`
	Slug           string  `json:"slug,omitempty"`
	WhatsAppNumber string  `json:"whatsapp_number" validate:"required"`
	ThemeColor     *string `json:"theme_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	Description    *string `json:"description,omitempty"`
	Category       string  `json:"category" validate:"required"`
}

// StoreCreate opens a storefront for a seller who registered without one.
func StoreCreate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req storeCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseBusinessCategory(req.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		profile, err := svc.Create(r.Context(), sellerID, stores.CreateStoreInput{
			Name:           req.Name,
			Slug:           req.Slug,
			WhatsAppNumber: req.WhatsAppNumber,
			ThemeColor:     req.ThemeColor,
			LogoURL:        req.LogoURL,
			Description:    req.Description,
			Category:       category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

type storeUpdateRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1"`
	WhatsAppNumber *string `json:"whatsapp_number,omitempty"`
	ThemeColor     *string `json:"theme_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	Description    *string `json:"description,omitempty"`
	Category       *string `json:"category,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// StoreUpdate adjusts the mutable storefront fields. The slug is fixed for
// life so shared links never break.
func StoreUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req storeUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := stores.UpdateStoreInput{
			Name:           req.Name,
			WhatsAppNumber: req.WhatsAppNumber,
			ThemeColor:     req.ThemeColor,
			LogoURL:        req.LogoURL,
			Description:    req.Description,
			IsActive:       req.IsActive,
		}
		if req.Category != nil {
			category, err := enums.ParseBusinessCategory(*req.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Category = &category
		}

		profile, err := svc.Update(r.Context(), sellerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// PublicStore resolves an active storefront by slug for buyers.
func PublicStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := storeSlug(r)
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "store slug is required"))
			return
		}

		profile, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

func sellerFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.SellerIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid seller id")
	}
	return id, nil
}

func storeSlug(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(chi.URLParam(r, "slug")))
}
