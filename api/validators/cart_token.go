package validators

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
)

// CartTokenHeader carries the anonymous, device-generated cart identity.
const CartTokenHeader = "X-Cart-Token"

// CartToken extracts and validates the cart token header. Every anonymous
// cart route requires one; callers without a token cannot be assigned one
// server-side because the token doubles as the device identity.
func CartToken(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(CartTokenHeader))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "X-Cart-Token header is required")
	}
	token, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "X-Cart-Token must be a valid uuid")
	}
	return token, nil
}
