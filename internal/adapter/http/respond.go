package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/auth"
	listingdomain "github.com/hamzaamir-design/Real-state-MarketPlace/internal/listing/domain"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	userdomain "github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/domain"
	"github.com/hamzaamir-design/Real-state-MarketPlace/pkg/validator"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError translates domain errors into HTTP status codes. Partial
// upload failures are not handled here; the attach handlers build their own
// 207 payload because they also carry the updated record.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: valErr.Message,
			Field: valErr.Field,
			Rule:  valErr.Rule,
		})
		return
	}

	var capErr *media.CapacityExceeded
	if errors.As(err, &capErr) {
		respondJSON(w, http.StatusConflict, errorResponse{Error: capErr.Error()})
		return
	}

	switch {
	case errors.Is(err, listingdomain.ErrListingNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, userdomain.ErrDuplicateEmail),
		errors.Is(err, userdomain.ErrDuplicateUsername):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, media.ErrUpstreamUnavailable):
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: "asset store unavailable"})
	default:
		log.Error("unhandled error in http layer", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
