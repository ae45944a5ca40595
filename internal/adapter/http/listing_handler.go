package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/listing/domain"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/listing/usecase"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
)

// ListingHandler serves the listing lifecycle endpoints.
type ListingHandler struct {
	uc     *usecase.ListingUsecase
	logger *logger.Logger
}

func NewListingHandler(uc *usecase.ListingUsecase, log *logger.Logger) *ListingHandler {
	return &ListingHandler{uc: uc, logger: log.Named("ListingHandler")}
}

type createListingRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	Type          string  `json:"type"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	RegularPrice  float64 `json:"regularPrice"`
	DiscountPrice float64 `json:"discountPrice"`
	Offer         bool    `json:"offer"`
	Parking       bool    `json:"parking"`
	Furnished     bool    `json:"furnished"`
}

type updateListingRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Address       *string  `json:"address"`
	Type          *string  `json:"type"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	RegularPrice  *float64 `json:"regularPrice"`
	DiscountPrice *float64 `json:"discountPrice"`
	Offer         *bool    `json:"offer"`
	Parking       *bool    `json:"parking"`
	Furnished     *bool    `json:"furnished"`
}

type failedUpload struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func failedUploads(pf *media.PartialFailure) []failedUpload {
	failed := make([]failedUpload, 0, len(pf.Failed))
	for _, f := range pf.Failed {
		failed = append(failed, failedUpload{Name: f.Name, Error: f.Err.Error()})
	}
	return failed
}

// HandleCreate accepts multipart form data: a "data" part holding the
// listing fields as JSON and one or more "images" file parts.
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	files, err := formFiles(r, "images")
	if err != nil {
		h.logger.Error("invalid multipart body", zap.Error(err))
		http.Error(w, "invalid multipart body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var req createListingRequest
	if err := json.Unmarshal([]byte(r.FormValue("data")), &req); err != nil {
		http.Error(w, "invalid data part: "+err.Error(), http.StatusBadRequest)
		return
	}

	in := usecase.CreateInput{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Type:          domain.TransactionType(req.Type),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Offer:         req.Offer,
		Parking:       req.Parking,
		Furnished:     req.Furnished,
	}

	listing, err := h.uc.CreateWithImages(r.Context(), CallerID(r.Context()), in, files)
	if err != nil {
		var pf *media.PartialFailure
		if errors.As(err, &pf) {
			respondJSON(w, http.StatusMultiStatus, map[string]interface{}{
				"error":  pf.Error(),
				"failed": failedUploads(pf),
			})
			return
		}
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	listing, err := h.uc.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

// HandleListOwn returns the authenticated caller's listings.
func (h *ListingHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	listings, err := h.uc.GetListingsByOwner(r.Context(), CallerID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	in := domain.UpdateInput{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Offer:         req.Offer,
		Parking:       req.Parking,
		Furnished:     req.Furnished,
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		in.Type = &t
	}

	listing, err := h.uc.UpdateListing(r.Context(), CallerID(r.Context()), id, in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteListing(r.Context(), CallerID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAttachImages appends uploaded images to the gallery. When some
// uploads fail the response is 207 with the updated listing and the failed
// file names, so the client retries only those.
func (h *ListingHandler) HandleAttachImages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	files, err := formFiles(r, "images")
	if err != nil {
		h.logger.Error("invalid multipart body", zap.String("listing_id", id), zap.Error(err))
		http.Error(w, "invalid multipart body: "+err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := h.uc.AttachImages(r.Context(), CallerID(r.Context()), id, files)
	if err != nil {
		var pf *media.PartialFailure
		if errors.As(err, &pf) {
			body := map[string]interface{}{
				"error":  pf.Error(),
				"failed": failedUploads(pf),
			}
			if listing != nil {
				body["listing"] = listing
			}
			respondJSON(w, http.StatusMultiStatus, body)
			return
		}
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) HandleRemoveImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "image index must be an integer", http.StatusBadRequest)
		return
	}

	listing, err := h.uc.RemoveImage(r.Context(), CallerID(r.Context()), id, index)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}
