package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/domain"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/usecase"
)

// UserHandler serves the profile lifecycle endpoints.
type UserHandler struct {
	uc     *usecase.UserUsecase
	logger *logger.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: log.Named("UserHandler")}
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.uc.GetProfile(r.Context(), CallerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.uc.UpdateProfile(r.Context(), CallerID(r.Context()), id, domain.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleChangeAvatar replaces the avatar with the single "avatar" file part.
func (h *UserHandler) HandleChangeAvatar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	files, err := formFiles(r, "avatar")
	if err != nil {
		h.logger.Error("invalid multipart body", zap.String("user_id", id), zap.Error(err))
		http.Error(w, "invalid multipart body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(files) != 1 {
		http.Error(w, "exactly one avatar file is required", http.StatusBadRequest)
		return
	}

	profile, err := h.uc.ChangeAvatar(r.Context(), CallerID(r.Context()), id, files[0])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAccount(r.Context(), CallerID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
