package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/auth"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/domain"
)

// MediaCoordinator is the slice of the media coordinator this service needs.
type MediaCoordinator interface {
	Attach(ctx context.Context, files []media.File) ([]media.AssetHandle, error)
	Detach(handles []media.AssetHandle)
}

// EventPublisher emits account lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// UserUsecase implements the profile lifecycle. A user record has no
// separate owner field: the subject is the owner, so every mutation requires
// callerID == targetID, checked after existence.
type UserUsecase struct {
	repo      domain.UserRepository
	guard     *auth.Guard
	coord     MediaCoordinator
	publisher EventPublisher
	logger    *logger.Logger
}

func NewUserUsecase(
	repo domain.UserRepository,
	guard *auth.Guard,
	coord MediaCoordinator,
	publisher EventPublisher,
	log *logger.Logger,
) *UserUsecase {
	return &UserUsecase{
		repo:      repo,
		guard:     guard,
		coord:     coord,
		publisher: publisher,
		logger:    log.Named("UserUsecase"),
	}
}

// GetProfile returns the caller's own outward-facing profile.
func (uc *UserUsecase) GetProfile(ctx context.Context, callerID, id string) (*domain.Profile, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(callerID, user.ID); err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateProfile merges a partial update into the stored record. Omitted
// fields stay untouched; the password is re-hashed if and only if a new
// plaintext password was supplied.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, callerID, id string, in domain.UpdateInput) (*domain.Profile, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(callerID, user.ID); err != nil {
		uc.logger.Warn("profile update forbidden",
			zap.String("user_id", id), zap.String("caller_id", callerID))
		return nil, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			uc.logger.Error("failed to hash password", zap.String("user_id", id), zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		uc.logger.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, "user.updated", user.Profile())
	profile := user.Profile()
	return &profile, nil
}

// ChangeAvatar uploads the replacement first and persists it; only after the
// new avatar is confirmed stored is the previous one scheduled for remote
// deletion. The reverse order would risk a window with no avatar at all when
// the upload or the write fails.
func (uc *UserUsecase) ChangeAvatar(ctx context.Context, callerID, id string, file media.File) (*domain.Profile, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(callerID, user.ID); err != nil {
		return nil, err
	}

	handles, err := uc.coord.Attach(ctx, []media.File{file})
	if err != nil {
		return nil, err
	}
	newAvatar := handles[0]

	previous := user.Avatar
	user.Avatar = &newAvatar
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		uc.logger.Error("failed to persist avatar", zap.String("user_id", id), zap.Error(err))
		// the upload is confirmed but unreferenced; clean it up, keep the old avatar
		uc.coord.Detach([]media.AssetHandle{newAvatar})
		return nil, err
	}

	if previous != nil {
		uc.coord.Detach([]media.AssetHandle{*previous})
	}
	uc.publish(ctx, "user.updated", user.Profile())

	profile := user.Profile()
	return &profile, nil
}

// DeleteAccount removes the record; the avatar asset is released best-effort
// afterwards and never blocks the deletion.
func (uc *UserUsecase) DeleteAccount(ctx context.Context, callerID, id string) error {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.guard.Authorize(callerID, user.ID); err != nil {
		uc.logger.Warn("account deletion forbidden",
			zap.String("user_id", id), zap.String("caller_id", callerID))
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete user", zap.String("user_id", id), zap.Error(err))
		return err
	}

	if user.Avatar != nil {
		uc.coord.Detach([]media.AssetHandle{*user.Avatar})
	}
	uc.publish(ctx, "user.deleted", user.Profile())

	uc.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

func (uc *UserUsecase) publish(ctx context.Context, subject string, data interface{}) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
