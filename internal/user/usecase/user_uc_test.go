package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/auth"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/domain"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMediaCoordinator struct{ mock.Mock }

func (m *MockMediaCoordinator) Attach(ctx context.Context, files []media.File) ([]media.AssetHandle, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]media.AssetHandle), args.Error(1)
}
func (m *MockMediaCoordinator) Detach(handles []media.AssetHandle) {
	m.Called(handles)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func storedUser() *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("original-password"), bcrypt.MinCost)
	return &domain.User{
		ID:           "user-1",
		Username:     "marta",
		Email:        "marta@example.com",
		PasswordHash: string(hash),
		Avatar:       &media.AssetHandle{URL: "https://cdn/old-avatar.jpg", DeleteKey: "old-avatar"},
	}
}

func newTestUsecase(repo *MockUserRepository, coord *MockMediaCoordinator, pub *MockEventPublisher) *UserUsecase {
	// Avoid typed-nil interfaces: a nil *Mock wrapped in an interface is not
	// equal to nil, which would defeat the usecase's nil guards.
	var c MediaCoordinator
	if coord != nil {
		c = coord
	}
	var p EventPublisher
	if pub != nil {
		p = pub
	}
	return NewUserUsecase(repo, auth.NewGuard(), c, p, logger.NewNop())
}

func TestUserUsecase_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerSeesProfileWithoutSecrets", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		user := storedUser()
		repo.On("FindByID", ctx, "user-1").Return(user, nil).Once()

		profile, err := uc.GetProfile(ctx, "user-1", "user-1")

		assert.NoError(t, err)
		assert.Equal(t, user.Username, profile.Username)
		assert.Equal(t, user.Email, profile.Email)
		assert.Equal(t, "https://cdn/old-avatar.jpg", profile.AvatarURL)
	})

	t.Run("OtherCallerForbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		repo.On("FindByID", ctx, "user-1").Return(storedUser(), nil).Once()

		_, err := uc.GetProfile(ctx, "user-2", "user-1")

		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("MissingUserBeforeOwnership", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		repo.On("FindByID", ctx, "ghost").Return(nil, domain.ErrUserNotFound).Once()

		_, err := uc.GetProfile(ctx, "user-2", "ghost")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.NotErrorIs(t, err, auth.ErrForbidden)
	})
}

func TestUserUsecase_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("OmittedFieldsStayUntouched", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		user := storedUser()
		originalHash := user.PasswordHash
		repo.On("FindByID", ctx, "user-1").Return(user, nil).Once()

		var persisted *domain.User
		repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { persisted = args.Get(1).(*domain.User) }).
			Return(nil).Once()

		email := "marta@new.example.com"
		profile, err := uc.UpdateProfile(ctx, "user-1", "user-1", domain.UpdateInput{Email: &email})

		assert.NoError(t, err)
		assert.Equal(t, "marta", profile.Username)
		assert.Equal(t, email, profile.Email)
		// no password supplied, so the stored hash is byte-identical
		assert.Equal(t, originalHash, persisted.PasswordHash)
	})

	t.Run("PasswordRehashedOnlyWhenSupplied", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		user := storedUser()
		originalHash := user.PasswordHash
		repo.On("FindByID", ctx, "user-1").Return(user, nil).Once()

		var persisted *domain.User
		repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { persisted = args.Get(1).(*domain.User) }).
			Return(nil).Once()

		password := "brand-new-password"
		_, err := uc.UpdateProfile(ctx, "user-1", "user-1", domain.UpdateInput{Password: &password})

		assert.NoError(t, err)
		assert.NotEqual(t, originalHash, persisted.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte(password)))
	})

	t.Run("InvalidEmailRejectedBeforePersist", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		repo.On("FindByID", ctx, "user-1").Return(storedUser(), nil).Once()

		email := "not-an-address"
		_, err := uc.UpdateProfile(ctx, "user-1", "user-1", domain.UpdateInput{Email: &email})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmailSurfaced", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		repo.On("FindByID", ctx, "user-1").Return(storedUser(), nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail).Once()

		email := "taken@example.com"
		_, err := uc.UpdateProfile(ctx, "user-1", "user-1", domain.UpdateInput{Email: &email})

		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		repo.On("FindByID", ctx, "user-1").Return(storedUser(), nil).Once()

		name := "intruder"
		_, err := uc.UpdateProfile(ctx, "user-2", "user-1", domain.UpdateInput{Username: &name})

		assert.ErrorIs(t, err, auth.ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserUsecase_ChangeAvatar(t *testing.T) {
	ctx := context.Background()
	file := media.File{Name: "new-avatar.jpg", Data: []byte("img")}
	newHandle := media.AssetHandle{URL: "https://cdn/new-avatar.jpg", DeleteKey: "new-avatar"}

	t.Run("OldAvatarReleasedOnlyAfterNewOnePersisted", func(t *testing.T) {
		repo := new(MockUserRepository)
		coord := new(MockMediaCoordinator)
		uc := newTestUsecase(repo, coord, nil)

		user := storedUser()
		oldAvatar := *user.Avatar
		repo.On("FindByID", ctx, "user-1").Return(user, nil).Once()
		coord.On("Attach", ctx, []media.File{file}).Return([]media.AssetHandle{newHandle}, nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		coord.On("Detach", []media.AssetHandle{oldAvatar}).Once()

		profile, err := uc.ChangeAvatar(ctx, "user-1", "user-1", file)

		assert.NoError(t, err)
		assert.Equal(t, newHandle.URL, profile.AvatarURL)
		coord.AssertExpectations(t)
	})

	t.Run("PersistFailureKeepsOldAvatarAndReleasesNew", func(t *testing.T) {
		repo := new(MockUserRepository)
		coord := new(MockMediaCoordinator)
		uc := newTestUsecase(repo, coord, nil)

		user := storedUser()
		oldAvatar := *user.Avatar
		repo.On("FindByID", ctx, "user-1").Return(user, nil).Once()
		coord.On("Attach", ctx, []media.File{file}).Return([]media.AssetHandle{newHandle}, nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(errors.New("write failed")).Once()
		coord.On("Detach", []media.AssetHandle{newHandle}).Once()

		_, err := uc.ChangeAvatar(ctx, "user-1", "user-1", file)

		assert.Error(t, err)
		coord.AssertExpectations(t)
		coord.AssertNotCalled(t, "Detach", []media.AssetHandle{oldAvatar})
	})

	t.Run("UploadFailureLeavesEverythingAlone", func(t *testing.T) {
		repo := new(MockUserRepository)
		coord := new(MockMediaCoordinator)
		uc := newTestUsecase(repo, coord, nil)

		repo.On("FindByID", ctx, "user-1").Return(storedUser(), nil).Once()
		coord.On("Attach", ctx, []media.File{file}).Return(nil, media.ErrUpstreamUnavailable).Once()

		_, err := uc.ChangeAvatar(ctx, "user-1", "user-1", file)

		assert.ErrorIs(t, err, media.ErrUpstreamUnavailable)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		coord.AssertNotCalled(t, "Detach", mock.Anything)
	})
}

func TestUserUsecase_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("DeletesRecordThenReleasesAvatar", func(t *testing.T) {
		repo := new(MockUserRepository)
		coord := new(MockMediaCoordinator)
		pub := new(MockEventPublisher)
		uc := newTestUsecase(repo, coord, pub)

		user := storedUser()
		repo.On("FindByID", ctx, "user-1").Return(user, nil).Once()
		repo.On("Delete", ctx, "user-1").Return(nil).Once()
		coord.On("Detach", []media.AssetHandle{*user.Avatar}).Once()
		pub.On("Publish", ctx, "user.deleted", mock.Anything).Return(nil).Once()

		err := uc.DeleteAccount(ctx, "user-1", "user-1")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		coord.AssertExpectations(t)
	})

	t.Run("NoAvatarNothingToRelease", func(t *testing.T) {
		repo := new(MockUserRepository)
		coord := new(MockMediaCoordinator)
		uc := newTestUsecase(repo, coord, nil)

		user := storedUser()
		user.Avatar = nil
		repo.On("FindByID", ctx, "user-1").Return(user, nil).Once()
		repo.On("Delete", ctx, "user-1").Return(nil).Once()

		err := uc.DeleteAccount(ctx, "user-1", "user-1")

		assert.NoError(t, err)
		coord.AssertNotCalled(t, "Detach", mock.Anything)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		repo := new(MockUserRepository)
		uc := newTestUsecase(repo, nil, nil)

		repo.On("FindByID", ctx, "user-1").Return(storedUser(), nil).Once()

		err := uc.DeleteAccount(ctx, "user-2", "user-1")

		assert.ErrorIs(t, err, auth.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
