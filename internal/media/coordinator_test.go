package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
)

type MockAssetStore struct{ mock.Mock }

func (m *MockAssetStore) Upload(ctx context.Context, file File) (AssetHandle, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(AssetHandle), args.Error(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, deleteKey string) error {
	args := m.Called(ctx, deleteKey)
	return args.Error(0)
}

func TestCoordinator_Attach_AllSucceed(t *testing.T) {
	store := new(MockAssetStore)
	coord := NewCoordinator(store, logger.NewNop(), nil)
	ctx := context.Background()

	files := []File{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
		{Name: "c.jpg", ContentType: "image/jpeg", Data: []byte("c")},
	}
	for _, f := range files {
		store.On("Upload", ctx, f).
			Return(AssetHandle{URL: "https://cdn/" + f.Name, DeleteKey: "key-" + f.Name}, nil).Once()
	}

	handles, err := coord.Attach(ctx, files)

	assert.NoError(t, err)
	assert.Len(t, handles, 3)
	// handles come back in submission order even though uploads ran concurrently
	assert.Equal(t, "https://cdn/a.jpg", handles[0].URL)
	assert.Equal(t, "https://cdn/b.jpg", handles[1].URL)
	assert.Equal(t, "https://cdn/c.jpg", handles[2].URL)
	store.AssertExpectations(t)
}

func TestCoordinator_Attach_PartialFailure(t *testing.T) {
	store := new(MockAssetStore)
	coord := NewCoordinator(store, logger.NewNop(), nil)
	ctx := context.Background()

	good1 := File{Name: "a.jpg", Data: []byte("a")}
	bad := File{Name: "b.jpg", Data: []byte("b")}
	good2 := File{Name: "c.jpg", Data: []byte("c")}

	store.On("Upload", ctx, good1).Return(AssetHandle{URL: "https://cdn/a.jpg", DeleteKey: "a"}, nil).Once()
	store.On("Upload", ctx, bad).Return(AssetHandle{}, errors.New("connection reset")).Once()
	store.On("Upload", ctx, good2).Return(AssetHandle{URL: "https://cdn/c.jpg", DeleteKey: "c"}, nil).Once()

	handles, err := coord.Attach(ctx, []File{good1, bad, good2})

	assert.Nil(t, handles)
	var pf *PartialFailure
	assert.ErrorAs(t, err, &pf)
	assert.Len(t, pf.Uploaded, 2)
	assert.Equal(t, "https://cdn/a.jpg", pf.Uploaded[0].URL)
	assert.Equal(t, "https://cdn/c.jpg", pf.Uploaded[1].URL)
	assert.Len(t, pf.Failed, 1)
	assert.Equal(t, "b.jpg", pf.Failed[0].Name)
	store.AssertExpectations(t)
}

func TestCoordinator_Attach_EmptyBatch(t *testing.T) {
	store := new(MockAssetStore)
	coord := NewCoordinator(store, logger.NewNop(), nil)

	handles, err := coord.Attach(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, handles)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCoordinator_Detach_FailureBecomesOrphanNotError(t *testing.T) {
	store := new(MockAssetStore)
	coord := NewCoordinator(store, logger.NewNop(), nil)

	store.On("Delete", mock.Anything, "key-ok").Return(nil).Once()
	store.On("Delete", mock.Anything, "key-broken").Return(errors.New("remote gone")).Once()

	// Detach returns immediately; failures are logged, never surfaced.
	coord.Detach([]AssetHandle{
		{URL: "https://cdn/ok.jpg", DeleteKey: "key-ok"},
		{URL: "https://cdn/broken.jpg", DeleteKey: "key-broken"},
	})
	coord.Drain()

	store.AssertExpectations(t)
}

func TestCoordinator_Detach_SkipsHandlesWithoutDeleteKey(t *testing.T) {
	store := new(MockAssetStore)
	coord := NewCoordinator(store, logger.NewNop(), nil)

	coord.Detach([]AssetHandle{{URL: "https://elsewhere/x.jpg"}})
	coord.Drain()

	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCheckCapacity(t *testing.T) {
	assert.NoError(t, CheckCapacity(0, MaxGallerySize))
	assert.NoError(t, CheckCapacity(6, 1))

	err := CheckCapacity(5, 3)
	var capErr *CapacityExceeded
	assert.ErrorAs(t, err, &capErr)
	assert.Equal(t, 3, capErr.Requested)
	assert.Equal(t, 2, capErr.Remaining)
}
