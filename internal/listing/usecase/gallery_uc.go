package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/listing/domain"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/pkg/validator"
)

// galleryLocks serializes gallery mutations per listing id. The capacity
// check is re-evaluated under the lock, so two concurrent batches racing for
// the last slots resolve deterministically: one wins, the other gets
// CapacityExceeded.
type galleryLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (g *galleryLocks) get(id string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.locks == nil {
		g.locks = make(map[string]*sync.Mutex)
	}
	l, ok := g.locks[id]
	if !ok {
		l = &sync.Mutex{}
		g.locks[id] = l
	}
	return l
}

// CreateWithImages uploads the gallery and creates the listing in one step.
// When creation fails after the uploads confirmed, the fresh handles are
// released again so nothing is left referenced by no record.
func (uc *ListingUsecase) CreateWithImages(ctx context.Context, callerID string, in CreateInput, files []media.File) (*domain.Listing, error) {
	if len(files) == 0 {
		return nil, validator.New("images", "required", "at least one file is required")
	}
	if err := media.CheckCapacity(0, len(files)); err != nil {
		return nil, err
	}

	handles, err := uc.coord.Attach(ctx, files)
	if err != nil {
		// with no record yet there is nothing to attach the survivors to
		if pf, ok := err.(*media.PartialFailure); ok && len(pf.Uploaded) > 0 {
			uc.coord.Detach(pf.Uploaded)
		}
		return nil, err
	}

	in.Gallery = handles
	listing, err := uc.CreateListing(ctx, callerID, in)
	if err != nil {
		uc.coord.Detach(handles)
		return nil, err
	}
	return listing, nil
}

// AttachImages uploads a batch and appends the confirmed handles to the
// listing gallery, in caller order. The whole batch is rejected with
// CapacityExceeded when it would not fit; nothing is truncated. When some
// uploads fail, the confirmed handles are still attached and the returned
// error is the coordinator's *media.PartialFailure, so the caller can retry
// just the failed files; the returned listing reflects what was attached.
func (uc *ListingUsecase) AttachImages(ctx context.Context, callerID, id string, files []media.File) (*domain.Listing, error) {
	if len(files) == 0 {
		return nil, validator.New("images", "required", "at least one file is required")
	}

	lock := uc.galleries.get(id)
	lock.Lock()
	defer lock.Unlock()

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(callerID, listing.OwnerID); err != nil {
		return nil, err
	}
	if err := media.CheckCapacity(len(listing.Gallery), len(files)); err != nil {
		uc.logger.Warn("attach rejected: gallery capacity",
			zap.String("listing_id", id),
			zap.Int("current", len(listing.Gallery)),
			zap.Int("requested", len(files)))
		return nil, err
	}

	handles, attachErr := uc.coord.Attach(ctx, files)
	if attachErr != nil {
		pf, ok := attachErr.(*media.PartialFailure)
		if !ok || len(pf.Uploaded) == 0 {
			return nil, attachErr
		}
		handles = pf.Uploaded
	}

	listing.Gallery = append(listing.Gallery, handles...)
	listing.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("failed to persist gallery", zap.String("listing_id", id), zap.Error(err))
		// the handles are confirmed remotely but unreferenced locally now
		uc.coord.Detach(handles)
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, "listing.updated", listing)
	return listing, attachErr
}

// RemoveImage detaches one gallery slot by index. The record-level reference
// is removed first; remote deletion is scheduled afterwards and never blocks.
// A gallery may not drop below one image.
func (uc *ListingUsecase) RemoveImage(ctx context.Context, callerID, id string, index int) (*domain.Listing, error) {
	lock := uc.galleries.get(id)
	lock.Lock()
	defer lock.Unlock()

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(callerID, listing.OwnerID); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(listing.Gallery) {
		return nil, validator.New("index", "range", "image index is out of range")
	}
	if len(listing.Gallery) == 1 {
		return nil, validator.New("gallery", "min", "listing requires at least one image")
	}

	removed := listing.Gallery[index]
	listing.Gallery = append(listing.Gallery[:index:index], listing.Gallery[index+1:]...)
	listing.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("failed to persist gallery", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.coord.Detach([]media.AssetHandle{removed})
	uc.publish(ctx, "listing.updated", listing)
	return listing, nil
}
