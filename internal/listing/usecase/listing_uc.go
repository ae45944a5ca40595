package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/auth"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/listing/domain"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/metrics"
)

// MediaCoordinator is the slice of the media coordinator this service needs.
type MediaCoordinator interface {
	Attach(ctx context.Context, files []media.File) ([]media.AssetHandle, error)
	Detach(handles []media.AssetHandle)
}

// Mailer sends the listing-created notification. Best effort only.
type Mailer interface {
	SendListingCreatedEmail(toEmail, listingName string) error
}

// EmailDirectory resolves a user id to an email address for notifications.
type EmailDirectory interface {
	GetEmailByID(ctx context.Context, userID string) (string, error)
}

// ListingUsecase implements the listing lifecycle: create, read, update,
// delete and the gallery attach/detach flows. Every mutating operation takes
// the caller identity explicitly and checks existence before ownership, so a
// non-owner probing a missing id and a non-owner probing a real one get
// distinguishable outcomes without leaking data.
type ListingUsecase struct {
	repo      domain.ListingRepository
	cache     domain.ListingCache
	guard     *auth.Guard
	coord     MediaCoordinator
	publisher domain.EventPublisher
	mailer    Mailer
	emails    EmailDirectory
	metrics   *metrics.MetricsManager
	logger    *logger.Logger

	galleries galleryLocks
}

// NewListingUsecase wires the listing lifecycle service. cache, publisher,
// mailer, emails and m may be nil; the service degrades gracefully without
// them.
func NewListingUsecase(
	repo domain.ListingRepository,
	cache domain.ListingCache,
	guard *auth.Guard,
	coord MediaCoordinator,
	publisher domain.EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		cache:     cache,
		guard:     guard,
		coord:     coord,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("ListingUsecase"),
	}
}

// WithMailer enables the best-effort listing-created email.
func (uc *ListingUsecase) WithMailer(mailer Mailer, emails EmailDirectory) *ListingUsecase {
	uc.mailer = mailer
	uc.emails = emails
	return uc
}

// CreateInput carries the full set of fields for a new listing. Gallery
// holds handles already confirmed by the media coordinator.
type CreateInput struct {
	Name          string
	Description   string
	Address       string
	Type          domain.TransactionType
	Bedrooms      int
	Bathrooms     int
	RegularPrice  float64
	DiscountPrice float64
	Offer         bool
	Parking       bool
	Furnished     bool
	Gallery       []media.AssetHandle
}

// CreateListing persists a new listing owned by the caller. Creation needs
// no ownership check beyond authentication: there is no prior owner.
func (uc *ListingUsecase) CreateListing(ctx context.Context, callerID string, in CreateInput) (*domain.Listing, error) {
	listing := &domain.Listing{
		OwnerID:       callerID,
		Name:          in.Name,
		Description:   in.Description,
		Address:       in.Address,
		Type:          in.Type,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		RegularPrice:  in.RegularPrice,
		DiscountPrice: in.DiscountPrice,
		Offer:         in.Offer,
		Parking:       in.Parking,
		Furnished:     in.Furnished,
		Gallery:       in.Gallery,
	}
	if !listing.Offer {
		// the client always submits the field; without an offer it carries no meaning
		listing.DiscountPrice = 0
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("failed to create listing", zap.String("owner_id", callerID), zap.Error(err))
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.ListingsCreated.Inc()
	}
	uc.publish(ctx, "listing.created", listing)
	uc.notifyCreated(ctx, listing)

	uc.logger.Info("listing created", zap.String("listing_id", listing.ID), zap.String("owner_id", callerID))
	return listing, nil
}

// GetListing is a public read with a read-through cache.
func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, listing); err != nil {
			uc.logger.Warn("failed to cache listing", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

// GetListingsByOwner returns all listings owned by a user.
func (uc *ListingUsecase) GetListingsByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	return uc.repo.FindByOwnerID(ctx, ownerID)
}

// UpdateListing merges the partial input into the stored record, re-validates
// the merged state as a whole and persists it. Existence is checked before
// ownership.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, callerID, id string, in domain.UpdateInput) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(callerID, listing.OwnerID); err != nil {
		uc.logger.Warn("update forbidden",
			zap.String("listing_id", id),
			zap.String("caller_id", callerID),
			zap.String("owner_id", listing.OwnerID))
		return nil, err
	}

	merged := in.ApplyTo(*listing)
	if !merged.Offer {
		merged.DiscountPrice = 0
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	merged.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, &merged); err != nil {
		uc.logger.Error("failed to update listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, "listing.updated", &merged)
	return &merged, nil
}

// DeleteListing removes the record and schedules best-effort remote cleanup
// of its gallery. Record deletion is authoritative: a failing remote cleanup
// never blocks or undoes it.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, callerID, id string) error {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.guard.Authorize(callerID, listing.OwnerID); err != nil {
		uc.logger.Warn("delete forbidden",
			zap.String("listing_id", id),
			zap.String("caller_id", callerID),
			zap.String("owner_id", listing.OwnerID))
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return err
	}

	uc.invalidate(ctx, id)
	uc.coord.Detach(listing.Gallery)
	if uc.metrics != nil {
		uc.metrics.ListingsDeleted.Inc()
	}
	uc.publish(ctx, "listing.deleted", listing)

	uc.logger.Info("listing deleted", zap.String("listing_id", id), zap.String("owner_id", callerID))
	return nil
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.logger.Warn("failed to invalidate listing cache", zap.String("listing_id", id), zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, listing *domain.Listing) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, listing); err != nil {
		uc.logger.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

func (uc *ListingUsecase) notifyCreated(ctx context.Context, listing *domain.Listing) {
	if uc.mailer == nil || uc.emails == nil {
		return
	}
	email, err := uc.emails.GetEmailByID(ctx, listing.OwnerID)
	if err != nil {
		uc.logger.Warn("could not resolve owner email for notification",
			zap.String("owner_id", listing.OwnerID), zap.Error(err))
		return
	}
	go func() {
		if err := uc.mailer.SendListingCreatedEmail(email, listing.Name); err != nil {
			uc.logger.Warn("failed to send listing-created email", zap.Error(err))
		}
	}()
}
