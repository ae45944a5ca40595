package domain

import "context"

// ListingRepository is the persistence port for listings. Update applies a
// partial merge; the repository stores the already-merged record handed to
// it and never invents field values.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*Listing, error)
}

// ListingCache is a read-through cache keyed by listing id. Entries are
// invalidated on every successful mutation; cached state is never treated as
// authoritative for writes.
type ListingCache interface {
	Get(ctx context.Context, id string) (*Listing, error)
	Set(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher emits lifecycle events for other services.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}
