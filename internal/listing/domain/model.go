package domain

import (
	"time"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/pkg/validator"
)

type TransactionType string

const (
	TypeSale TransactionType = "sale"
	TypeRent TransactionType = "rent"
)

// Listing is a property record owned by exactly one user. The gallery is an
// ordered sequence of asset handles; the first entry is the cover image and
// order is caller-controlled.
type Listing struct {
	ID            string              `json:"id"`
	OwnerID       string              `json:"ownerId"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Address       string              `json:"address"`
	Type          TransactionType     `json:"type"`
	Bedrooms      int                 `json:"bedrooms"`
	Bathrooms     int                 `json:"bathrooms"`
	RegularPrice  float64             `json:"regularPrice"`
	DiscountPrice float64             `json:"discountPrice"`
	Offer         bool                `json:"offer"`
	Parking       bool                `json:"parking"`
	Furnished     bool                `json:"furnished"`
	Gallery       []media.AssetHandle `json:"gallery"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// UpdateInput is a partial update: nil pointers mean "leave unchanged",
// which is distinct from a pointer to an empty value. The gallery is not
// updated here; gallery mutations go through the attach/detach flows.
type UpdateInput struct {
	Name          *string
	Description   *string
	Address       *string
	Type          *TransactionType
	Bedrooms      *int
	Bathrooms     *int
	RegularPrice  *float64
	DiscountPrice *float64
	Offer         *bool
	Parking       *bool
	Furnished     *bool
}

// ApplyTo merges the input into a copy of the given listing and returns it.
// The merged result must be re-validated as a whole before persistence.
func (in UpdateInput) ApplyTo(l Listing) Listing {
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.Type != nil {
		l.Type = *in.Type
	}
	if in.Bedrooms != nil {
		l.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		l.Bathrooms = *in.Bathrooms
	}
	if in.RegularPrice != nil {
		l.RegularPrice = *in.RegularPrice
	}
	if in.DiscountPrice != nil {
		l.DiscountPrice = *in.DiscountPrice
	}
	if in.Offer != nil {
		l.Offer = *in.Offer
	}
	if in.Parking != nil {
		l.Parking = *in.Parking
	}
	if in.Furnished != nil {
		l.Furnished = *in.Furnished
	}
	return l
}

// Validate enforces the listing invariants. It is called on the full
// (merged) state, never just on a delta.
func (l *Listing) Validate() error {
	if l.Name == "" {
		return validator.New("name", "required", "name must not be empty")
	}
	if l.Type != TypeSale && l.Type != TypeRent {
		return validator.New("type", "oneof", "type must be 'sale' or 'rent'")
	}
	if l.Bedrooms < 1 {
		return validator.New("bedrooms", "min", "bedrooms must be a positive integer")
	}
	if l.Bathrooms < 1 {
		return validator.New("bathrooms", "min", "bathrooms must be a positive integer")
	}
	if l.RegularPrice <= 0 {
		return validator.New("regularPrice", "min", "regular price must be positive")
	}
	if l.Offer && l.DiscountPrice >= l.RegularPrice {
		return validator.New("discountPrice", "lt_regular_price", "discount price must be less than regular price")
	}
	if l.DiscountPrice < 0 {
		return validator.New("discountPrice", "min", "discount price must not be negative")
	}
	if len(l.Gallery) < 1 {
		return validator.New("gallery", "min", "listing requires at least one image")
	}
	if len(l.Gallery) > media.MaxGallerySize {
		return validator.New("gallery", "max", "listing gallery holds at most 7 images")
	}
	return nil
}
