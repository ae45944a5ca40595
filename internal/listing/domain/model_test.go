package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/pkg/validator"
)

func validListing() Listing {
	return Listing{
		OwnerID:      "owner-1",
		Name:         "Sunny Cottage",
		Type:         TypeSale,
		Bedrooms:     2,
		Bathrooms:    1,
		RegularPrice: 250000,
		Gallery:      []media.AssetHandle{{URL: "https://cdn/1.jpg", DeleteKey: "k1"}},
	}
}

func TestListing_Validate(t *testing.T) {
	t.Run("ValidListingPasses", func(t *testing.T) {
		l := validListing()
		assert.NoError(t, l.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*Listing)
		field  string
	}{
		{"EmptyName", func(l *Listing) { l.Name = "" }, "name"},
		{"UnknownType", func(l *Listing) { l.Type = "lease" }, "type"},
		{"ZeroBedrooms", func(l *Listing) { l.Bedrooms = 0 }, "bedrooms"},
		{"ZeroBathrooms", func(l *Listing) { l.Bathrooms = 0 }, "bathrooms"},
		{"FreeListing", func(l *Listing) { l.RegularPrice = 0 }, "regularPrice"},
		{"DiscountNotBelowRegular", func(l *Listing) {
			l.Offer = true
			l.DiscountPrice = l.RegularPrice
		}, "discountPrice"},
		{"NegativeDiscount", func(l *Listing) { l.DiscountPrice = -1 }, "discountPrice"},
		{"EmptyGallery", func(l *Listing) { l.Gallery = nil }, "gallery"},
		{"GalleryOverCapacity", func(l *Listing) {
			l.Gallery = make([]media.AssetHandle, media.MaxGallerySize+1)
		}, "gallery"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := validListing()
			tc.mutate(&l)
			err := l.Validate()
			var valErr *validator.ValidationError
			assert.ErrorAs(t, err, &valErr)
			assert.Equal(t, tc.field, valErr.Field)
		})
	}

	t.Run("DiscountIgnoredWithoutOffer", func(t *testing.T) {
		l := validListing()
		l.Offer = false
		l.DiscountPrice = l.RegularPrice * 2
		assert.NoError(t, l.Validate())
	})
}

func TestUpdateInput_ApplyTo(t *testing.T) {
	base := validListing()
	base.Description = "original description"

	t.Run("NilPointersLeaveFieldsUnchanged", func(t *testing.T) {
		merged := UpdateInput{}.ApplyTo(base)
		assert.Equal(t, base, merged)
	})

	t.Run("SetPointersOverwrite", func(t *testing.T) {
		name := "Renamed"
		beds := 4
		offer := true
		discount := 200000.0
		merged := UpdateInput{
			Name:          &name,
			Bedrooms:      &beds,
			Offer:         &offer,
			DiscountPrice: &discount,
		}.ApplyTo(base)

		assert.Equal(t, "Renamed", merged.Name)
		assert.Equal(t, 4, merged.Bedrooms)
		assert.True(t, merged.Offer)
		assert.Equal(t, 200000.0, merged.DiscountPrice)
		// untouched fields carry over
		assert.Equal(t, base.Description, merged.Description)
		assert.Equal(t, base.Gallery, merged.Gallery)
		assert.Equal(t, base.OwnerID, merged.OwnerID)
	})

	t.Run("PointerToZeroIsAnOverwrite", func(t *testing.T) {
		empty := ""
		merged := UpdateInput{Description: &empty}.ApplyTo(base)
		assert.Empty(t, merged.Description)
	})
}
