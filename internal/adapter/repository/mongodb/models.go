package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	listingdomain "github.com/hamzaamir-design/Real-state-MarketPlace/internal/listing/domain"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	userdomain "github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/domain"
)

// listingDocument is the MongoDB shape of a listing.
type listingDocument struct {
	ID            primitive.ObjectID            `bson:"_id,omitempty"`
	OwnerID       string                        `bson:"owner_id"`
	Name          string                        `bson:"name"`
	Description   string                        `bson:"description"`
	Address       string                        `bson:"address"`
	Type          listingdomain.TransactionType `bson:"type"`
	Bedrooms      int                           `bson:"bedrooms"`
	Bathrooms     int                           `bson:"bathrooms"`
	RegularPrice  float64                       `bson:"regular_price"`
	DiscountPrice float64                       `bson:"discount_price"`
	Offer         bool                          `bson:"offer"`
	Parking       bool                          `bson:"parking"`
	Furnished     bool                          `bson:"furnished"`
	Gallery       []media.AssetHandle           `bson:"gallery"`
	CreatedAt     time.Time                     `bson:"created_at"`
	UpdatedAt     time.Time                     `bson:"updated_at"`
}

// userDocument is the MongoDB shape of a user account.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Avatar       *media.AssetHandle `bson:"avatar,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toListingDocument(l *listingdomain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid ID %q: %w", l.ID, err)
		}
	}

	return &listingDocument{
		ID:            docID,
		OwnerID:       l.OwnerID,
		Name:          l.Name,
		Description:   l.Description,
		Address:       l.Address,
		Type:          l.Type,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		RegularPrice:  l.RegularPrice,
		DiscountPrice: l.DiscountPrice,
		Offer:         l.Offer,
		Parking:       l.Parking,
		Furnished:     l.Furnished,
		Gallery:       l.Gallery,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *listingdomain.Listing {
	if d == nil {
		return nil
	}
	return &listingdomain.Listing{
		ID:            d.ID.Hex(),
		OwnerID:       d.OwnerID,
		Name:          d.Name,
		Description:   d.Description,
		Address:       d.Address,
		Type:          d.Type,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		RegularPrice:  d.RegularPrice,
		DiscountPrice: d.DiscountPrice,
		Offer:         d.Offer,
		Parking:       d.Parking,
		Furnished:     d.Furnished,
		Gallery:       d.Gallery,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toUserDocument(u *userdomain.User) (*userDocument, error) {
	if u == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if u.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("toUserDocument: invalid ID %q: %w", u.ID, err)
		}
	}

	return &userDocument{
		ID:           docID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

func toDomainUser(d *userDocument) *userdomain.User {
	if d == nil {
		return nil
	}
	return &userdomain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
