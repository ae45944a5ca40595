package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/domain"
)

// UserRepository persists user accounts in the "users" collection.
// Username and email carry unique indexes; duplicate writes surface as
// domain.ErrDuplicateUsername / domain.ErrDuplicateEmail.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("users")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("failed to ensure user indexes (may already exist)", zap.Error(err))
	}

	return &UserRepository{
		collection: collection,
		logger:     log.Named("UserRepository"),
	}
}

func duplicateKeyError(err error) error {
	var writeException mongo.WriteException
	if !errors.As(err, &writeException) {
		return nil
	}
	for _, writeError := range writeException.WriteErrors {
		if writeError.Code != 11000 {
			continue
		}
		if strings.Contains(writeError.Message, "email_1") {
			return domain.ErrDuplicateEmail
		}
		if strings.Contains(writeError.Message, "username_1") {
			return domain.ErrDuplicateUsername
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc, err := toUserDocument(user)
	if err != nil {
		return fmt.Errorf("failed to prepare user for database: %w", err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			r.logger.Warn("duplicate key on user create", zap.String("email", user.Email), zap.Error(err))
			return dup
		}
		r.logger.Error("insert failed", zap.String("email", user.Email), zap.Error(err))
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	doc, err := toUserDocument(user)
	if err != nil {
		return fmt.Errorf("failed to prepare user for database: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"username":   doc.Username,
		"email":      doc.Email,
		"password":   doc.PasswordHash,
		"avatar":     doc.Avatar,
		"updated_at": doc.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			r.logger.Warn("duplicate key on user update", zap.String("user_id", user.ID), zap.Error(err))
			return dup
		}
		r.logger.Error("update failed", zap.String("user_id", user.ID), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		r.logger.Error("delete failed", zap.String("user_id", id), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("find failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("find by email failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return toDomainUser(&doc), nil
}

// GetEmailByID resolves just the email address of a user, used for
// notification mail.
func (r *UserRepository) GetEmailByID(ctx context.Context, userID string) (string, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", domain.ErrUserNotFound
	}

	var doc struct {
		Email string `bson:"email"`
	}
	opts := options.FindOne().SetProjection(bson.M{"email": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}
	return doc.Email, nil
}
