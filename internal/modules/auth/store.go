package auth

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/callscope/core/internal/models"
)

// UserStore is the persistence boundary for accounts. FindByEmail and
// FindByID return (nil, nil) when no account matches.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	FindByID(ctx context.Context, id string) (*models.UserAccount, error)
	Insert(ctx context.Context, u *models.UserAccount) error
	UpdateByID(ctx context.Context, id string, upd *ProfileUpdate) (*models.UserAccount, error)
}

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	var u models.UserAccount
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.UserAccount, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var u models.UserAccount
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

// Insert writes a new account. The unique index on email arbitrates
// concurrent signups, so a duplicate surfaces as ErrEmailTaken no matter
// how the race interleaves.
func (s *MongoUserStore) Insert(ctx context.Context, u *models.UserAccount) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *MongoUserStore) UpdateByID(ctx context.Context, id string, upd *ProfileUpdate) (*models.UserAccount, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.FirstName != nil {
		set["firstname"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["lastname"] = *upd.LastName
	}
	if upd.PasswordHash != nil {
		set["password"] = *upd.PasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.UserAccount
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}
