package user

import (
	"context"
	"errors"
	"time"

	"classbook-svc/src/clients"
	"classbook-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const counterName = "users"

type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db         *clients.MongoDB
	collection *mongo.Collection
}

func NewUserRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &userRepository{
		db:         mongoClient,
		collection: mongoClient.Database.Collection(collectionName),
	}
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to find user")
		return nil, models.ErrDatabaseQuery
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		logrus.WithError(err).WithField("email", email).Error("Failed to find user by email")
		return nil, models.ErrDatabaseQuery
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("Failed to count users by email")
		return false, models.ErrDatabaseQuery
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) (*User, error) {
	id, err := r.db.NextSequence(ctx, counterName)
	if err != nil {
		return nil, models.ErrDatabaseInsert
	}

	now := time.Now()
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrEmailTaken
		}
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to insert user")
		return nil, models.ErrDatabaseInsert
	}

	return user, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("Failed to delete user")
		return models.ErrDatabaseDelete
	}
	if result.DeletedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
