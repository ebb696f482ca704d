package session

import (
	"context"
	"errors"
	"time"

	"classbook-svc/src/clients"
	"classbook-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const counterName = "sessions"

type Repository interface {
	FindAll(ctx context.Context) ([]*Session, error)
	FindByID(ctx context.Context, id int64) (*Session, error)
	Create(ctx context.Context, session *Session) (*Session, error)
	Update(ctx context.Context, session *Session) (*Session, error)
	Delete(ctx context.Context, id int64) error
}

type sessionRepository struct {
	db         *clients.MongoDB
	collection *mongo.Collection
}

func NewSessionRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &sessionRepository{
		db:         mongoClient,
		collection: mongoClient.Database.Collection(collectionName),
	}
}

func (r *sessionRepository) FindAll(ctx context.Context) ([]*Session, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find sessions")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	sessions := []*Session{}
	for cursor.Next(ctx) {
		var s Session
		if err := cursor.Decode(&s); err != nil {
			logrus.WithError(err).Error("Failed to decode session")
			continue
		}
		sessions = append(sessions, &s)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return sessions, nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id int64) (*Session, error) {
	var s Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		logrus.WithError(err).WithField("session_id", id).Error("Failed to find session")
		return nil, models.ErrDatabaseQuery
	}
	return &s, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *Session) (*Session, error) {
	id, err := r.db.NextSequence(ctx, counterName)
	if err != nil {
		return nil, models.ErrDatabaseInsert
	}

	now := time.Now()
	session.ID = id
	session.CreatedAt = now
	session.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		logrus.WithError(err).WithField("name", session.Name).Error("Failed to insert session")
		return nil, models.ErrDatabaseInsert
	}

	return session, nil
}

// Update replaces the whole document. This is the only serialization
// point for concurrent mutations of the same session; the last writer
// wins, a documented limitation.
func (r *sessionRepository) Update(ctx context.Context, session *Session) (*Session, error) {
	session.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session, opts); err != nil {
		logrus.WithError(err).WithField("session_id", session.ID).Error("Failed to update session")
		return nil, models.ErrDatabaseUpdate
	}

	return session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("session_id", id).Error("Failed to delete session")
		return models.ErrDatabaseDelete
	}
	if result.DeletedCount == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}
