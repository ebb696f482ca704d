package teacher

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

const counterName = "teachers"

type Repository interface {
	FindAll(ctx context.Context) ([]*Teacher, error)
	FindByID(ctx context.Context, id int64) (*Teacher, error)
	Create(ctx context.Context, teacher *Teacher) (*Teacher, error)
}

type teacherRepository struct {
	db         *clients.MongoDB
	collection *mongo.Collection
}

func NewTeacherRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return &teacherRepository{
		db:         mongoClient,
		collection: mongoClient.Database.Collection(collectionName),
	}
}

func (r *teacherRepository) FindAll(ctx context.Context) ([]*Teacher, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find teachers")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	teachers := []*Teacher{}
	for cursor.Next(ctx) {
		var t Teacher
		if err := cursor.Decode(&t); err != nil {
			logrus.WithError(err).Error("Failed to decode teacher")
			continue
		}
		teachers = append(teachers, &t)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return teachers, nil
}

func (r *teacherRepository) Create(ctx context.Context, teacher *Teacher) (*Teacher, error) {
	id, err := r.db.NextSequence(ctx, counterName)
	if err != nil {
		return nil, models.ErrDatabaseInsert
	}

	now := time.Now()
	teacher.ID = id
	teacher.CreatedAt = now
	teacher.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, teacher); err != nil {
		logrus.WithError(err).WithField("last_name", teacher.LastName).Error("Failed to insert teacher")
		return nil, models.ErrDatabaseInsert
	}

	return teacher, nil
}

func (r *teacherRepository) FindByID(ctx context.Context, id int64) (*Teacher, error) {
	var t Teacher
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTeacherNotFound
		}
		logrus.WithError(err).WithField("teacher_id", id).Error("Failed to find teacher")
		return nil, models.ErrDatabaseQuery
	}
	return &t, nil
}
