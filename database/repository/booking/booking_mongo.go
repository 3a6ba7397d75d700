package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"expertbook/database"
	"expertbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements Repository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() *MongoBookingRepo {
	repo := &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("booking repo: %v", err))
	}
	return repo
}

// Insert creates a new booking document. A duplicate-key rejection from the
// (expert_id, date, time) unique index is mapped to ErrDuplicateBooking.
func (r *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// FindByEmail retrieves all bookings for the given requester email, newest
// first, with each booking's expert document joined in.
func (r *MongoBookingRepo) FindByEmail(ctx context.Context, email string) ([]models.BookingWithExpert, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user_email": email}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "experts",
			"localField":   "expert_id",
			"foreignField": "id",
			"as":           "expert",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$expert",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	bookings := []models.BookingWithExpert{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus modifies the status of an existing booking and returns the
// updated document.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating booking %s: %w", id, err)
	}
	return &booking, nil
}
