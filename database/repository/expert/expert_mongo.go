package expertRepo

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

// MongoExpertRepo implements Repository using MongoDB.
type MongoExpertRepo struct {
	coll *mongo.Collection
}

// NewMongoExpertRepo constructs a new instance of MongoExpertRepo.
func NewMongoExpertRepo() *MongoExpertRepo {
	repo := &MongoExpertRepo{
		coll: database.DB().Collection("experts"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("expert repo: %v", err))
	}
	return repo
}

// Create inserts a new expert document. Experts whose slot list carries
// duplicate (date, time) pairs are rejected so that later positional slot
// updates are unambiguous.
func (r *MongoExpertRepo) Create(ctx context.Context, expert *models.Expert) error {
	if dup, ok := findDuplicateSlot(expert.Slots); ok {
		return fmt.Errorf("expert %q has duplicate slot (%s, %s)", expert.Name, dup.Date, dup.Time)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, expert); err != nil {
		return fmt.Errorf("error creating expert: %w", err)
	}
	return nil
}

// GetByID retrieves an expert by ID.
func (r *MongoExpertRepo) GetByID(ctx context.Context, id string) (*models.Expert, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var expert models.Expert
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&expert); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching expert with id %s: %w", id, err)
	}
	return &expert, nil
}

// List returns one page of experts matching the query plus the total match count.
func (r *MongoExpertRepo) List(ctx context.Context, q ListQuery) ([]models.Expert, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": q.Search, "$options": "i"}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	findOpts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing experts: %w", err)
	}
	defer cursor.Close(ctx)

	experts := []models.Expert{}
	if err := cursor.All(ctx, &experts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode experts: %w", err)
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting experts: %w", err)
	}
	return experts, count, nil
}

// FindBookableSlot returns the expert only when the (date, time) slot exists
// and is unbooked. A miss does not distinguish between a missing expert, a
// missing slot, and an already booked slot.
func (r *MongoExpertRepo) FindBookableSlot(ctx context.Context, expertID, date, timeLabel string) (*models.Expert, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": expertID,
		"slots": bson.M{"$elemMatch": bson.M{
			"date":     date,
			"time":     timeLabel,
			"isBooked": false,
		}},
	}

	var expert models.Expert
	if err := r.coll.FindOne(ctx, filter).Decode(&expert); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error probing slot for expert %s: %w", expertID, err)
	}
	return &expert, nil
}

// MarkSlotBooked sets isBooked on the first slot matching (date, time).
// Setting the flag twice is idempotent, and a zero-match update is silently
// accepted so a lost update here never fails an already inserted booking.
func (r *MongoExpertRepo) MarkSlotBooked(ctx context.Context, expertID, date, timeLabel string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": expertID,
		"slots": bson.M{"$elemMatch": bson.M{
			"date": date,
			"time": timeLabel,
		}},
	}
	update := bson.M{"$set": bson.M{"slots.$.isBooked": true}}

	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error marking slot booked for expert %s: %w", expertID, err)
	}
	return nil
}

// findDuplicateSlot reports the first (date, time) pair appearing more than
// once in slots.
func findDuplicateSlot(slots []models.Slot) (models.Slot, bool) {
	type key struct{ date, time string }
	seen := make(map[key]struct{}, len(slots))
	for _, s := range slots {
		k := key{s.Date, s.Time}
		if _, ok := seen[k]; ok {
			return s, true
		}
		seen[k] = struct{}{}
	}
	return models.Slot{}, false
}
