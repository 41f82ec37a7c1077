package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationerrors "mizdooni/internal/reservations/errors"
	"mizdooni/pkg/config"
	"mizdooni/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Reservations"

type reservationDocument struct {
	Number       int64      `bson:"_id"`
	UserID       string     `bson:"user_id"`
	RestaurantID int64      `bson:"restaurant_id"`
	TableNumber  int        `bson:"table_number"`
	People       int        `bson:"people"`
	Start        time.Time  `bson:"start"`
	End          time.Time  `bson:"end"`
	Status       string     `bson:"status"`
	CreatedAt    time.Time  `bson:"created_at"`
	CancelledAt  *time.Time `bson:"cancelled_at,omitempty"`
}

type mongoStore struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStore(cfg *config.Config) Store {
	return &mongoStore{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *mongoStore) Insert(ctx context.Context, r *model.Reservation) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := reservationDocument{
		Number:       r.Number,
		UserID:       r.UserID,
		RestaurantID: r.RestaurantID,
		TableNumber:  r.TableNumber,
		People:       r.People,
		Start:        r.Start.UTC(),
		End:          r.End.UTC(),
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert reservation %d: %w", r.Number, err)
	}
	return nil
}

func (s *mongoStore) MarkCancelled(ctx context.Context, number int64, at time.Time) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": number, "status": model.StatusConfirmed}
	update := bson.M{
		"$set": bson.M{
			"status":       model.StatusCancelled,
			"cancelled_at": at.UTC().Truncate(time.Millisecond),
		},
	}

	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation %d: %w", number, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %d", reservationerrors.ErrReservationNotFound, number)
	}
	return nil
}

func (s *mongoStore) LoadConfirmed(ctx context.Context) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"status": model.StatusConfirmed}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}

	var docs []reservationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	loc := s.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	out := make([]*model.Reservation, 0, len(docs))
	for _, doc := range docs {
		out = append(out, &model.Reservation{
			Number:       doc.Number,
			UserID:       doc.UserID,
			RestaurantID: doc.RestaurantID,
			TableNumber:  doc.TableNumber,
			People:       doc.People,
			Start:        doc.Start.In(loc),
			End:          doc.End.In(loc),
			Status:       doc.Status,
			CreatedAt:    doc.CreatedAt,
		})
	}
	return out, nil
}

func (s *mongoStore) MaxNumber(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetProjection(bson.M{"_id": 1})

	var doc struct {
		Number int64 `bson:"_id"`
	}
	if err := s.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read highest reservation number: %w", err)
	}
	return doc.Number, nil
}
