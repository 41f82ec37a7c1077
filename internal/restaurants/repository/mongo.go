package repository

import (
	"context"
	"fmt"
	"time"

	"mizdooni/pkg/config"
	"mizdooni/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RestaurantsCollection = "Restaurants"
	TablesCollection      = "Tables"
)

type restaurantDocument struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"name"`
	Opening   string    `bson:"opening_time"`
	Closing   string    `bson:"closing_time"`
	CreatedAt time.Time `bson:"created_at"`
}

type tableDocument struct {
	RestaurantID int64 `bson:"restaurant_id"`
	Number       int   `bson:"table_number"`
	Seats        int   `bson:"seats_number"`
}

type mongoStore struct {
	cfg         *config.Config
	restaurants *mongo.Collection
	tables      *mongo.Collection
}

func NewMongoStore(cfg *config.Config) Store {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStore{
		cfg:         cfg,
		restaurants: db.Collection(RestaurantsCollection),
		tables:      db.Collection(TablesCollection),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *mongoStore) SaveRestaurant(ctx context.Context, r *model.Restaurant) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := restaurantDocument{
		ID:        r.ID,
		Name:      r.Name,
		Opening:   r.Opening.String(),
		Closing:   r.Closing.String(),
		CreatedAt: r.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.restaurants.ReplaceOne(ctx, bson.M{"_id": r.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save restaurant %d: %w", r.ID, err)
	}
	return nil
}

func (s *mongoStore) SaveTable(ctx context.Context, t *model.Table) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := tableDocument{
		RestaurantID: t.RestaurantID,
		Number:       t.Number,
		Seats:        t.Seats,
	}
	if _, err := s.tables.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("table %d of restaurant %d already stored: %w", t.Number, t.RestaurantID, err)
		}
		return fmt.Errorf("failed to save table: %w", err)
	}
	return nil
}

func (s *mongoStore) LoadAll(ctx context.Context) ([]*model.Restaurant, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	cursor, err := s.restaurants.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	var restaurantDocs []restaurantDocument
	if err := cursor.All(ctx, &restaurantDocs); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	byID := make(map[int64]*model.Restaurant, len(restaurantDocs))
	restaurants := make([]*model.Restaurant, 0, len(restaurantDocs))
	for _, doc := range restaurantDocs {
		opening, err := model.ParseTimeOfDay(doc.Opening)
		if err != nil {
			return nil, fmt.Errorf("restaurant %d: %w", doc.ID, err)
		}
		closing, err := model.ParseTimeOfDay(doc.Closing)
		if err != nil {
			return nil, fmt.Errorf("restaurant %d: %w", doc.ID, err)
		}
		r := &model.Restaurant{
			ID:        doc.ID,
			Name:      doc.Name,
			Opening:   opening,
			Closing:   closing,
			Tables:    []*model.Table{},
			CreatedAt: doc.CreatedAt,
		}
		byID[r.ID] = r
		restaurants = append(restaurants, r)
	}

	tableOpts := options.Find().SetSort(bson.D{{Key: "restaurant_id", Value: 1}, {Key: "table_number", Value: 1}})
	cursor, err = s.tables.Find(ctx, bson.M{}, tableOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	var tableDocs []tableDocument
	if err := cursor.All(ctx, &tableDocs); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}

	for _, doc := range tableDocs {
		r, ok := byID[doc.RestaurantID]
		if !ok {
			s.cfg.Log.Warn("Skipping table of unknown restaurant",
				"restaurant_id", doc.RestaurantID,
				"table_number", doc.Number,
			)
			continue
		}
		r.Tables = append(r.Tables, model.NewTable(doc.RestaurantID, doc.Number, doc.Seats))
		r.MaxSeats = max(r.MaxSeats, doc.Seats)
	}

	return restaurants, nil
}
