package cli

import (
	"context"
	"fmt"

	reservationevents "mizdooni/internal/reservations/events"
	reservationhandler "mizdooni/internal/reservations/handler"
	reservationrepo "mizdooni/internal/reservations/repository"
	reservationservice "mizdooni/internal/reservations/service"
	reservationvalidator "mizdooni/internal/reservations/validator"
	restauranthandler "mizdooni/internal/restaurants/handler"
	restaurantrepo "mizdooni/internal/restaurants/repository"
	restaurantservice "mizdooni/internal/restaurants/service"
	restaurantvalidator "mizdooni/internal/restaurants/validator"
	"mizdooni/pkg/app"
	"mizdooni/pkg/config"
	"mizdooni/pkg/kafka"
	kafka_config "mizdooni/pkg/kafka/config"
	kafka_middleware "mizdooni/pkg/kafka/middleware"
	"mizdooni/pkg/sequence"
)

// Services is the wired service graph behind one process.
type Services struct {
	Restaurants restaurantservice.RestaurantService
	Bookings    reservationservice.BookingEngine
	App         *app.Application
}

// Build wires stores, services and handlers for cfg and restores persisted state.
// The caller owns the returned application and must Run or Close it.
func Build(ctx context.Context, cfg *config.Config) (*Services, error) {
	var (
		restaurantStore  = restaurantrepo.NewNopStore()
		reservationStore = reservationrepo.NewNopStore()
	)
	if cfg.UsesMongo() {
		if cfg.Client.Mongo == nil {
			cfg.SetMongo()
		}
		restaurantStore = restaurantrepo.NewMongoStore(cfg)
		reservationStore = reservationrepo.NewMongoStore(cfg)
		cfg.Log.Info("Using MongoDB storage", "database", cfg.MongoDatabaseName)
	} else {
		cfg.Log.Info("Using in-memory storage, state is lost on restart")
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		return nil, err
	}

	registry := restaurantrepo.NewRegistry()
	restaurants := restaurantservice.NewRestaurantService(
		registry,
		restaurantStore,
		sequence.NewAtomic(1),
		restaurantvalidator.NewRestaurantValidator(),
		cfg,
	)
	bookings := reservationservice.NewBookingEngine(
		registry,
		reservationrepo.NewLedger(),
		reservationStore,
		publisher,
		sequence.NewAtomic(1),
		cfg,
	)

	if err := restaurants.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore restaurants: %w", err)
	}
	if err := bookings.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore reservations: %w", err)
	}

	application := app.NewApplication(cfg)
	application.SetApp(
		restauranthandler.NewRestaurantHandler(restaurants, cfg.Log),
		reservationhandler.NewReservationHandler(bookings, reservationvalidator.NewReservationValidator(), cfg.Location, cfg.Log),
	)
	application.OnShutdown("events", publisher.Close)

	return &Services{
		Restaurants: restaurants,
		Bookings:    bookings,
		App:         application,
	}, nil
}

func newPublisher(cfg *config.Config) (reservationevents.Publisher, error) {
	if !cfg.EventsEnabled {
		return reservationevents.NewNopPublisher(), nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, fmt.Errorf("kafka config: %w", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQ, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Reservation events enabled", "topic", cfg.EventsTopic, "dlq_topic", cfg.EventsDLQ)
	return reservationevents.NewKafkaPublisher(producer, cfg.Log), nil
}
