package main

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "go-storefront/internal/cart/application"
	cartdomain "go-storefront/internal/cart/domain"
	"go-storefront/internal/catalog"
	"go-storefront/internal/orders/adapters"
	ordersapp "go-storefront/internal/orders/application"
	ordersdomain "go-storefront/internal/orders/domain"
	"go-storefront/internal/orders/ports"
	"go-storefront/pkg/config"
	"go-storefront/pkg/events"
	"go-storefront/pkg/kvstore"
	"go-storefront/pkg/logger"
	"go-storefront/pkg/rabbitmq"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("starting storefront session",
		zap.String("storage_backend", cfg.StorageBackend),
	)

	ctx := logger.WithTraceIDContext(context.Background(), uuid.NewString())

	// Select the persistence medium
	kv := newStorage(cfg, log)

	// Connect to RabbitMQ; fall back to a log-only confirmation channel
	var publisher ports.ConfirmationPublisher = adapters.NewLogPublisher(log)
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, confirmations will be logged only: " + err.Error())
	} else {
		defer rabbitConn.Close()

		pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log)
		if err != nil {
			log.Warn("failed to create publisher: " + err.Error())
		} else {
			publisher = adapters.NewRabbitMQPublisher(pub, log)
		}
	}

	// Construct the stores; construction loads the persisted snapshots
	cart := cartapp.NewCartService(ctx, kv, cfg.CartKey, log)
	orders := ordersapp.NewOrderService(ctx, kv, cfg.OrdersKey, publisher, log)

	unsubscribe := cart.Subscribe(func() {
		log.Info("cart changed",
			zap.Int("item_count", cart.ItemCount()),
			zap.Float64("total", cart.Total()),
		)
	})
	defer unsubscribe()

	// Walk through a checkout session
	hoodie, _ := catalog.ByID(2)
	tee, _ := catalog.ByID(4)

	cart.AddItem(ctx, hoodie, "L")
	cart.AddItem(ctx, hoodie, "L")
	cart.AddItem(ctx, tee, "M")
	cart.UpdateQuantity(ctx, cartdomain.ItemKey{ProductID: tee.ID, Size: "M"}, 3)

	order := orders.CreateOrder(ctx, cart.Items(), ordersdomain.CustomerInfo{
		FirstName:     "Jan",
		LastName:      "Kowalski",
		Email:         "jan.kowalski@example.com",
		Phone:         "+48 600 000 000",
		Address:       "Main Street 1",
		City:          "Warsaw",
		PostalCode:    "00-001",
		PaymentMethod: ordersdomain.PaymentMethodCard,
	})

	// Clearing the cart after checkout is the caller's job
	cart.Clear(ctx)

	if err := orders.UpdateStatus(ctx, order.ID, ordersdomain.OrderStatusConfirmed); err != nil {
		log.Error("failed to confirm order", zap.Error(err))
	}

	log.Info("session finished",
		zap.String("order_id", order.ID),
		zap.Float64("order_total", order.Total),
		zap.Int("orders_on_file", len(orders.Orders())),
	)
}

// newStorage builds the configured key-value backend
func newStorage(cfg *config.Config, log *logger.Logger) kvstore.Store {
	switch cfg.StorageBackend {
	case config.BackendFile:
		kv, err := kvstore.NewFile(cfg.StorageFilePath)
		if err != nil {
			log.Fatal("failed to open file storage: " + err.Error())
		}
		return kv
	case config.BackendRedis:
		kv, err := kvstore.NewRedis(context.Background(), kvstore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatal("failed to connect to redis storage: " + err.Error())
		}
		return kv
	case config.BackendPostgres:
		kv, err := kvstore.NewPostgres(kvstore.PostgresConfig{
			DSN:     cfg.DSN(),
			Timeout: cfg.DBTimeout,
		})
		if err != nil {
			log.Fatal("failed to connect to postgres storage: " + err.Error())
		}
		return kv
	default:
		return kvstore.NewMemory()
	}
}
