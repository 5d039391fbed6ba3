package app

import (
	"context"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/greenbowl/storefront-api/configs"
	httpadapter "github.com/greenbowl/storefront-api/internal/adapter/http"
	"github.com/greenbowl/storefront-api/internal/adapter/kafka"
	"github.com/greenbowl/storefront-api/internal/adapter/store"
	"github.com/greenbowl/storefront-api/internal/adapter/webhook"
	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/logging"
	"github.com/greenbowl/storefront-api/internal/seed"
	"github.com/greenbowl/storefront-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

type stores struct {
	products usecase.Store[domain.Product]
	carts    usecase.Store[domain.Cart]
	sessions usecase.Store[domain.CheckoutSession]
	orders   usecase.Store[domain.Order]
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	log := logging.New("app")
	log.Info("storefront-api: starting up", "storage", cfg.Storage.Backend)

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	st, err := initStores(cfg, &cleanups)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	ctx := context.Background()
	catalog := usecase.NewCatalog(st.products)
	for _, p := range seed.Products() {
		if err := st.products.Put(ctx, p.ID, p); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	carts := usecase.NewCartService(st.carts, catalog)

	dispatcher := webhook.NewDispatcher(logging.New("webhook"))
	eventLog := logging.New("webhook")
	dispatcher.Subscribe(func(_ context.Context, ev domain.WebhookEvent) error {
		eventLog.Info("ucp event",
			"event_id", ev.EventID, "event_type", ev.EventType, "order_id", ev.Data.OrderID)
		return nil
	})

	if cfg.Rabbit.Enabled {
		if err := initAMQPForwarder(cfg, dispatcher, &cleanups); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	checkout := usecase.NewCheckoutService(
		usecase.CheckoutConfig{
			MerchantID:   cfg.Merchant.ID,
			TaxRate:      cfg.TaxRateDecimal(),
			ShippingCost: cfg.ShippingCostDecimal(),
			SessionTTL:   cfg.Checkout.SessionTTL,
		},
		st.sessions, st.orders, catalog, carts, dispatcher, logging.New("checkout"),
	)

	if cfg.Kafka.Enabled {
		if err := startPaymentConsumer(cfg, checkout, &cleanups); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	router := httpadapter.NewRouter(
		httpadapter.NewProductHandler(catalog),
		httpadapter.NewCartHandler(carts),
		httpadapter.NewCheckoutHandler(checkout),
		httpadapter.NewOrderHandler(checkout),
		httpadapter.NewWebhookHandler(),
		cfg.Merchant.ID,
	)

	return &App{Router: router}, cleanup, nil
}

func initStores(cfg configs.Config, cleanups *[]func()) (stores, error) {
	if cfg.Storage.Backend != "redis" {
		return stores{
			products: store.NewMemory[domain.Product](),
			carts:    store.NewMemory[domain.Cart](),
			sessions: store.NewMemory[domain.CheckoutSession](),
			orders:   store.NewMemory[domain.Order](),
		}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return stores{}, err
	}
	*cleanups = append(*cleanups, func() { _ = rdb.Close() })

	return stores{
		products: store.NewRedis[domain.Product](rdb, "product"),
		carts:    store.NewRedis[domain.Cart](rdb, "cart"),
		sessions: store.NewRedis[domain.CheckoutSession](rdb, "session"),
		orders:   store.NewRedis[domain.Order](rdb, "order"),
	}, nil
}

func initAMQPForwarder(cfg configs.Config, dispatcher *webhook.Dispatcher, cleanups *[]func()) error {
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return err
	}
	*cleanups = append(*cleanups, func() { _ = conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	fwd, err := webhook.NewAMQPForwarder(ch, cfg.Rabbit.Exchange)
	if err != nil {
		return err
	}
	dispatcher.Subscribe(fwd.Forward)
	return nil
}

func startPaymentConsumer(cfg configs.Config, checkout *usecase.CheckoutService, cleanups *[]func()) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}
	*cleanups = append(*cleanups, func() { _ = grp.Close() })

	log := logging.New("kafka")
	handler := kafka.NewPaymentStatusHandler(checkout, log)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, handler.Handle, log)

	ctx, stop := context.WithCancel(context.Background())
	*cleanups = append(*cleanups, stop)
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("payment consumer stopped", "error", err)
		}
	}()
	return nil
}
