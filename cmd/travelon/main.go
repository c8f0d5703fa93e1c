package main

import (
	"context"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/travelon/internal/accounts"
	"github.com/example/travelon/internal/bookings"
	"github.com/example/travelon/internal/catalog"
	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/localposts"
	"github.com/example/travelon/internal/orders"
	"github.com/example/travelon/internal/platform/auth"
	"github.com/example/travelon/internal/platform/config"
	"github.com/example/travelon/internal/platform/db"
	"github.com/example/travelon/internal/platform/events"
	"github.com/example/travelon/internal/platform/httpserver"
	"github.com/example/travelon/internal/platform/logging"
	"github.com/example/travelon/internal/platform/natsconn"
	"github.com/example/travelon/internal/platform/run"
)

// stores bundles every persistence backend behind its interface so the rest
// of main does not care whether Postgres is configured.
type stores struct {
	accounts accounts.Store
	catalog  catalog.Store
	reviews  engagement.ReviewStore
	posts    localposts.Store
	bookings bookings.Store
	orders   orders.Store
	ready    func() error
	close    func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	authCfg, err := config.LoadAuth()
	if err != nil {
		log.Error("auth config", zap.Error(err))
		run.Exit(1)
	}

	st := initStores(cfg, log)
	if st.close != nil {
		defer st.close()
	}

	publisher, closeNATS := initEvents(log)
	if closeNATS != nil {
		defer closeNATS()
	}

	tokens := accounts.TokenService{
		Secret:          authCfg.JWTSecret,
		AccessTokenTTL:  authCfg.AccessTokenTTL,
		RefreshTokenTTL: authCfg.RefreshTokenTTL,
	}
	accountSvc := &accounts.Service{Users: st.accounts, Tokens: tokens, Events: publisher, Log: log}
	reviewSvc := &engagement.Service{Reviews: st.reviews, Entities: st.catalog, Events: publisher, Log: log}
	postSvc := &localposts.Service{Posts: st.posts, Users: accountSvc, Events: publisher, Log: log}
	bookingSvc := &bookings.Service{Bookings: st.bookings, Hotels: st.catalog, Events: publisher, Log: log}
	orderSvc := &orders.Service{Orders: st.orders, Restaurants: st.catalog, Events: publisher, Log: log}

	verifier := auth.JWTVerifier{Secret: authCfg.JWTSecret}

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		ServiceName: cfg.ServiceName,
		ReadyFunc:   st.ready,
	})

	// Public routes
	r.Post("/v1/auth/signup", accounts.Signup(accountSvc))
	r.Post("/v1/auth/login", accounts.Login(accountSvc))
	r.Post("/v1/auth/refresh", accounts.Refresh(accountSvc))

	r.Get("/v1/hotels", catalog.ListHotels(st.catalog))
	r.Get("/v1/hotels/{id}", catalog.GetHotel(st.catalog))
	r.Get("/v1/restaurants", catalog.ListRestaurants(st.catalog))
	r.Get("/v1/restaurants/{id}", catalog.GetRestaurant(st.catalog))
	r.Get("/v1/restaurants/{id}/menu", catalog.GetMenu(st.catalog))
	r.Get("/v1/places", catalog.ListPlaces(st.catalog))
	r.Get("/v1/places/{id}", catalog.GetPlace(st.catalog))

	r.Get("/v1/reviews/{entity_type}/{entity_id}", engagement.GetReviews(reviewSvc))
	r.Get("/v1/local-posts", localposts.ListPosts(postSvc))
	r.Get("/v1/local-posts/{id}", localposts.GetPost(postSvc))

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))

		r.Get("/v1/auth/me", accounts.Me(accountSvc))

		r.Post("/v1/reviews", engagement.CreateReview(reviewSvc))
		r.Post("/v1/reviews/{id}/upvote", engagement.VoteReview(reviewSvc, engagement.Upvote))
		r.Post("/v1/reviews/{id}/downvote", engagement.VoteReview(reviewSvc, engagement.Downvote))

		r.Post("/v1/local-posts/{id}/upvote", localposts.VotePost(postSvc, engagement.Upvote))
		r.Post("/v1/local-posts/{id}/downvote", localposts.VotePost(postSvc, engagement.Downvote))
		r.Post("/v1/local-posts/{id}/comments", localposts.AddComment(postSvc))
		r.Post("/v1/local-posts/{id}/flag", localposts.FlagPost(postSvc))

		r.Post("/v1/bookings", bookings.CreateBooking(bookingSvc))
		r.Get("/v1/bookings", bookings.ListBookings(bookingSvc))
		r.Get("/v1/bookings/{id}", bookings.GetBooking(bookingSvc))
		r.Put("/v1/bookings/{id}/cancel", bookings.CancelBooking(bookingSvc))

		r.Post("/v1/orders", orders.PlaceOrder(orderSvc))
		r.Get("/v1/orders", orders.ListOrders(orderSvc))
		r.Get("/v1/orders/{id}", orders.GetOrder(orderSvc))

		// Locals only
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleLocal))
			r.Post("/v1/local-posts", localposts.CreatePost(postSvc))
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Post("/v1/hotels", catalog.CreateHotel(st.catalog))
			r.Post("/v1/restaurants", catalog.CreateRestaurant(st.catalog))
			r.Post("/v1/restaurants/{id}/menu", catalog.CreateMenuItem(st.catalog))
			r.Post("/v1/places", catalog.CreatePlace(st.catalog))

			r.Put("/v1/reviews/{id}/approve", engagement.ApproveReview(reviewSvc))
			r.Put("/v1/local-posts/{id}/approve", localposts.ApprovePost(postSvc))
			r.Put("/v1/orders/{id}/status", orders.UpdateStatus(orderSvc))
		})
	})

	srv := httpserver.New(httpserver.Options{
		Addr:        cfg.HTTP.Addr,
		ServiceName: cfg.ServiceName,
		Logger:      log,
		Router:      r,
	})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// initStores selects the persistence backend. In production (APP_ENV=production)
// a working Postgres connection is required and the process terminates
// otherwise; in development a missing DATABASE_URL falls back to in-memory
// stores.
func initStores(cfg config.AppConfig, log *zap.Logger) stores {
	isProd := strings.EqualFold(strings.TrimSpace(os.Getenv("APP_ENV")), "production")

	if cfg.DatabaseURL == "" {
		if isProd {
			log.Error("DATABASE_URL is required in production")
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return memoryStores()
	}

	pool, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		if isProd {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return memoryStores()
	}

	log.Info("stores: postgres")
	return stores{
		accounts: accounts.NewPostgresStore(pool),
		catalog:  catalog.NewPostgresStore(pool),
		reviews:  engagement.NewPostgresReviewStore(pool),
		posts:    localposts.NewPostgresStore(pool),
		bookings: bookings.NewPostgresStore(pool),
		orders:   orders.NewPostgresStore(pool),
		ready:    func() error { return pool.Ping(context.Background()) },
		close:    pool.Close,
	}
}

func memoryStores() stores {
	return stores{
		accounts: accounts.NewInMemoryStore(),
		catalog:  catalog.NewInMemoryStore(),
		reviews:  engagement.NewInMemoryReviewStore(),
		posts:    localposts.NewInMemoryStore(),
		bookings: bookings.NewInMemoryStore(),
		orders:   orders.NewInMemoryStore(),
	}
}

// initEvents connects to NATS and wires the JetStream publisher. NATS being
// down is not fatal; events degrade to a no-op.
func initEvents(log *zap.Logger) (*events.Publisher, func()) {
	nc, err := natsconn.Connect(natsconn.Options{})
	if err != nil {
		log.Warn("nats unavailable, business events disabled", zap.Error(err))
		return events.New(nil, log), nil
	}
	js, err := nc.JetStream()
	if err != nil {
		log.Warn("jetstream unavailable, business events disabled", zap.Error(err))
		nc.Close()
		return events.New(nil, log), nil
	}
	log.Info("events: nats jetstream")
	return events.New(js, log), nc.Close
}
