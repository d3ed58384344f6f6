package main

import (
	"context"
	"fmt"
	"log"

	"DripmenStore/internal/catalog"
	"DripmenStore/internal/config"
	"DripmenStore/internal/db"
	"DripmenStore/internal/events"
	"DripmenStore/internal/logging"
	"DripmenStore/internal/middleware"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/services"
	"DripmenStore/internal/store"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type app struct {
	cfg     config.Config
	store   store.Store
	notices *events.Recorder

	products  *services.ProductService
	cart      *services.CartService
	wishlist  *services.WishlistService
	orders    *services.OrderService
	addresses *services.AddressService
	cards     *services.CardService
	auth      *services.AuthService
}

func buildApp(ctx context.Context, cfg config.Config) (*app, error) {
	// ======================
	// INFRA
	// ======================
	st, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	zap.S().Infow("catalog loaded", "path", cfg.CatalogPath, "products", cat.Len())

	bus := events.NewBus()
	notices, err := events.NewRecorder(bus)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	middleware.SetSecret(cfg.JWTSecret)

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(st)
	cartRepo := repository.NewCartRepository(st)
	wishlistRepo := repository.NewWishlistRepository(st)
	addressRepo := repository.NewAddressRepository(st)
	cardRepo := repository.NewCardRepository(st)
	orderRepo := repository.NewOrderRepository(st)

	// ======================
	// SERVICES
	// ======================
	pricing := cfg.Pricing()
	a := &app{
		cfg:       cfg,
		store:     st,
		notices:   notices,
		products:  services.NewProductService(cat, cfg.ItemsPerPage),
		cart:      services.NewCartService(cartRepo, wishlistRepo, cat, authRepo, bus, pricing),
		wishlist:  services.NewWishlistService(wishlistRepo, cartRepo, cat, authRepo, bus),
		orders:    services.NewOrderService(orderRepo, cartRepo, addressRepo, authRepo, bus, pricing),
		addresses: services.NewAddressService(addressRepo, bus),
		cards:     services.NewCardService(cardRepo, bus),
		auth:      services.NewAuthService(authRepo, services.FormatValidator{}, bus),
	}

	if cfg.SeedDemo {
		if err := a.orders.SeedDemo(ctx); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("seed demo orders: %w", err)
		}
	}
	return a, nil
}

func (a *app) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Serialize())
	e.Use(a.discardStaleNotices)

	api := e.Group("/store")
	r := responder{notices: a.notices}

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, a.auth, a.cfg.JWTTTLHours, r)
	registerProductRoutes(api, a.products, r)
	registerCartRoutes(api, a.cart, r)
	registerWishlistRoutes(api, a.wishlist, r)
	registerCheckoutRoutes(api, a.orders, r)
	registerOrderRoutes(api, a.orders, r)
	registerAddressRoutes(api, a.addresses, r)
	registerCardRoutes(api, a.cards, r)
	return e
}

// discardStaleNotices drops notifications a previous request left behind.
func (a *app) discardStaleNotices(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		a.notices.Drain()
		return next(c)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(logging.Options{Mode: cfg.LogMode, File: cfg.LogFile})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := buildApp(context.Background(), cfg)
	if err != nil {
		zap.S().Fatalw("startup failed", "error", err)
	}
	defer a.store.Close()

	e := a.routes()
	for _, r := range e.Routes() {
		zap.S().Debugw("route", "method", r.Method, "path", r.Path)
	}

	zap.S().Infow("listening", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		zap.S().Errorw("server stopped", "error", err)
	}
}
