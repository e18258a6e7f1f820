package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/domain/model"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/events"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/handler"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/infra/chain"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/infra/db"
	infraRepo "github.com/Raj6578/arpita-shop-mbone-3/internal/infra/repository"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/logging"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/search"
	"github.com/Raj6578/arpita-shop-mbone-3/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// no .env in containers; env comes from the runtime
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentReceipt{},
		&model.Shipment{},
		&model.Setting{},
		&model.AuditLog{},
		&model.Address{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	// optional collaborators
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		log.Info("kafka producer ready", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.New(cfg.ESURL, cfg.ESUser, cfg.ESPassword, search.DefaultIndex)
		if err != nil {
			log.Warn("search disabled", zap.Error(err))
			searchClient = nil
		}
	}

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	shipmentRepo := infraRepo.NewShipmentGormRepository(gormDB)
	settingRepo := infraRepo.NewSettingGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	var publisher usecase.EventPublisher
	if producer != nil {
		publisher = producer
	}
	var index usecase.ProductIndex
	if searchClient != nil {
		index = searchClient
	}

	verifier := chain.New(cfg, log)

	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	productUC := usecase.NewProductUsecase(productRepo, index, publisher, log)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, shipmentRepo, settingRepo, productRepo, publisher, log)
	paymentUC := usecase.NewPaymentUsecase(orderRepo, txManager, verifier, cfg, publisher, log)
	shipmentUC := usecase.NewShipmentUsecase(orderRepo, shipmentRepo, txManager, publisher, log)
	settingUC := usecase.NewSettingUsecase(settingRepo, txManager, log)
	addressUC := usecase.NewAddressUsecase(addressRepo)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	handler.NewAuthHandler(authUC).RegisterRoutes(e, cfg)
	handler.NewProductHandler(productUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(orderUC, cartUC).RegisterRoutes(e, cfg)
	handler.NewShipmentHandler(shipmentUC).RegisterRoutes(e, cfg)
	handler.NewPaymentHandler(paymentUC, cartUC, log).RegisterRoutes(e, cfg)
	handler.NewSettingHandler(settingUC).RegisterRoutes(e, cfg)
	handler.NewAddressHandler(addressUC).RegisterRoutes(e, cfg)
	handler.NewAdminOrderHandler(orderUC, shipmentUC).RegisterRoutes(e, cfg)
	handler.NewAdminProductHandler(productUC).RegisterRoutes(e, cfg)
	if searchClient != nil {
		handler.NewSearchHandler(searchClient).RegisterRoutes(e)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("stopped")
}
