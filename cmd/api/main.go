package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"b2bmarket/internal/adapter/api"
	"b2bmarket/internal/adapter/api/handler"
	apimiddleware "b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/adapter/api/router"
	"b2bmarket/internal/adapter/repository"
	"b2bmarket/internal/adapter/repository/memory"
	domainrepo "b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/domain/service"
	"b2bmarket/internal/infrastructure/firebase"
	"b2bmarket/internal/infrastructure/ratelimit"
	"b2bmarket/internal/infrastructure/storage"
	"b2bmarket/internal/infrastructure/websocket"
	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/config"
	"b2bmarket/pkg/logger"
)

// backend is everything that talks to the outside world.
type backend struct {
	name         string
	products     domainrepo.ProductRepository
	enquiries    domainrepo.EnquiryRepository
	requirements domainrepo.RequirementRepository
	users        domainrepo.UserRepository
	identity     service.IdentityProvider
	files        service.FileUploadService
	ping         func(ctx context.Context) error
	closers      []func() error
}

func (b *backend) Close() {
	for _, c := range b.closers {
		if err := c(); err != nil {
			logger.Warn("Error during shutdown: %v", err)
		}
	}
}

func credentials(cfg *config.Config) option.ClientOption {
	if cfg.ServiceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	}
	if cfg.ServiceAccountPath == "" {
		log.Printf("No service account configured, using application default credentials")
		return nil
	}
	if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
		log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
	}
	log.Printf("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
	return option.WithCredentialsFile(cfg.ServiceAccountPath)
}

func newFirestoreBackend(ctx context.Context, cfg *config.Config) *backend {
	var opts []option.ClientOption
	if opt := credentials(cfg); opt != nil {
		opts = append(opts, opt)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}

	b := &backend{
		name:         config.BackendFirestore,
		products:     repository.NewFirestoreProductRepository(firestoreClient),
		enquiries:    repository.NewFirestoreEnquiryRepository(firestoreClient),
		requirements: repository.NewFirestoreRequirementRepository(firestoreClient),
		users:        repository.NewFirestoreUserRepository(firestoreClient),
		identity: firebase.NewFirebaseAuthClient(
			authClient,
			firebase.NewIdentityToolkit(cfg.IdentityToolkitBaseURL, cfg.FirebaseApiKey),
		),
		ping: func(ctx context.Context) error {
			return repository.Ping(ctx, firestoreClient)
		},
		closers: []func() error{firestoreClient.Close},
	}

	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		b.files = storageClient
		b.closers = append(b.closers, storageClient.Close)
	} else {
		log.Printf("STORAGE_BUCKET not set, product image uploads are disabled")
	}

	return b
}

func newMemoryBackend() *backend {
	store := memory.NewStore()
	log.Printf("Using in-memory store; data is lost on restart")
	return &backend{
		name:         config.BackendMemory,
		products:     store.Products(),
		enquiries:    store.Enquiries(),
		requirements: store.Requirements(),
		users:        store.Users(),
		identity:     memory.NewIdentityProvider(),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetDebug(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var b *backend
	if cfg.StoreBackend == config.BackendMemory {
		b = newMemoryBackend()
	} else {
		b = newFirestoreBackend(ctx, cfg)
	}
	defer b.Close()

	sessions := usecase.NewSessionHub()
	inflight := usecase.NewInFlight()
	prices := rules.NewPriceFormatter(cfg.Locale(), cfg.CurrencySymbol)

	authUseCase := usecase.NewAuthUseCase(b.users, b.identity, sessions, inflight)
	userUseCase := usecase.NewUserUseCase(b.users)
	productUseCase := usecase.NewProductUseCase(b.products, b.files, prices, inflight)
	enquiryUseCase := usecase.NewEnquiryUseCase(b.enquiries, b.products, inflight)
	requirementUseCase := usecase.NewRequirementUseCase(b.requirements, inflight)
	feedUseCase := usecase.NewFeedUseCase(b.products, b.enquiries, b.requirements, b.users, productUseCase)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	sessions.Subscribe(func(ev usecase.SessionEvent) {
		if ev.Kind == usecase.SessionAbsent {
			wsManager.DisconnectUser(ev.UID)
		}
	})

	handler.Setup(authUseCase, userUseCase, productUseCase, enquiryUseCase, requirementUseCase)
	handler.SetupFileHandler(productUseCase)

	limiters := router.Limiters{
		General: ratelimit.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Auth:    ratelimit.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst),
	}
	limiters.General.StartCleanupRoutine(ctx, 30*time.Minute, time.Hour)
	limiters.Auth.StartCleanupRoutine(ctx, 30*time.Minute, time.Hour)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)

	router.Setup(e, authMiddleware, limiters)
	router.SetupHealthRouter(e, handler.NewHealthHandler(b.name, b.ping))
	router.SetupWebSocketRouter(e, handler.NewWebSocketHandler(wsManager, feedUseCase), authMiddleware)

	go func() {
		log.Printf("Starting server on port %s (%s backend)...", cfg.ServerPort, b.name)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
