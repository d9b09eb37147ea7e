package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"freestuff/internal/adapter/api"
	"freestuff/internal/adapter/api/handler"
	apimiddleware "freestuff/internal/adapter/api/middleware"
	"freestuff/internal/adapter/api/router"
	"freestuff/internal/adapter/repository"
	"freestuff/internal/infrastructure/firebase"
	"freestuff/internal/infrastructure/storage"
	ws "freestuff/internal/infrastructure/websocket"
	"freestuff/internal/usecase"
	"freestuff/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
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
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}
	defer storageClient.Close()

	itemRepo := repository.NewFirestoreItemRepository(firestoreClient)
	claimRepo := repository.NewFirestoreClaimRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	reportRepo := repository.NewFirestoreReportRepository(firestoreClient)

	itemUseCase := usecase.NewItemUseCase(itemRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo)
	claimUseCase := usecase.NewClaimUseCase(claimRepo, itemRepo, chatUseCase)
	firebaseAuthClient := firebase.NewAuthClient(authClient)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	reportUseCase := usecase.NewReportUseCase(reportRepo)

	handler.Setup(itemUseCase, claimUseCase, chatUseCase, userUseCase, reportUseCase)
	handler.SetupFileHandler(storageClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	wsManager := ws.NewManager()
	wsHandler := handler.NewWebSocketHandler(wsManager, itemUseCase, chatUseCase)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
