package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"healthbuddy/internal/controllers"
	"healthbuddy/internal/store"
	"healthbuddy/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := store.FromEnv()
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to configure storage: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := st.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.Backend, err)
	}
	defer st.Close(context.Background())
	log.Printf("Storage backend: %s", cfg.Backend)

	userController := controllers.NewUserController(st)
	sessionController := controllers.NewSessionController(st)
	readingController := controllers.NewReadingController(st)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	routes.RegisterHealthRoutes(api)
	routes.RegisterUserRoutes(api, userController)
	routes.RegisterSessionRoutes(api, sessionController)
	routes.RegisterReadingRoutes(api, readingController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("HealthBuddy API running on http://localhost:%s", port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
