// Seeds a demo account with a week of readings through the same auth and
// storage layers the app uses. Handy for exercising a fresh backend:
//
//	STORAGE_BACKEND=sqlite go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"healthbuddy/internal/auth"
	"healthbuddy/internal/models"
	"healthbuddy/internal/store"
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

	ctx := context.Background()
	manager := auth.NewManager(st)
	if err := manager.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.Backend, err)
	}
	defer st.Close(ctx)

	const (
		demoName     = "Demo User"
		demoEmail    = "demo@healthbuddy.local"
		demoPassword = "demo1234"
	)

	if err := manager.Register(ctx, demoName, demoEmail, demoPassword); err != nil {
		if !errors.Is(err, store.ErrUserExists) {
			log.Fatalf("Failed to register demo user: %v", err)
		}
		log.Println("Demo user already registered")
	}

	user, err := manager.Login(ctx, demoEmail, demoPassword)
	if err != nil {
		log.Fatalf("Failed to log in demo user: %v", err)
	}
	log.Printf("Logged in as %s (id %s)", user.Name, user.ID)

	height := 175.0
	weight := 72.5
	age := 34
	bloodGroup := "O+"
	profile := models.ProfileUpdate{
		Height:     &height,
		Weight:     &weight,
		Age:        &age,
		BloodGroup: &bloodGroup,
	}
	if _, err := manager.UpdateProfile(ctx, profile); err != nil {
		log.Fatalf("Failed to update demo profile: %v", err)
	}

	seedReadings := []struct {
		systolic, diastolic, heartRate int
	}{
		{118, 76, 68},
		{124, 79, 72},
		{131, 84, 75},
		{127, 81, 70},
		{138, 88, 77},
		{121, 78, 69},
		{116, 74, 66},
	}
	for _, r := range seedReadings {
		if _, err := manager.AddReading(ctx, r.systolic, r.diastolic, r.heartRate); err != nil {
			log.Fatalf("Failed to seed reading: %v", err)
		}
		time.Sleep(5 * time.Millisecond) // keep timestamps strictly ordered
	}

	readings := manager.Readings(ctx)
	log.Printf("Seeded %d readings for %s", len(readings), demoEmail)
}
