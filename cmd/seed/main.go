// seed inserts a demo user and a spread of savings goals into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/venuslabs/venus-backend/internal/infrastructure/postgres"
	"github.com/venuslabs/venus-backend/internal/password"
)

const (
	seedEmail    = "demo@venus.local"
	seedPassword = "password123"
)

type goalSpec struct {
	label            string
	amount           float64
	lockInDays       int // negative = already matured
	emergencyAllowed bool
	withdrawn        bool
}

var goals = []goalSpec{
	// Still locked, no early exit — withdraw must return 403
	{"new laptop", 1200, 90, false, false},
	{"winter trip", 800, 120, false, false},

	// Still locked, emergency allowed
	{"rainy day fund", 500, 60, true, false},
	{"concert tickets", 150.50, 30, true, false},

	// Lock date already passed — withdraw succeeds normally
	{"birthday gift", 75, -10, false, false},
	{"summer holiday", 2000, -30, true, false},

	// Terminal state — withdraw must return 400
	{"old phone upgrade", 300, -60, false, true},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := password.NewBcryptHasher().Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`,
		seedEmail, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Re-seeding should not pile up duplicates.
	if _, err := pool.Exec(ctx, `DELETE FROM savings_goals WHERE owner_id = $1`, userID); err != nil {
		log.Fatalf("clear goals: %v", err)
	}

	now := time.Now()
	for _, g := range goals {
		status := "locked"
		emergencyUsed := false
		if g.withdrawn {
			status = "withdrawn"
			emergencyUsed = g.lockInDays > 0
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO savings_goals (
				owner_id, label, amount, lock_until, status,
				emergency_allowed, emergency_used
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID,
			g.label,
			g.amount,
			now.AddDate(0, 0, g.lockInDays),
			status,
			g.emergencyAllowed,
			emergencyUsed,
		)
		if err != nil {
			log.Fatalf("insert goal %q: %v", g.label, err)
		}
	}

	fmt.Printf("seeded user %s (%s) with %d goals\n", seedEmail, userID, len(goals))
	fmt.Printf("login with password: %s\n", seedPassword)
}
