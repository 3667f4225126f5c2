package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/jioni/config"
	"github.com/oksasatya/jioni/pkg/helpers"
)

// Seeds a demo organizer account and two listings (one already
// verified, one waiting in the queue) into the Postgres backend.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "organizer@jioni.example"
	password := "password123"
	hasher := helpers.NewPasswordHasher(cfg.PasswordScheme)
	digest, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, email, full_name, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, uuid.NewString(), email, "Demo Organizer", "+255700000000", digest, "organizer").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	var existing int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM tickets`).Scan(&existing); err != nil {
		log.Fatalf("failed to count tickets: %v", err)
	}
	if existing > 0 {
		fmt.Printf("tickets already present (%d), skipping listing seed\n", existing)
		return
	}

	verifiedQR, err := helpers.NewListingCode()
	if err != nil {
		log.Fatalf("failed to generate qr code: %v", err)
	}
	pendingQR, err := helpers.NewListingCode()
	if err != nil {
		log.Fatalf("failed to generate qr code: %v", err)
	}

	var verifiedID int64
	err = db.QueryRow(`
		INSERT INTO tickets (name, event_date, venue, original_price, resale_price,
			seller_email, qr_code, verified, pending, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, FALSE, now())
		RETURNING id
	`, "Sauti za Busara", "2026-02-13", "Old Fort, Stone Town", 45.0, 60.0, email, verifiedQR).Scan(&verifiedID)
	if err != nil {
		log.Fatalf("failed to seed verified listing: %v", err)
	}

	var pendingID int64
	err = db.QueryRow(`
		INSERT INTO tickets (name, event_date, venue, original_price, resale_price,
			seller_email, qr_code, verified, pending)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, TRUE)
		RETURNING id
	`, "Serengeti Sunset Live", "2026-03-07", "Saba Saba Grounds", 30.0, 42.5, email, pendingQR).Scan(&pendingID)
	if err != nil {
		log.Fatalf("failed to seed pending listing: %v", err)
	}

	fmt.Printf("seeded listings: verified=%d pending=%d\n", verifiedID, pendingID)
}
