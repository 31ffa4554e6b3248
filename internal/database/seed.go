package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user and a small category tree (Security → Web) with one post in
// the child category, which is the reference layout for trying out share
// links by hand. It is a no-op when users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Default admin. 2FA is not enabled — they must set it up on first login.
	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "admin@inkpress.local", string(hash), "Admin", "admin", false).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Category tree: Security (root) → Web (child).
	var securityID, webID string
	err = db.QueryRow(`
		INSERT INTO categories (name, slug) VALUES ('Security', 'security')
		RETURNING id
	`).Scan(&securityID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, parent_id) VALUES ('Web', 'web', $1)
		RETURNING id
	`, securityID).Scan(&webID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	// One public welcome post and one private post in Security/Web.
	_, err = db.Exec(`
		INSERT INTO content (type, title, slug, body, status, visibility, category_id, author_id, published_at)
		VALUES
		  ('post', 'Welcome to Inkpress', 'welcome',
		   'Your blog is running. Log in at /admin to start writing.',
		   'published', 'public', NULL, $1, NOW()),
		  ('post', 'Threat Model Notes', 'threat-model-notes',
		   'Private notes on web threat modeling. Share this category to let others read it.',
		   'published', 'private', $2, $1, NOW())
	`, adminID, webID)
	if err != nil {
		return fmt.Errorf("seed insert content: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@inkpress.local",
		"password", "admin",
	)

	return nil
}
