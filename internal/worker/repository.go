package worker

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

type Recipient struct {
	Username      string `db:"username"`
	Email         string `db:"email"`
	EmailVerified bool   `db:"email_verified"`
}

type Repository interface {
	GetRecipient(ctx context.Context, userID uuid.UUID) (*Recipient, error)
	ListNewsletterRecipients(ctx context.Context) ([]string, error)
	Close()
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository() (Repository, error) {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Notification worker connected to the database.")
	return &postgresRepository{db: db}, nil
}

func (r *postgresRepository) Close() {
	r.db.Close()
}

func (r *postgresRepository) GetRecipient(ctx context.Context, userID uuid.UUID) (*Recipient, error) {
	var recipient Recipient
	query := `SELECT username, email, email_verified FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &recipient, query, userID)
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

func (r *postgresRepository) ListNewsletterRecipients(ctx context.Context) ([]string, error) {
	var emails []string
	query := `
		SELECT u.email
		FROM newsletter_subscriptions ns
		JOIN users u ON ns.user_id = u.id
		WHERE ns.subscribed = TRUE AND u.email_verified = TRUE
	`
	err := r.db.SelectContext(ctx, &emails, query)
	return emails, err
}
