package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"callboard/internal/model"
)

type ResponseRepository interface {
	Create(ctx context.Context, response *model.Response) (*model.Response, error)
	FindByID(ctx context.Context, responseID uuid.UUID) (*model.ResponseDetails, error)
	ListByAdAuthor(ctx context.Context, adAuthorID uuid.UUID, adID *uuid.UUID) ([]model.ResponseDetails, error)
	MarkAccepted(ctx context.Context, responseID uuid.UUID) (bool, error)
	Delete(ctx context.Context, responseID uuid.UUID) error
}

type postgresResponseRepository struct {
	db *sqlx.DB
}

func NewPostgresResponseRepository(db *sqlx.DB) ResponseRepository {
	return &postgresResponseRepository{db: db}
}

func (r *postgresResponseRepository) Create(ctx context.Context, response *model.Response) (*model.Response, error) {
	query := `
		INSERT INTO responses (ad_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, is_accepted
	`

	row := r.db.QueryRowxContext(ctx, query, response.AdID, response.AuthorID, response.Content)
	err := row.Scan(&response.ID, &response.CreatedAt, &response.IsAccepted)

	if err != nil {
		return nil, err
	}

	return response, nil
}

func (r *postgresResponseRepository) FindByID(ctx context.Context, responseID uuid.UUID) (*model.ResponseDetails, error) {
	var response model.ResponseDetails
	query := `
		SELECT re.id, re.ad_id, a.title AS ad_title, a.author_id AS ad_author_id,
		       re.author_id, u.username AS author_name, re.content, re.created_at, re.is_accepted
		FROM responses re
		JOIN ads a ON re.ad_id = a.id
		JOIN users u ON re.author_id = u.id
		WHERE re.id = $1
	`
	err := r.db.GetContext(ctx, &response, query, responseID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &response, nil
}

// ListByAdAuthor returns responses to ads authored by adAuthorID, newest
// first. The scoping lives in the query so a caller can never widen it; an
// adID filter naming someone else's ad simply matches nothing.
func (r *postgresResponseRepository) ListByAdAuthor(ctx context.Context, adAuthorID uuid.UUID, adID *uuid.UUID) ([]model.ResponseDetails, error) {
	query := `
		SELECT re.id, re.ad_id, a.title AS ad_title, a.author_id AS ad_author_id,
		       re.author_id, u.username AS author_name, re.content, re.created_at, re.is_accepted
		FROM responses re
		JOIN ads a ON re.ad_id = a.id
		JOIN users u ON re.author_id = u.id
		WHERE a.author_id = $1
	`

	args := []interface{}{adAuthorID}
	if adID != nil {
		query += " AND re.ad_id = $2"
		args = append(args, *adID)
	}
	query += " ORDER BY re.created_at DESC"

	var responses []model.ResponseDetails
	err := r.db.SelectContext(ctx, &responses, query, args...)
	if err != nil {
		return nil, err
	}

	if responses == nil {
		responses = []model.ResponseDetails{}
	}

	return responses, nil
}

// MarkAccepted flips is_accepted in a single conditional update. It reports
// whether this call performed the pending-to-accepted transition, so two
// concurrent accepts can never both claim it.
func (r *postgresResponseRepository) MarkAccepted(ctx context.Context, responseID uuid.UUID) (bool, error) {
	query := `UPDATE responses SET is_accepted = TRUE WHERE id = $1 AND is_accepted = FALSE`
	result, err := r.db.ExecContext(ctx, query, responseID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (r *postgresResponseRepository) Delete(ctx context.Context, responseID uuid.UUID) error {
	query := `DELETE FROM responses WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, responseID)
	return err
}
