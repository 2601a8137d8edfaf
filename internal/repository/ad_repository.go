package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"callboard/internal/model"
)

type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
}

type PaginatedAds struct {
	Data []model.AdDetails `json:"data"`
	Meta PaginationMeta    `json:"meta"`
}

type AdRepository interface {
	Create(ctx context.Context, ad *model.Ad) (*model.Ad, error)
	FindByID(ctx context.Context, adID uuid.UUID) (*model.AdDetails, error)
	List(ctx context.Context, categorySlug string, page int, limit int) (*PaginatedAds, error)
	Update(ctx context.Context, ad *model.Ad) error
	Delete(ctx context.Context, adID uuid.UUID) error
	FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
}

type postgresAdRepository struct {
	db *sqlx.DB
}

func NewPostgresAdRepository(db *sqlx.DB) AdRepository {
	return &postgresAdRepository{db: db}
}

func (r *postgresAdRepository) Create(ctx context.Context, ad *model.Ad) (*model.Ad, error) {
	query := `
		INSERT INTO ads (title, content, category_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, ad.Title, ad.Content, ad.CategoryID, ad.AuthorID)
	err := row.Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return ad, nil
}

func (r *postgresAdRepository) FindByID(ctx context.Context, adID uuid.UUID) (*model.AdDetails, error) {
	var ad model.AdDetails
	query := `
		SELECT a.id, a.title, a.content, a.category_id, c.slug AS category_slug,
		       a.author_id, u.username AS author_name, a.created_at, a.updated_at
		FROM ads a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.id = $1
	`
	err := r.db.GetContext(ctx, &ad, query, adID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &ad, nil
}

func (r *postgresAdRepository) List(ctx context.Context, categorySlug string, page int, limit int) (*PaginatedAds, error) {
	offset := (page - 1) * limit

	baseQuery := `
		SELECT a.id, a.title, a.content, a.category_id, c.slug AS category_slug,
		       a.author_id, COALESCE(u.username, 'unknown') AS author_name,
		       a.created_at, a.updated_at
		FROM ads a
		LEFT JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
	`

	args := []interface{}{}
	argId := 1
	if categorySlug != "" {
		baseQuery += fmt.Sprintf(" WHERE c.slug = $%d", argId)
		args = append(args, categorySlug)
		argId++
	}

	countQuery := "SELECT COUNT(*) FROM (" + baseQuery + ") as count_query"
	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		return nil, err
	}

	baseQuery += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argId, argId+1)
	args = append(args, limit, offset)

	var ads []model.AdDetails
	err = r.db.SelectContext(ctx, &ads, baseQuery, args...)
	if err != nil {
		return nil, err
	}

	if ads == nil {
		ads = []model.AdDetails{}
	}

	totalPages := (totalItems + limit - 1) / limit

	return &PaginatedAds{
		Data: ads,
		Meta: PaginationMeta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  totalItems,
			PerPage:     limit,
		},
	}, nil
}

func (r *postgresAdRepository) Update(ctx context.Context, ad *model.Ad) error {
	query := `
		UPDATE ads SET title = $1, content = $2, category_id = $3, updated_at = now()
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, ad.Title, ad.Content, ad.CategoryID, ad.ID)
	return err
}

func (r *postgresAdRepository) Delete(ctx context.Context, adID uuid.UUID) error {
	query := `DELETE FROM ads WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, adID)
	return err
}

func (r *postgresAdRepository) FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	query := `SELECT id, slug, name FROM categories WHERE slug = $1`
	err := r.db.GetContext(ctx, &category, query, slug)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &category, nil
}

func (r *postgresAdRepository) GetCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.SelectContext(ctx, &categories, "SELECT id, slug, name FROM categories ORDER BY slug")
	return categories, err
}
