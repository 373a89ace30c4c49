package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresVariantRepository implements the VariantRepository interface
type PostgresVariantRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewVariantRepository creates a new variant repository
func NewVariantRepository(config *RepositoryConfig) repositories.VariantRepository {
	return &PostgresVariantRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new variant
func (r *PostgresVariantRepository) Create(ctx context.Context, v *models.GeneratedVariant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Status == "" {
		v.Status = models.VariantStatusPending
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, format_id, post_index, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.DocumentFormats)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		v.ID,
		v.DocumentID,
		v.FormatID,
		v.PostIndex,
		v.Content,
		v.Status,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("variant %d already exists for this document and format", v.PostIndex),
				ResourceType: "variant",
			}
		}
		return fmt.Errorf("create variant: %w", err)
	}

	return nil
}

// GetByID retrieves a variant by ID
func (r *PostgresVariantRepository) GetByID(ctx context.Context, id string) (*models.GeneratedVariant, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, format_id, post_index, content, status, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.DocumentFormats)

	var v models.GeneratedVariant
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.DocumentID,
		&v.FormatID,
		&v.PostIndex,
		&v.Content,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("variant %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}

	return &v, nil
}

// GetByDocumentAndFormat retrieves the first variant for a (document, format) pair
func (r *PostgresVariantRepository) GetByDocumentAndFormat(ctx context.Context, documentID, formatID string) (*models.GeneratedVariant, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, format_id, post_index, content, status, created_at, updated_at
		FROM %s
		WHERE document_id = $1 AND format_id = $2
		ORDER BY post_index ASC
		LIMIT 1
	`, r.tables.DocumentFormats)

	var v models.GeneratedVariant
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, documentID, formatID).Scan(
		&v.ID,
		&v.DocumentID,
		&v.FormatID,
		&v.PostIndex,
		&v.Content,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("variant for document %s and format %s: %w", documentID, formatID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}

	return &v, nil
}

// ListByDocument retrieves all variants for a document with their formats
func (r *PostgresVariantRepository) ListByDocument(ctx context.Context, documentID string) ([]models.GeneratedVariant, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.document_id, v.format_id, v.post_index, v.content, v.status, v.created_at, v.updated_at,
		       f.id, f.name, f.platform, f.prompt, f.posts_count, f.context_files, f.created_at, f.updated_at
		FROM %s v
		JOIN %s f ON f.id = v.format_id
		WHERE v.document_id = $1
		ORDER BY f.name ASC, v.post_index ASC
	`, r.tables.DocumentFormats, r.tables.Formats)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []models.GeneratedVariant
	for rows.Next() {
		var v models.GeneratedVariant
		var f models.Format
		if err := rows.Scan(
			&v.ID,
			&v.DocumentID,
			&v.FormatID,
			&v.PostIndex,
			&v.Content,
			&v.Status,
			&v.CreatedAt,
			&v.UpdatedAt,
			&f.ID,
			&f.Name,
			&f.Platform,
			&f.Prompt,
			&f.PostsCount,
			&f.ContextFiles,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		v.Format = &f
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

// DeleteByDocument removes all variants for a document
func (r *PostgresVariantRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentFormats)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete variants: %w", err)
	}

	return nil
}

// Update overwrites a variant's content and status
func (r *PostgresVariantRepository) Update(ctx context.Context, v *models.GeneratedVariant) error {
	v.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $2, status = $3, updated_at = $4
		WHERE id = $1
	`, r.tables.DocumentFormats)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, v.ID, v.Content, v.Status, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("variant %s: %w", v.ID, domain.ErrNotFound)
	}

	return nil
}
