package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresContextRepository implements the ContextRepository interface
type PostgresContextRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewContextRepository creates a new context document repository
func NewContextRepository(config *RepositoryConfig) repositories.ContextRepository {
	return &PostgresContextRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create persists an extracted context document
func (r *PostgresContextRepository) Create(ctx context.Context, doc *models.ContextDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	doc.CreatedAt = time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, filename, content, object_key, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
	`, r.tables.ContextDocuments)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, doc.ID, doc.Filename, doc.Content, doc.ObjectKey, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("create context document: %w", err)
	}

	return nil
}

// GetByID retrieves a context document by ID
func (r *PostgresContextRepository) GetByID(ctx context.Context, id string) (*models.ContextDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, filename, content, COALESCE(object_key, ''), created_at
		FROM %s
		WHERE id = $1
	`, r.tables.ContextDocuments)

	var doc models.ContextDocument
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Filename,
		&doc.Content,
		&doc.ObjectKey,
		&doc.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("context document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get context document: %w", err)
	}

	return &doc, nil
}

// ListRecent retrieves the most recently uploaded documents with content
func (r *PostgresContextRepository) ListRecent(ctx context.Context, limit int) ([]models.ContextDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, filename, content, COALESCE(object_key, ''), created_at
		FROM %s
		ORDER BY created_at DESC
		LIMIT $1
	`, r.tables.ContextDocuments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list context documents: %w", err)
	}
	defer rows.Close()

	return scanContextDocuments(rows)
}

// ListByFilenames retrieves documents whose filename is in the given set
func (r *PostgresContextRepository) ListByFilenames(ctx context.Context, filenames []string) ([]models.ContextDocument, error) {
	if len(filenames) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, filename, content, COALESCE(object_key, ''), created_at
		FROM %s
		WHERE filename = ANY($1)
		ORDER BY created_at DESC
	`, r.tables.ContextDocuments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, filenames)
	if err != nil {
		return nil, fmt.Errorf("list context documents by filename: %w", err)
	}
	defer rows.Close()

	return scanContextDocuments(rows)
}

// ListMetadata retrieves id/filename/createdAt for all documents, newest first
func (r *PostgresContextRepository) ListMetadata(ctx context.Context) ([]models.ContextDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, filename, created_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.ContextDocuments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list context metadata: %w", err)
	}
	defer rows.Close()

	var docs []models.ContextDocument
	for rows.Next() {
		var doc models.ContextDocument
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan context metadata: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Delete removes a context document record
func (r *PostgresContextRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.ContextDocuments)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete context document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("context document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanContextDocuments(rows pgx.Rows) ([]models.ContextDocument, error) {
	var docs []models.ContextDocument
	for rows.Next() {
		var doc models.ContextDocument
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Content, &doc.ObjectKey, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan context document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// PostgresIkigaiRepository implements the IkigaiRepository interface.
// The mission record is a true singleton: one well-known row, upserted.
type PostgresIkigaiRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewIkigaiRepository creates a new ikigai repository
func NewIkigaiRepository(config *RepositoryConfig) repositories.IkigaiRepository {
	return &PostgresIkigaiRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get retrieves the mission record
func (r *PostgresIkigaiRepository) Get(ctx context.Context) (*models.Ikigai, error) {
	query := fmt.Sprintf(`
		SELECT id, mission, purpose, values_text, goals, audience, voice, enemy, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Ikigai)

	var ik models.Ikigai
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, models.IkigaiID).Scan(
		&ik.ID,
		&ik.Mission,
		&ik.Purpose,
		&ik.Values,
		&ik.Goals,
		&ik.Audience,
		&ik.Voice,
		&ik.Enemy,
		&ik.CreatedAt,
		&ik.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("ikigai: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get ikigai: %w", err)
	}

	return &ik, nil
}

// Upsert creates or replaces the mission record
func (r *PostgresIkigaiRepository) Upsert(ctx context.Context, ikigai *models.Ikigai) error {
	ikigai.ID = models.IkigaiID
	now := time.Now()
	ikigai.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, mission, purpose, values_text, goals, audience, voice, enemy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (id) DO UPDATE SET
			mission = EXCLUDED.mission,
			purpose = EXCLUDED.purpose,
			values_text = EXCLUDED.values_text,
			goals = EXCLUDED.goals,
			audience = EXCLUDED.audience,
			voice = EXCLUDED.voice,
			enemy = EXCLUDED.enemy,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Ikigai)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		ikigai.ID,
		ikigai.Mission,
		ikigai.Purpose,
		ikigai.Values,
		ikigai.Goals,
		ikigai.Audience,
		ikigai.Voice,
		ikigai.Enemy,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert ikigai: %w", err)
	}

	return nil
}
