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

// PostgresPlaybookRepository implements the PlaybookRepository interface
type PostgresPlaybookRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPlaybookRepository creates a new playbook repository
func NewPlaybookRepository(config *RepositoryConfig) repositories.PlaybookRepository {
	return &PostgresPlaybookRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new playbook
func (r *PostgresPlaybookRepository) Create(ctx context.Context, pb *models.Playbook) error {
	if pb.ID == "" {
		pb.ID = uuid.New().String()
	}
	now := time.Now()
	pb.CreatedAt = now
	pb.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, description, content, prompt, source_document_id, is_draft, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Playbooks)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		pb.ID,
		pb.Title,
		pb.Description,
		pb.Content,
		pb.Prompt,
		pb.SourceDocumentID,
		pb.IsDraft,
		pb.CreatedAt,
		pb.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create playbook: %w", err)
	}

	return nil
}

// GetByID retrieves a playbook with its slides and source document title
func (r *PostgresPlaybookRepository) GetByID(ctx context.Context, id string) (*models.Playbook, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.content, p.prompt, p.source_document_id, p.is_draft,
		       p.created_at, p.updated_at, COALESCE(d.title, '')
		FROM %s p
		LEFT JOIN %s d ON d.id = p.source_document_id
		WHERE p.id = $1
	`, r.tables.Playbooks, r.tables.Documents)

	var pb models.Playbook
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&pb.ID,
		&pb.Title,
		&pb.Description,
		&pb.Content,
		&pb.Prompt,
		&pb.SourceDocumentID,
		&pb.IsDraft,
		&pb.CreatedAt,
		&pb.UpdatedAt,
		&pb.SourceDocumentTitle,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("playbook %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get playbook: %w", err)
	}

	slides, err := r.listSlides(ctx, pb.ID)
	if err != nil {
		return nil, err
	}
	pb.Slides = slides

	return &pb, nil
}

// List retrieves all playbooks with slides, most recently updated first
func (r *PostgresPlaybookRepository) List(ctx context.Context) ([]models.Playbook, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.content, p.prompt, p.source_document_id, p.is_draft,
		       p.created_at, p.updated_at, COALESCE(d.title, '')
		FROM %s p
		LEFT JOIN %s d ON d.id = p.source_document_id
		ORDER BY p.updated_at DESC
	`, r.tables.Playbooks, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list playbooks: %w", err)
	}
	defer rows.Close()

	var playbooks []models.Playbook
	for rows.Next() {
		var pb models.Playbook
		if err := rows.Scan(
			&pb.ID,
			&pb.Title,
			&pb.Description,
			&pb.Content,
			&pb.Prompt,
			&pb.SourceDocumentID,
			&pb.IsDraft,
			&pb.CreatedAt,
			&pb.UpdatedAt,
			&pb.SourceDocumentTitle,
		); err != nil {
			return nil, fmt.Errorf("scan playbook: %w", err)
		}
		playbooks = append(playbooks, pb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range playbooks {
		slides, err := r.listSlides(ctx, playbooks[i].ID)
		if err != nil {
			return nil, err
		}
		playbooks[i].Slides = slides
	}

	return playbooks, nil
}

// Update updates a playbook's editable fields
func (r *PostgresPlaybookRepository) Update(ctx context.Context, pb *models.Playbook) error {
	pb.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, content = $4, is_draft = $5, updated_at = $6
		WHERE id = $1
	`, r.tables.Playbooks)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, pb.ID, pb.Title, pb.Description, pb.Content, pb.IsDraft, pb.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update playbook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("playbook %s: %w", pb.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a playbook; slides cascade
func (r *PostgresPlaybookRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Playbooks)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete playbook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("playbook %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ReplaceSlides deletes and recreates the full slide set for a playbook
func (r *PostgresPlaybookRepository) ReplaceSlides(ctx context.Context, playbookID string, slides []models.PlaybookSlide) ([]models.PlaybookSlide, error) {
	executor := GetExecutor(ctx, r.pool)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE playbook_id = $1`, r.tables.PlaybookSlides)
	if _, err := executor.Exec(ctx, deleteQuery, playbookID); err != nil {
		return nil, fmt.Errorf("delete slides: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (id, playbook_id, slide_order, title, content, layout, images, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.PlaybookSlides)

	now := time.Now()
	created := make([]models.PlaybookSlide, 0, len(slides))
	for _, slide := range slides {
		slide.ID = uuid.New().String()
		slide.PlaybookID = playbookID
		slide.CreatedAt = now
		if slide.Layout == "" {
			slide.Layout = "text"
		}

		if _, err := executor.Exec(ctx, insertQuery,
			slide.ID,
			slide.PlaybookID,
			slide.Order,
			slide.Title,
			slide.Content,
			slide.Layout,
			slide.Images,
			slide.Position,
			slide.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("insert slide: %w", err)
		}
		created = append(created, slide)
	}

	return created, nil
}

func (r *PostgresPlaybookRepository) listSlides(ctx context.Context, playbookID string) ([]models.PlaybookSlide, error) {
	query := fmt.Sprintf(`
		SELECT id, playbook_id, slide_order, title, content, layout, images, position, created_at
		FROM %s
		WHERE playbook_id = $1
		ORDER BY slide_order ASC
	`, r.tables.PlaybookSlides)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, playbookID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	var slides []models.PlaybookSlide
	for rows.Next() {
		var s models.PlaybookSlide
		if err := rows.Scan(
			&s.ID,
			&s.PlaybookID,
			&s.Order,
			&s.Title,
			&s.Content,
			&s.Layout,
			&s.Images,
			&s.Position,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		slides = append(slides, s)
	}

	return slides, rows.Err()
}
