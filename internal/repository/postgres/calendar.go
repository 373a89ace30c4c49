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

// PostgresCalendarRepository implements the CalendarRepository interface
type PostgresCalendarRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(config *RepositoryConfig) repositories.CalendarRepository {
	return &PostgresCalendarRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new calendar post
func (r *PostgresCalendarRepository) Create(ctx context.Context, post *models.CalendarPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Status == "" {
		post.Status = models.CalendarStatusScheduled
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_format_id, title, content, platform, scheduled_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.CalendarPosts)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		post.ID,
		post.VariantID,
		post.Title,
		post.Content,
		post.Platform,
		post.ScheduledDate,
		post.Status,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create calendar post: %w", err)
	}

	return nil
}

// List retrieves all calendar posts ordered by scheduled date
func (r *PostgresCalendarRepository) List(ctx context.Context) ([]models.CalendarPost, error) {
	query := fmt.Sprintf(`
		SELECT id, document_format_id, title, content, platform, scheduled_date, status, created_at, updated_at
		FROM %s
		ORDER BY scheduled_date ASC
	`, r.tables.CalendarPosts)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list calendar posts: %w", err)
	}
	defer rows.Close()

	var posts []models.CalendarPost
	for rows.Next() {
		var p models.CalendarPost
		if err := rows.Scan(
			&p.ID,
			&p.VariantID,
			&p.Title,
			&p.Content,
			&p.Platform,
			&p.ScheduledDate,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan calendar post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// GetByID retrieves a calendar post by ID
func (r *PostgresCalendarRepository) GetByID(ctx context.Context, id string) (*models.CalendarPost, error) {
	query := fmt.Sprintf(`
		SELECT id, document_format_id, title, content, platform, scheduled_date, status, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.CalendarPosts)

	var p models.CalendarPost
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.VariantID,
		&p.Title,
		&p.Content,
		&p.Platform,
		&p.ScheduledDate,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("calendar post %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get calendar post: %w", err)
	}

	return &p, nil
}

// Update applies status and/or schedule changes to a post
func (r *PostgresCalendarRepository) Update(ctx context.Context, post *models.CalendarPost) error {
	post.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, scheduled_date = $3, updated_at = $4
		WHERE id = $1
	`, r.tables.CalendarPosts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, post.ID, post.Status, post.ScheduledDate, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update calendar post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("calendar post %s: %w", post.ID, domain.ErrNotFound)
	}

	return nil
}
