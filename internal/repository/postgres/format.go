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

// PostgresFormatRepository implements the FormatRepository interface
type PostgresFormatRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFormatRepository creates a new format repository
func NewFormatRepository(config *RepositoryConfig) repositories.FormatRepository {
	return &PostgresFormatRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new format with its posting rules
func (r *PostgresFormatRepository) Create(ctx context.Context, format *models.Format) error {
	if format.ID == "" {
		format.ID = uuid.New().String()
	}
	if format.PostsCount < 1 {
		format.PostsCount = 1
	}
	if format.ContextFiles == nil {
		format.ContextFiles = []string{}
	}
	now := time.Now()
	format.CreatedAt = now
	format.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, platform, prompt, posts_count, context_files, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Formats)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		format.ID,
		format.Name,
		format.Platform,
		format.Prompt,
		format.PostsCount,
		format.ContextFiles,
		format.CreatedAt,
		format.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create format: %w", err)
	}

	return r.insertRules(ctx, format)
}

// GetByID retrieves a format (with posting rules) by ID
func (r *PostgresFormatRepository) GetByID(ctx context.Context, id string) (*models.Format, error) {
	query := fmt.Sprintf(`
		SELECT id, name, platform, prompt, posts_count, context_files, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Formats)

	var format models.Format
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&format.ID,
		&format.Name,
		&format.Platform,
		&format.Prompt,
		&format.PostsCount,
		&format.ContextFiles,
		&format.CreatedAt,
		&format.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("format %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get format: %w", err)
	}

	rules, err := r.listRules(ctx, []string{format.ID})
	if err != nil {
		return nil, err
	}
	format.PostingRules = rules[format.ID]

	return &format, nil
}

// List retrieves all formats with posting rules, ordered by name
func (r *PostgresFormatRepository) List(ctx context.Context) ([]models.Format, error) {
	query := fmt.Sprintf(`
		SELECT id, name, platform, prompt, posts_count, context_files, created_at, updated_at
		FROM %s
		ORDER BY name ASC
	`, r.tables.Formats)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	defer rows.Close()

	var formats []models.Format
	var ids []string
	for rows.Next() {
		var f models.Format
		if err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Platform,
			&f.Prompt,
			&f.PostsCount,
			&f.ContextFiles,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan format: %w", err)
		}
		formats = append(formats, f)
		ids = append(ids, f.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return formats, nil
	}

	rules, err := r.listRules(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range formats {
		formats[i].PostingRules = rules[formats[i].ID]
	}

	return formats, nil
}

// Update updates a format and replaces its posting rules
func (r *PostgresFormatRepository) Update(ctx context.Context, format *models.Format) error {
	if format.PostsCount < 1 {
		format.PostsCount = 1
	}
	if format.ContextFiles == nil {
		format.ContextFiles = []string{}
	}
	format.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, platform = $3, prompt = $4, posts_count = $5, context_files = $6, updated_at = $7
		WHERE id = $1
	`, r.tables.Formats)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		format.ID,
		format.Name,
		format.Platform,
		format.Prompt,
		format.PostsCount,
		format.ContextFiles,
		format.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update format: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("format %s: %w", format.ID, domain.ErrNotFound)
	}

	// Replace rules wholesale, matching the save semantics of the editor
	deleteRules := fmt.Sprintf(`DELETE FROM %s WHERE format_id = $1`, r.tables.PostingRules)
	if _, err := executor.Exec(ctx, deleteRules, format.ID); err != nil {
		return fmt.Errorf("delete posting rules: %w", err)
	}

	return r.insertRules(ctx, format)
}

// Delete deletes a format; rules, variants and feedback cascade
func (r *PostgresFormatRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Formats)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete format: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("format %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFormatRepository) insertRules(ctx context.Context, format *models.Format) error {
	if len(format.PostingRules) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, format_id, frequency, day_of_week, time_of_day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.PostingRules)

	executor := GetExecutor(ctx, r.pool)
	now := time.Now()
	for i := range format.PostingRules {
		rule := &format.PostingRules[i]
		if rule.ID == "" {
			rule.ID = uuid.New().String()
		}
		rule.FormatID = format.ID
		// Preserve insertion order under a single clock reading
		rule.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)

		if _, err := executor.Exec(ctx, query,
			rule.ID,
			rule.FormatID,
			rule.Frequency,
			rule.DayOfWeek,
			rule.TimeOfDay,
			rule.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert posting rule: %w", err)
		}
	}

	return nil
}

// listRules loads posting rules for the given format IDs, ordered by
// creation so SchedulingRule() is deterministic.
func (r *PostgresFormatRepository) listRules(ctx context.Context, formatIDs []string) (map[string][]models.PostingRule, error) {
	query := fmt.Sprintf(`
		SELECT id, format_id, frequency, day_of_week, time_of_day, created_at
		FROM %s
		WHERE format_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`, r.tables.PostingRules)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, formatIDs)
	if err != nil {
		return nil, fmt.Errorf("list posting rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[string][]models.PostingRule)
	for rows.Next() {
		var rule models.PostingRule
		if err := rows.Scan(
			&rule.ID,
			&rule.FormatID,
			&rule.Frequency,
			&rule.DayOfWeek,
			&rule.TimeOfDay,
			&rule.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan posting rule: %w", err)
		}
		rules[rule.FormatID] = append(rules[rule.FormatID], rule)
	}

	return rules, rows.Err()
}

// PostgresFeedbackRepository implements the FeedbackRepository interface
type PostgresFeedbackRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(config *RepositoryConfig) repositories.FeedbackRepository {
	return &PostgresFeedbackRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create appends a feedback entry
func (r *PostgresFeedbackRepository) Create(ctx context.Context, fb *models.FormatFeedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	fb.CreatedAt = time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, format_id, document_id, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.FormatFeedback)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, fb.ID, fb.FormatID, fb.DocumentID, fb.Feedback, fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}

	return nil
}

// ListRecentByFormat retrieves the newest feedback entries for a format
func (r *PostgresFeedbackRepository) ListRecentByFormat(ctx context.Context, formatID string, limit int) ([]models.FormatFeedback, error) {
	query := fmt.Sprintf(`
		SELECT id, format_id, document_id, feedback, created_at
		FROM %s
		WHERE format_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.FormatFeedback)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, formatID, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var entries []models.FormatFeedback
	for rows.Next() {
		var fb models.FormatFeedback
		if err := rows.Scan(&fb.ID, &fb.FormatID, &fb.DocumentID, &fb.Feedback, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		entries = append(entries, fb)
	}

	return entries, rows.Err()
}
