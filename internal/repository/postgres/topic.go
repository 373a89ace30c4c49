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

// PostgresTopicRepository implements the TopicRepository interface
type PostgresTopicRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(config *RepositoryConfig) repositories.TopicRepository {
	return &PostgresTopicRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new topic
func (r *PostgresTopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	if topic.ID == "" {
		topic.ID = uuid.New().String()
	}
	now := time.Now()
	topic.CreatedAt = now
	topic.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, topic.ID, topic.Title, topic.Completed, topic.CreatedAt, topic.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create topic: %w", err)
	}

	return nil
}

// List retrieves all topics, incomplete first, newest first within each group
func (r *PostgresTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	query := fmt.Sprintf(`
		SELECT id, title, completed, created_at, updated_at
		FROM %s
		ORDER BY completed ASC, created_at DESC
	`, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}

// GetByID retrieves a topic by ID
func (r *PostgresTopicRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	query := fmt.Sprintf(`
		SELECT id, title, completed, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Topics)

	var t models.Topic
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}

	return &t, nil
}

// Update updates a topic
func (r *PostgresTopicRepository) Update(ctx context.Context, topic *models.Topic) error {
	topic.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, completed = $3, updated_at = $4
		WHERE id = $1
	`, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, topic.ID, topic.Title, topic.Completed, topic.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topic.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a topic
func (r *PostgresTopicRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
