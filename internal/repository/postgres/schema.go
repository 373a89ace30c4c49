package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates all tables if they do not exist. DDL is idempotent
// so this is safe to run on every startup. Table names are interpolated
// before the SQL reaches the database; prefixes come from config, not
// user input.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, t *TableNames) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			parent_id TEXT REFERENCES %s(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Folders, t.Folders),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			folder_id TEXT REFERENCES %s(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			is_draft BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Documents, t.Folders),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			version INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (document_id, version)
		)`, t.DocumentVersions, t.Documents),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			platform TEXT NOT NULL,
			prompt TEXT NOT NULL,
			posts_count INTEGER NOT NULL DEFAULT 1,
			context_files TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Formats),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			format_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			frequency INTEGER NOT NULL DEFAULT 1,
			day_of_week INTEGER,
			time_of_day TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.PostingRules, t.Formats),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			format_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			post_index INTEGER NOT NULL DEFAULT 0,
			content TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (document_id, format_id, post_index)
		)`, t.DocumentFormats, t.Documents, t.Formats),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			format_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			document_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			feedback TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.FormatFeedback, t.Formats, t.Documents),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			content TEXT NOT NULL,
			object_key TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.ContextDocuments),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			mission TEXT NOT NULL DEFAULT '',
			purpose TEXT NOT NULL DEFAULT '',
			values_text TEXT NOT NULL DEFAULT '',
			goals TEXT NOT NULL DEFAULT '',
			audience TEXT NOT NULL DEFAULT '',
			voice TEXT NOT NULL DEFAULT '',
			enemy TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Ikigai),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			document_format_id TEXT REFERENCES %s(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			platform TEXT NOT NULL,
			scheduled_date TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'SCHEDULED',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.CalendarPosts, t.DocumentFormats),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Topics),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			prompt TEXT NOT NULL DEFAULT '',
			source_document_id TEXT REFERENCES %s(id) ON DELETE SET NULL,
			is_draft BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.Playbooks, t.Documents),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			playbook_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			slide_order INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			layout TEXT NOT NULL DEFAULT 'text',
			images TEXT,
			position TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, t.PlaybookSlides, t.Playbooks),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
