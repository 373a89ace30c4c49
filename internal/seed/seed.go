// Package seed provides the built-in default formats. A fresh install
// has no formats; the first generation run (or an explicit call) plants
// these so the app is useful out of the box.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

//go:embed formats.yaml
var seedFiles embed.FS

type formatsFile struct {
	Formats []formatSpec `yaml:"formats"`
}

type formatSpec struct {
	Name         string     `yaml:"name"`
	Platform     string     `yaml:"platform"`
	Prompt       string     `yaml:"prompt"`
	PostsCount   int        `yaml:"postsCount"`
	PostingRules []ruleSpec `yaml:"postingRules"`
}

type ruleSpec struct {
	Frequency int     `yaml:"frequency"`
	DayOfWeek *int    `yaml:"dayOfWeek"`
	TimeOfDay *string `yaml:"timeOfDay"`
}

// DefaultFormats parses the embedded seed file into format models.
func DefaultFormats() ([]models.Format, error) {
	data, err := seedFiles.ReadFile("formats.yaml")
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var file formatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	formats := make([]models.Format, 0, len(file.Formats))
	for _, def := range file.Formats {
		f := models.Format{
			Name:       def.Name,
			Platform:   def.Platform,
			Prompt:     def.Prompt,
			PostsCount: def.PostsCount,
		}
		if f.PostsCount < 1 {
			f.PostsCount = 1
		}
		for _, r := range def.PostingRules {
			f.PostingRules = append(f.PostingRules, models.PostingRule{
				Frequency: r.Frequency,
				DayOfWeek: r.DayOfWeek,
				TimeOfDay: r.TimeOfDay,
			})
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// EnsureDefaultFormats creates the built-in formats when none exist yet
// and returns the resulting format list.
func EnsureDefaultFormats(ctx context.Context, repo repositories.FormatRepository, logger *slog.Logger) ([]models.Format, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	defaults, err := DefaultFormats()
	if err != nil {
		return nil, err
	}

	for i := range defaults {
		if err := repo.Create(ctx, &defaults[i]); err != nil {
			return nil, fmt.Errorf("create default format %q: %w", defaults[i].Name, err)
		}
	}
	logger.Info("seeded default formats", "count", len(defaults))

	return repo.List(ctx)
}
