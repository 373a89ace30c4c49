package service

import (
	"context"
	"log/slog"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// IkigaiRequest carries the mission record fields. All fields are
// free-text; an empty save is allowed while the user fills it out.
type IkigaiRequest struct {
	Mission  string  `json:"mission"`
	Purpose  string  `json:"purpose"`
	Values   string  `json:"values"`
	Goals    string  `json:"goals"`
	Audience string  `json:"audience"`
	Voice    string  `json:"voice"`
	Enemy    *string `json:"enemy"`
}

// IkigaiService manages the singleton mission record.
type IkigaiService struct {
	ikigaiRepo repositories.IkigaiRepository
	logger     *slog.Logger
}

// NewIkigaiService creates a new ikigai service
func NewIkigaiService(ikigaiRepo repositories.IkigaiRepository, logger *slog.Logger) *IkigaiService {
	return &IkigaiService{ikigaiRepo: ikigaiRepo, logger: logger}
}

// Get retrieves the mission record, or domain.ErrNotFound when the
// user has never saved one.
func (s *IkigaiService) Get(ctx context.Context) (*models.Ikigai, error) {
	return s.ikigaiRepo.Get(ctx)
}

// Save creates or replaces the mission record. There is exactly one
// per install; saves always write the same row.
func (s *IkigaiService) Save(ctx context.Context, req *IkigaiRequest) (*models.Ikigai, error) {
	ikigai := &models.Ikigai{
		ID:       models.IkigaiID,
		Mission:  req.Mission,
		Purpose:  req.Purpose,
		Values:   req.Values,
		Goals:    req.Goals,
		Audience: req.Audience,
		Voice:    req.Voice,
		Enemy:    req.Enemy,
	}

	if err := s.ikigaiRepo.Upsert(ctx, ikigai); err != nil {
		return nil, err
	}

	s.logger.Info("mission record saved")
	return ikigai, nil
}
