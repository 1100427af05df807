package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// DoctorService handles doctor registration and lookup
type DoctorService struct {
	repo repositories.DoctorRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(repo repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repo: repo}
}

// Create registers a new doctor
func (s *DoctorService) Create(ctx context.Context, name string) (*entities.Doctor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("doctor name is required")
	}

	now := time.Now()
	doctor := &entities.Doctor{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

// List returns all registered doctors
func (s *DoctorService) List(ctx context.Context) ([]*entities.Doctor, error) {
	return s.repo.List(ctx)
}
