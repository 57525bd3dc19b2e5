package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	consulateerrors "vistos/internal/consulates/errors"
	"vistos/internal/consulates/repository"
	"vistos/internal/consulates/validator"
	"vistos/pkg/config"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/model"
	"vistos/pkg/sanitizer"
	"vistos/pkg/validation"
)

type ConsulateService interface {
	Create(ctx context.Context, consulate *model.Consulate) error
	GetByID(ctx context.Context, id string) (*model.Consulate, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Consulate, int64, error)
	Update(ctx context.Context, id string, consulate *model.Consulate) error
	Delete(ctx context.Context, id string) error
	GetByCountry(ctx context.Context, country string, limit int) ([]*model.Consulate, error)
}

type consulateService struct {
	repo      repository.ConsulateRepository
	validator *validator.ConsulateValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewConsulateService(
	repo repository.ConsulateRepository,
	consulateValidator *validator.ConsulateValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ConsulateService {
	return &consulateService{
		repo:      repo,
		validator: consulateValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *consulateService) sanitize(consulate *model.Consulate) {
	consulate.Name = sanitizer.NormalizeName(consulate.Name)
	consulate.Country = sanitizer.SanitizeCountry(consulate.Country)
	consulate.Email = sanitizer.NormalizeEmail(consulate.Email)
	consulate.Phone = sanitizer.SanitizePhone(consulate.Phone)
	consulate.Website = strings.TrimSpace(consulate.Website)
	consulate.CityID = strings.TrimSpace(consulate.CityID)
}

func (s *consulateService) Create(ctx context.Context, consulate *model.Consulate) error {
	s.sanitize(consulate)

	if err := s.validate(consulate); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByNameCountry(sessCtx, consulate.Name, consulate.Country)
		if err != nil && !errors.Is(err, consulateerrors.ErrNotFound) {
			return apperrors.Internal("Failed to check for existing consulates", err)
		}
		if existing != nil {
			return apperrors.Conflict("Consulate with the same name already exists in this country")
		}
		return s.repo.Create(sessCtx, consulate)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create consulate", "name", consulate.Name, "error", err)
		return err
	}

	s.publishChange(ctx, events.ActionCreated, consulate.ID, consulate)
	s.cfg.Log.Info("Consulate created", "id", consulate.ID, "name", consulate.Name, "country", consulate.Country)
	return nil
}

func (s *consulateService) GetByID(ctx context.Context, id string) (*model.Consulate, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Consulate ID cannot be empty")
	}

	consulate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return consulate, nil
}

func (s *consulateService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Consulate, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	consulates, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list consulates", "error", err)
		return nil, 0, apperrors.Internal("Failed to list consulates", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count consulates", "error", err)
		return nil, 0, apperrors.Internal("Failed to count consulates", err)
	}

	return consulates, count, nil
}

func (s *consulateService) Update(ctx context.Context, id string, consulate *model.Consulate) error {
	if id == "" {
		return apperrors.InvalidInput("Consulate ID cannot be empty")
	}

	s.sanitize(consulate)

	if err := s.validate(consulate); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, consulate); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionUpdated, id, consulate)
	s.cfg.Log.Info("Consulate updated", "id", id, "name", consulate.Name)
	return nil
}

func (s *consulateService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Consulate ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionDeleted, id, nil)
	s.cfg.Log.Info("Consulate deleted", "id", id)
	return nil
}

func (s *consulateService) GetByCountry(ctx context.Context, country string, limit int) ([]*model.Consulate, error) {
	country = sanitizer.SanitizeCountry(country)
	if len(country) != 2 {
		return nil, apperrors.InvalidInput("Country must be a two-letter country code")
	}
	limit = config.NormalizePaginationLimit(limit)

	consulates, err := s.repo.FindByCountry(ctx, country, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to search consulates", "country", country, "error", err)
		return nil, apperrors.Internal("Failed to search consulates", err)
	}
	return consulates, nil
}

func (s *consulateService) validate(consulate *model.Consulate) error {
	err := s.validator.Validate(consulate)
	if err == nil {
		return nil
	}

	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		s.cfg.Log.Warn("Consulate validation failed", "name", consulate.Name, "error", err)
		return apperrors.Validation("Consulate validation failed",
			apperrors.FieldDetails(fieldErrors.ByField()))
	}
	return apperrors.Internal("Consulate validation misconfigured", err)
}

func (s *consulateService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, consulateerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Consulate", id)
	case errors.Is(err, consulateerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid consulate ID format")
	default:
		s.cfg.Log.Error("Consulate repository error", "id", id, "error", err)
		return apperrors.Internal("Failed to access consulate", err)
	}
}

func (s *consulateService) publishChange(ctx context.Context, action events.Action, id string, record any) {
	err := s.publisher.RecordChanged(ctx, events.RecordChange{
		EntityType: "consulate",
		Action:     action,
		RecordID:   id,
		Record:     record,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish consulate change event", "id", id, "action", action, "error", err)
	}
}
