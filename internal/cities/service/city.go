package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	citieserrors "vistos/internal/cities/errors"
	"vistos/internal/cities/repository"
	"vistos/internal/cities/validator"
	"vistos/pkg/config"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/model"
	"vistos/pkg/sanitizer"
	"vistos/pkg/validation"
)

type CityService interface {
	Create(ctx context.Context, city *model.City) error
	GetByID(ctx context.Context, id string) (*model.City, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.City, int64, error)
	Update(ctx context.Context, id string, city *model.City) error
	Delete(ctx context.Context, id string) error
	SearchByName(ctx context.Context, prefix string, limit int) ([]*model.City, error)
}

type cityService struct {
	repo      repository.CityRepository
	validator *validator.CityValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewCityService(
	repo repository.CityRepository,
	cityValidator *validator.CityValidator,
	publisher events.Publisher,
	cfg *config.Config,
) CityService {
	return &cityService{
		repo:      repo,
		validator: cityValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *cityService) sanitize(city *model.City) {
	city.Name = sanitizer.NormalizeName(city.Name)
	city.State = sanitizer.SanitizeCountry(city.State) // same two-letter uppercase shape
	city.Country = sanitizer.SanitizeCountry(city.Country)
}

func (s *cityService) applyDefaults(city *model.City) {
	if city.Country == "" {
		city.Country = s.cfg.DefaultCountry
	}
}

func (s *cityService) Create(ctx context.Context, city *model.City) error {
	s.sanitize(city)
	s.applyDefaults(city)

	if err := s.validate(city); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByNameStateCountry(sessCtx, city.Name, city.State, city.Country)
		if err != nil && !errors.Is(err, citieserrors.ErrNotFound) {
			return apperrors.Internal("Failed to check for existing cities", err)
		}
		if existing != nil {
			return apperrors.Conflict("City with the same name already exists in this state and country")
		}
		return s.repo.Create(sessCtx, city)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create city", "name", city.Name, "error", err)
		return err
	}

	s.publishChange(ctx, events.ActionCreated, city.ID, city)
	s.cfg.Log.Info("City created", "id", city.ID, "name", city.Name, "country", city.Country)
	return nil
}

func (s *cityService) GetByID(ctx context.Context, id string) (*model.City, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("City ID cannot be empty")
	}

	city, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return city, nil
}

func (s *cityService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.City, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	cities, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list cities", "error", err)
		return nil, 0, apperrors.Internal("Failed to list cities", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count cities", "error", err)
		return nil, 0, apperrors.Internal("Failed to count cities", err)
	}

	return cities, count, nil
}

func (s *cityService) Update(ctx context.Context, id string, city *model.City) error {
	if id == "" {
		return apperrors.InvalidInput("City ID cannot be empty")
	}

	s.sanitize(city)
	s.applyDefaults(city)

	if err := s.validate(city); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, city); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionUpdated, id, city)
	s.cfg.Log.Info("City updated", "id", id, "name", city.Name)
	return nil
}

func (s *cityService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("City ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionDeleted, id, nil)
	s.cfg.Log.Info("City deleted", "id", id)
	return nil
}

func (s *cityService) SearchByName(ctx context.Context, prefix string, limit int) ([]*model.City, error) {
	prefix = sanitizer.NormalizeName(prefix)
	if prefix == "" {
		return nil, apperrors.InvalidInput("Search prefix cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)

	cities, err := s.repo.FindByNamePrefix(ctx, prefix, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to search cities", "prefix", prefix, "error", err)
		return nil, apperrors.Internal("Failed to search cities", err)
	}
	return cities, nil
}

func (s *cityService) validate(city *model.City) error {
	err := s.validator.Validate(city)
	if err == nil {
		return nil
	}

	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		s.cfg.Log.Warn("City validation failed", "name", city.Name, "error", err)
		return apperrors.Validation("City validation failed",
			apperrors.FieldDetails(fieldErrors.ByField()))
	}
	return apperrors.Internal("City validation misconfigured", err)
}

func (s *cityService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, citieserrors.ErrNotFound):
		return apperrors.NotFoundWithID("City", id)
	case errors.Is(err, citieserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid city ID format")
	default:
		s.cfg.Log.Error("City repository error", "id", id, "error", err)
		return apperrors.Internal("Failed to access city", err)
	}
}

func (s *cityService) publishChange(ctx context.Context, action events.Action, id string, record any) {
	err := s.publisher.RecordChanged(ctx, events.RecordChange{
		EntityType: "city",
		Action:     action,
		RecordID:   id,
		Record:     record,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish city change event", "id", id, "action", action, "error", err)
	}
}
