package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	cboerrors "vistos/internal/cbocodes/errors"
	"vistos/internal/cbocodes/repository"
	"vistos/internal/cbocodes/validator"
	"vistos/pkg/config"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/model"
	"vistos/pkg/sanitizer"
	"vistos/pkg/validation"
)

type CboCodeService interface {
	Create(ctx context.Context, cbo *model.CboCode) error
	GetByID(ctx context.Context, id string) (*model.CboCode, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.CboCode, int64, error)
	Update(ctx context.Context, id string, cbo *model.CboCode) error
	Delete(ctx context.Context, id string) error
	GetByCode(ctx context.Context, code string) (*model.CboCode, error)
	SearchByTitle(ctx context.Context, prefix string, limit int) ([]*model.CboCode, error)
}

type cboCodeService struct {
	repo      repository.CboCodeRepository
	validator *validator.CboCodeValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewCboCodeService(
	repo repository.CboCodeRepository,
	cboValidator *validator.CboCodeValidator,
	publisher events.Publisher,
	cfg *config.Config,
) CboCodeService {
	return &cboCodeService{
		repo:      repo,
		validator: cboValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *cboCodeService) sanitize(cbo *model.CboCode) {
	cbo.Code = sanitizer.SanitizeCboCode(cbo.Code)
	cbo.Title = sanitizer.NormalizeName(cbo.Title)
	cbo.Description = sanitizer.TrimAndNormalize(cbo.Description)
}

func (s *cboCodeService) Create(ctx context.Context, cbo *model.CboCode) error {
	s.sanitize(cbo)

	if err := s.validate(cbo); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if cbo.Code != "" {
			existing, err := s.repo.FindByCode(sessCtx, cbo.Code)
			if err != nil && !errors.Is(err, cboerrors.ErrNotFound) {
				return apperrors.Internal("Failed to check for existing cbo codes", err)
			}
			if existing != nil {
				return apperrors.Conflict("CBO code already registered")
			}
		}
		return s.repo.Create(sessCtx, cbo)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create cbo code", "code", cbo.Code, "error", err)
		return err
	}

	s.publishChange(ctx, events.ActionCreated, cbo.ID, cbo)
	s.cfg.Log.Info("CBO code created", "id", cbo.ID, "code", cbo.Code, "title", cbo.Title)
	return nil
}

func (s *cboCodeService) GetByID(ctx context.Context, id string) (*model.CboCode, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("CBO code ID cannot be empty")
	}

	cbo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return cbo, nil
}

func (s *cboCodeService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.CboCode, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	cbos, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list cbo codes", "error", err)
		return nil, 0, apperrors.Internal("Failed to list cbo codes", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count cbo codes", "error", err)
		return nil, 0, apperrors.Internal("Failed to count cbo codes", err)
	}

	return cbos, count, nil
}

func (s *cboCodeService) Update(ctx context.Context, id string, cbo *model.CboCode) error {
	if id == "" {
		return apperrors.InvalidInput("CBO code ID cannot be empty")
	}

	s.sanitize(cbo)

	if err := s.validate(cbo); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, cbo); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionUpdated, id, cbo)
	s.cfg.Log.Info("CBO code updated", "id", id, "code", cbo.Code)
	return nil
}

func (s *cboCodeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("CBO code ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionDeleted, id, nil)
	s.cfg.Log.Info("CBO code deleted", "id", id)
	return nil
}

func (s *cboCodeService) GetByCode(ctx context.Context, code string) (*model.CboCode, error) {
	code = sanitizer.SanitizeCboCode(code)
	if code == "" {
		return nil, apperrors.InvalidInput("CBO code cannot be empty")
	}

	cbo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, cboerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("CBO code", code)
		}
		s.cfg.Log.Error("Failed to look up cbo code", "code", code, "error", err)
		return nil, apperrors.Internal("Failed to look up cbo code", err)
	}
	return cbo, nil
}

func (s *cboCodeService) SearchByTitle(ctx context.Context, prefix string, limit int) ([]*model.CboCode, error) {
	prefix = sanitizer.NormalizeName(prefix)
	if prefix == "" {
		return nil, apperrors.InvalidInput("Search prefix cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)

	cbos, err := s.repo.FindByTitlePrefix(ctx, prefix, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to search cbo codes", "prefix", prefix, "error", err)
		return nil, apperrors.Internal("Failed to search cbo codes", err)
	}
	return cbos, nil
}

func (s *cboCodeService) validate(cbo *model.CboCode) error {
	err := s.validator.Validate(cbo)
	if err == nil {
		return nil
	}

	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		s.cfg.Log.Warn("CBO code validation failed", "code", cbo.Code, "error", err)
		return apperrors.Validation("CBO code validation failed",
			apperrors.FieldDetails(fieldErrors.ByField()))
	}
	return apperrors.Internal("CBO code validation misconfigured", err)
}

func (s *cboCodeService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, cboerrors.ErrNotFound):
		return apperrors.NotFoundWithID("CBO code", id)
	case errors.Is(err, cboerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid CBO code ID format")
	default:
		s.cfg.Log.Error("CBO code repository error", "id", id, "error", err)
		return apperrors.Internal("Failed to access cbo code", err)
	}
}

func (s *cboCodeService) publishChange(ctx context.Context, action events.Action, id string, record any) {
	err := s.publisher.RecordChanged(ctx, events.RecordChange{
		EntityType: "cboCode",
		Action:     action,
		RecordID:   id,
		Record:     record,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish cbo code change event", "id", id, "action", action, "error", err)
	}
}
