package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	reqerrors "vistos/internal/requirements/errors"
	"vistos/internal/requirements/repository"
	"vistos/internal/requirements/validator"
	"vistos/pkg/config"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/model"
	"vistos/pkg/sanitizer"
	"vistos/pkg/validation"
)

type RequirementService interface {
	Create(ctx context.Context, req *model.LegalFrameworkInfoRequirement) error
	GetByID(ctx context.Context, id string) (*model.LegalFrameworkInfoRequirement, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.LegalFrameworkInfoRequirement, int64, error)
	Update(ctx context.Context, id string, req *model.LegalFrameworkInfoRequirement) error
	Delete(ctx context.Context, id string) error
	GetByLegalFramework(ctx context.Context, legalFrameworkID string, limit int) ([]*model.LegalFrameworkInfoRequirement, error)
}

type requirementService struct {
	repo      repository.RequirementRepository
	validator *validator.RequirementValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewRequirementService(
	repo repository.RequirementRepository,
	reqValidator *validator.RequirementValidator,
	publisher events.Publisher,
	cfg *config.Config,
) RequirementService {
	return &requirementService{
		repo:      repo,
		validator: reqValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// sanitize trims identifiers and paths. Enum fields are left untouched:
// case-fixing them would hide typos the validator should report.
func (s *requirementService) sanitize(req *model.LegalFrameworkInfoRequirement) {
	req.LegalFrameworkID = strings.TrimSpace(req.LegalFrameworkID)
	req.EntityType = strings.TrimSpace(req.EntityType)
	req.FieldPath = strings.TrimSpace(req.FieldPath)
	req.ResponsibleParty = strings.TrimSpace(req.ResponsibleParty)
	req.Description = sanitizer.TrimAndNormalize(req.Description)
}

func (s *requirementService) Create(ctx context.Context, req *model.LegalFrameworkInfoRequirement) error {
	s.sanitize(req)

	if err := s.validate(req); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByFrameworkEntityField(sessCtx, req.LegalFrameworkID, req.EntityType, req.FieldPath)
		if err != nil && !errors.Is(err, reqerrors.ErrNotFound) {
			return apperrors.Internal("Failed to check for existing requirements", err)
		}
		if existing != nil {
			return apperrors.Conflict("This field is already required by this legal framework")
		}
		return s.repo.Create(sessCtx, req)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create requirement", "legal_framework_id", req.LegalFrameworkID, "field_path", req.FieldPath, "error", err)
		return err
	}

	s.publishChange(ctx, events.ActionCreated, req.ID, req)
	s.cfg.Log.Info("Requirement created", "id", req.ID, "legal_framework_id", req.LegalFrameworkID, "field_path", req.FieldPath)
	return nil
}

func (s *requirementService) GetByID(ctx context.Context, id string) (*model.LegalFrameworkInfoRequirement, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Requirement ID cannot be empty")
	}

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return req, nil
}

func (s *requirementService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.LegalFrameworkInfoRequirement, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	reqs, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list requirements", "error", err)
		return nil, 0, apperrors.Internal("Failed to list requirements", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count requirements", "error", err)
		return nil, 0, apperrors.Internal("Failed to count requirements", err)
	}

	return reqs, count, nil
}

func (s *requirementService) Update(ctx context.Context, id string, req *model.LegalFrameworkInfoRequirement) error {
	if id == "" {
		return apperrors.InvalidInput("Requirement ID cannot be empty")
	}

	s.sanitize(req)

	if err := s.validate(req); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionUpdated, id, req)
	s.cfg.Log.Info("Requirement updated", "id", id, "field_path", req.FieldPath)
	return nil
}

func (s *requirementService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Requirement ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionDeleted, id, nil)
	s.cfg.Log.Info("Requirement deleted", "id", id)
	return nil
}

func (s *requirementService) GetByLegalFramework(ctx context.Context, legalFrameworkID string, limit int) ([]*model.LegalFrameworkInfoRequirement, error) {
	legalFrameworkID = strings.TrimSpace(legalFrameworkID)
	if legalFrameworkID == "" {
		return nil, apperrors.InvalidInput("Legal framework ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)

	reqs, err := s.repo.FindByLegalFramework(ctx, legalFrameworkID, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to search requirements", "legal_framework_id", legalFrameworkID, "error", err)
		return nil, apperrors.Internal("Failed to search requirements", err)
	}
	return reqs, nil
}

func (s *requirementService) validate(req *model.LegalFrameworkInfoRequirement) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		s.cfg.Log.Warn("Requirement validation failed", "legal_framework_id", req.LegalFrameworkID, "error", err)
		return apperrors.Validation("Requirement validation failed",
			apperrors.FieldDetails(fieldErrors.ByField()))
	}
	return apperrors.Internal("Requirement validation misconfigured", err)
}

func (s *requirementService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, reqerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Requirement", id)
	case errors.Is(err, reqerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid requirement ID format")
	default:
		s.cfg.Log.Error("Requirement repository error", "id", id, "error", err)
		return apperrors.Internal("Failed to access requirement", err)
	}
}

func (s *requirementService) publishChange(ctx context.Context, action events.Action, id string, record any) {
	err := s.publisher.RecordChanged(ctx, events.RecordChange{
		EntityType: "legalFrameworkInfoRequirement",
		Action:     action,
		RecordID:   id,
		Record:     record,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish requirement change event", "id", id, "action", action, "error", err)
	}
}
