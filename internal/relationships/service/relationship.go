package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	relerrors "vistos/internal/relationships/errors"
	"vistos/internal/relationships/repository"
	"vistos/internal/relationships/validator"
	"vistos/pkg/config"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/model"
	"vistos/pkg/sanitizer"
	"vistos/pkg/validation"
)

type RelationshipService interface {
	Create(ctx context.Context, rel *model.PersonCompanyRelationship) error
	GetByID(ctx context.Context, id string) (*model.PersonCompanyRelationship, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.PersonCompanyRelationship, int64, error)
	Update(ctx context.Context, id string, rel *model.PersonCompanyRelationship) error
	Delete(ctx context.Context, id string) error
	GetByPerson(ctx context.Context, personID string, limit int) ([]*model.PersonCompanyRelationship, error)
	GetByCompany(ctx context.Context, companyID string, limit int) ([]*model.PersonCompanyRelationship, error)
}

type relationshipService struct {
	repo      repository.RelationshipRepository
	validator *validator.RelationshipValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewRelationshipService(
	repo repository.RelationshipRepository,
	relValidator *validator.RelationshipValidator,
	publisher events.Publisher,
	cfg *config.Config,
) RelationshipService {
	return &relationshipService{
		repo:      repo,
		validator: relValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *relationshipService) sanitize(rel *model.PersonCompanyRelationship) {
	rel.PersonID = strings.TrimSpace(rel.PersonID)
	rel.CompanyID = strings.TrimSpace(rel.CompanyID)
	rel.Role = sanitizer.TrimAndNormalize(rel.Role)
	rel.StartDate = sanitizer.NormalizeDate(rel.StartDate)
	rel.EndDate = sanitizer.NormalizeDate(rel.EndDate)
}

func (s *relationshipService) Create(ctx context.Context, rel *model.PersonCompanyRelationship) error {
	s.sanitize(rel)

	if err := s.validate(rel); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if rel.IsCurrent {
			existing, err := s.repo.FindCurrent(sessCtx, rel.PersonID, rel.CompanyID)
			if err != nil && !errors.Is(err, relerrors.ErrNotFound) {
				return apperrors.Internal("Failed to check for current relationships", err)
			}
			if existing != nil {
				return apperrors.Conflict("A current relationship between this person and company already exists")
			}
		}
		return s.repo.Create(sessCtx, rel)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create relationship", "person_id", rel.PersonID, "company_id", rel.CompanyID, "error", err)
		return err
	}

	s.publishChange(ctx, events.ActionCreated, rel.ID, rel)
	s.cfg.Log.Info("Relationship created", "id", rel.ID, "person_id", rel.PersonID, "company_id", rel.CompanyID)
	return nil
}

func (s *relationshipService) GetByID(ctx context.Context, id string) (*model.PersonCompanyRelationship, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Relationship ID cannot be empty")
	}

	rel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return rel, nil
}

func (s *relationshipService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.PersonCompanyRelationship, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	rels, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list relationships", "error", err)
		return nil, 0, apperrors.Internal("Failed to list relationships", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count relationships", "error", err)
		return nil, 0, apperrors.Internal("Failed to count relationships", err)
	}

	return rels, count, nil
}

func (s *relationshipService) Update(ctx context.Context, id string, rel *model.PersonCompanyRelationship) error {
	if id == "" {
		return apperrors.InvalidInput("Relationship ID cannot be empty")
	}

	s.sanitize(rel)

	if err := s.validate(rel); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, rel); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionUpdated, id, rel)
	s.cfg.Log.Info("Relationship updated", "id", id)
	return nil
}

func (s *relationshipService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Relationship ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.publishChange(ctx, events.ActionDeleted, id, nil)
	s.cfg.Log.Info("Relationship deleted", "id", id)
	return nil
}

func (s *relationshipService) GetByPerson(ctx context.Context, personID string, limit int) ([]*model.PersonCompanyRelationship, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, apperrors.InvalidInput("Person ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)

	rels, err := s.repo.FindByPerson(ctx, personID, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to search relationships", "person_id", personID, "error", err)
		return nil, apperrors.Internal("Failed to search relationships", err)
	}
	return rels, nil
}

func (s *relationshipService) GetByCompany(ctx context.Context, companyID string, limit int) ([]*model.PersonCompanyRelationship, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, apperrors.InvalidInput("Company ID cannot be empty")
	}
	limit = config.NormalizePaginationLimit(limit)

	rels, err := s.repo.FindByCompany(ctx, companyID, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to search relationships", "company_id", companyID, "error", err)
		return nil, apperrors.Internal("Failed to search relationships", err)
	}
	return rels, nil
}

func (s *relationshipService) validate(rel *model.PersonCompanyRelationship) error {
	err := s.validator.Validate(rel)
	if err == nil {
		return nil
	}

	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		s.cfg.Log.Warn("Relationship validation failed", "person_id", rel.PersonID, "company_id", rel.CompanyID, "error", err)
		return apperrors.Validation("Relationship validation failed",
			apperrors.FieldDetails(fieldErrors.ByField()))
	}
	return apperrors.Internal("Relationship validation misconfigured", err)
}

func (s *relationshipService) mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, relerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Relationship", id)
	case errors.Is(err, relerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid relationship ID format")
	default:
		s.cfg.Log.Error("Relationship repository error", "id", id, "error", err)
		return apperrors.Internal("Failed to access relationship", err)
	}
}

func (s *relationshipService) publishChange(ctx context.Context, action events.Action, id string, record any) {
	err := s.publisher.RecordChanged(ctx, events.RecordChange{
		EntityType: "personCompanyRelationship",
		Action:     action,
		RecordID:   id,
		Record:     record,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish relationship change event", "id", id, "action", action, "error", err)
	}
}
