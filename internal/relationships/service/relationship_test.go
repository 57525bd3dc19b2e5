package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	relerrors "vistos/internal/relationships/errors"
	"vistos/internal/relationships/validator"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/locale"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type mockRelationshipRepository struct {
	findCurrentFunc func(ctx context.Context, personID, companyID string) (*model.PersonCompanyRelationship, error)
	capturedRel     *model.PersonCompanyRelationship
}

func (m *mockRelationshipRepository) Create(ctx context.Context, rel *model.PersonCompanyRelationship) error {
	m.capturedRel = rel
	return nil
}

func (m *mockRelationshipRepository) FindByID(ctx context.Context, id string) (*model.PersonCompanyRelationship, error) {
	return nil, relerrors.ErrNotFound
}

func (m *mockRelationshipRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.PersonCompanyRelationship, error) {
	return []*model.PersonCompanyRelationship{}, nil
}

func (m *mockRelationshipRepository) Update(ctx context.Context, id string, rel *model.PersonCompanyRelationship) error {
	m.capturedRel = rel
	return nil
}

func (m *mockRelationshipRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockRelationshipRepository) FindByPerson(ctx context.Context, personID string, limit int) ([]*model.PersonCompanyRelationship, error) {
	return []*model.PersonCompanyRelationship{}, nil
}

func (m *mockRelationshipRepository) FindByCompany(ctx context.Context, companyID string, limit int) ([]*model.PersonCompanyRelationship, error) {
	return []*model.PersonCompanyRelationship{}, nil
}

func (m *mockRelationshipRepository) FindCurrent(ctx context.Context, personID, companyID string) (*model.PersonCompanyRelationship, error) {
	if m.findCurrentFunc != nil {
		return m.findCurrentFunc(ctx, personID, companyID)
	}
	return nil, relerrors.ErrNotFound
}

func (m *mockRelationshipRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockRelationshipRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestService(repo *mockRelationshipRepository) RelationshipService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
	tr := locale.NewTranslator(locale.English)
	return NewRelationshipService(repo, validator.NewRelationshipValidator(tr), events.NopPublisher{}, cfg)
}

func validInput() *model.PersonCompanyRelationship {
	return &model.PersonCompanyRelationship{
		PersonID:  "665f1c2ab1e4a7d3c9f0aa11",
		CompanyID: "665f1c2ab1e4a7d3c9f0aa22",
		Role:      "Engenheira civil",
		StartDate: "2023-01-01",
		EndDate:   "2024-01-01",
	}
}

func TestCreate_AcceptsClosedRelationship(t *testing.T) {
	repo := &mockRelationshipRepository{}
	svc := newTestService(repo)

	if err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.capturedRel == nil {
		t.Fatal("expected relationship to reach the repository")
	}
}

func TestCreate_CurrentWithEndDateRejected(t *testing.T) {
	repo := &mockRelationshipRepository{}
	svc := newTestService(repo)

	rel := validInput()
	rel.IsCurrent = true

	err := svc.Create(context.Background(), rel)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	fields, ok := appErr.Details["fields"].(map[string][]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", appErr.Details)
	}
	if len(fields["endDate"]) == 0 {
		t.Errorf("expected a message on endDate, got %v", fields)
	}
	if repo.capturedRel != nil {
		t.Error("invalid relationship must not reach the repository")
	}
}

func TestCreate_EndBeforeStartRejected(t *testing.T) {
	repo := &mockRelationshipRepository{}
	svc := newTestService(repo)

	rel := validInput()
	rel.StartDate = "2024-01-01"
	rel.EndDate = "2023-01-01"

	err := svc.Create(context.Background(), rel)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	fields := apperrors.AsAppError(err).Details["fields"].(map[string][]string)
	found := false
	for _, msg := range fields["endDate"] {
		if msg == "end date must be after start date" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ordering message on endDate, got %v", fields)
	}
}

func TestCreate_SecondCurrentRelationshipConflicts(t *testing.T) {
	repo := &mockRelationshipRepository{
		findCurrentFunc: func(ctx context.Context, personID, companyID string) (*model.PersonCompanyRelationship, error) {
			return &model.PersonCompanyRelationship{ID: "665f1c2ab1e4a7d3c9f0aa44", IsCurrent: true}, nil
		},
	}
	svc := newTestService(repo)

	rel := validInput()
	rel.IsCurrent = true
	rel.EndDate = ""

	err := svc.Create(context.Background(), rel)
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected conflict code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestCreate_ClosedRelationshipSkipsCurrentCheck(t *testing.T) {
	repo := &mockRelationshipRepository{
		findCurrentFunc: func(ctx context.Context, personID, companyID string) (*model.PersonCompanyRelationship, error) {
			t.Error("current check must not run for closed relationships")
			return nil, relerrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	if err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetByPerson_EmptyID(t *testing.T) {
	svc := newTestService(&mockRelationshipRepository{})

	_, err := svc.GetByPerson(context.Background(), "  ", 10)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input code, got %s", apperrors.AsAppError(err).Code)
	}
}
