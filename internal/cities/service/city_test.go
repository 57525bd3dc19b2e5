package service

import (
	"context"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	citieserrors "vistos/internal/cities/errors"
	"vistos/internal/cities/validator"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/locale"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type mockCityRepository struct {
	createFunc                 func(ctx context.Context, city *model.City) error
	findByIDFunc               func(ctx context.Context, id string) (*model.City, error)
	findAllFunc                func(ctx context.Context, limit int, offset int64) ([]*model.City, error)
	findByNamePrefixFunc       func(ctx context.Context, prefix string, limit int) ([]*model.City, error)
	findByNameStateCountryFunc func(ctx context.Context, name, state, country string) (*model.City, error)
	countFunc                  func(ctx context.Context) (int64, error)
	capturedCity               *model.City
}

func (m *mockCityRepository) Create(ctx context.Context, city *model.City) error {
	m.capturedCity = city
	if m.createFunc != nil {
		return m.createFunc(ctx, city)
	}
	return nil
}

func (m *mockCityRepository) FindByID(ctx context.Context, id string) (*model.City, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, citieserrors.ErrNotFound
}

func (m *mockCityRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.City, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.City{}, nil
}

func (m *mockCityRepository) Update(ctx context.Context, id string, city *model.City) error {
	m.capturedCity = city
	return nil
}

func (m *mockCityRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockCityRepository) FindByNamePrefix(ctx context.Context, prefix string, limit int) ([]*model.City, error) {
	if m.findByNamePrefixFunc != nil {
		return m.findByNamePrefixFunc(ctx, prefix, limit)
	}
	return []*model.City{}, nil
}

func (m *mockCityRepository) FindByNameStateCountry(ctx context.Context, name, state, country string) (*model.City, error) {
	if m.findByNameStateCountryFunc != nil {
		return m.findByNameStateCountryFunc(ctx, name, state, country)
	}
	return nil, citieserrors.ErrNotFound
}

func (m *mockCityRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockCityRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		DefaultCountry: "BR",
	}
}

func newTestService(repo *mockCityRepository) CityService {
	tr := locale.NewTranslator("en")
	return NewCityService(repo, validator.NewCityValidator(tr), events.NopPublisher{}, testConfig())
}

func TestCreate_AppliesDefaultCountry(t *testing.T) {
	repo := &mockCityRepository{}
	svc := newTestService(repo)

	city := &model.City{Name: "  porto alegre "}
	if err := svc.Create(context.Background(), city); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.capturedCity == nil {
		t.Fatal("expected city to reach the repository")
	}
	if repo.capturedCity.Country != "BR" {
		t.Errorf("expected default country BR, got %q", repo.capturedCity.Country)
	}
	if repo.capturedCity.Name != "porto alegre" {
		t.Errorf("expected normalized name, got %q", repo.capturedCity.Name)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	repo := &mockCityRepository{}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.City{Name: "X"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	fields, ok := appErr.Details["fields"].(map[string][]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", appErr.Details)
	}
	if len(fields["name"]) == 0 {
		t.Errorf("expected a message for field name, got %v", fields)
	}
	if repo.capturedCity != nil {
		t.Error("invalid city must not reach the repository")
	}
}

func TestCreate_DuplicateConflict(t *testing.T) {
	repo := &mockCityRepository{
		findByNameStateCountryFunc: func(ctx context.Context, name, state, country string) (*model.City, error) {
			return &model.City{ID: "665f1c2ab1e4a7d3c9f0aa11", Name: name}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.City{Name: "Lisboa", Country: "PT"})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected conflict code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestGetByID_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"not found", citieserrors.ErrNotFound, apperrors.CodeNotFound},
		{"invalid id", citieserrors.ErrInvalidID, apperrors.CodeInvalidInput},
		{"backend failure", fmt.Errorf("connection reset"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCityRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.City, error) {
					return nil, tt.repoErr
				},
			}
			svc := newTestService(repo)

			_, err := svc.GetByID(context.Background(), "665f1c2ab1e4a7d3c9f0aa11")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := apperrors.AsAppError(err).Code; got != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got)
			}
		})
	}
}

func TestGetByID_EmptyID(t *testing.T) {
	svc := newTestService(&mockCityRepository{})

	_, err := svc.GetByID(context.Background(), "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestGetAll_LimitNormalization(t *testing.T) {
	repo := &mockCityRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.City, error) {
			if limit <= 0 {
				t.Error("limit should not be <= 0 after normalization")
			}
			if limit > config.DefaultPaginationLimit {
				t.Errorf("limit should not exceed %d after normalization", config.DefaultPaginationLimit)
			}
			if offset < 0 {
				t.Error("offset should not be negative after normalization")
			}
			return []*model.City{}, nil
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name   string
		limit  int
		offset int64
	}{
		{"zero limit", 0, 0},
		{"negative limit", -1, 0},
		{"excessive limit", 500, 0},
		{"negative offset", 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.GetAll(context.Background(), tt.limit, tt.offset); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSearchByName_EmptyPrefix(t *testing.T) {
	svc := newTestService(&mockCityRepository{})

	_, err := svc.SearchByName(context.Background(), "   ", 10)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestSearchByName_RepoError(t *testing.T) {
	repo := &mockCityRepository{
		findByNamePrefixFunc: func(ctx context.Context, prefix string, limit int) ([]*model.City, error) {
			return nil, fmt.Errorf("DB failure")
		},
	}
	svc := newTestService(repo)

	_, err := svc.SearchByName(context.Background(), "Sao", 10)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInternal {
		t.Errorf("expected internal code, got %s", apperrors.AsAppError(err).Code)
	}
}
