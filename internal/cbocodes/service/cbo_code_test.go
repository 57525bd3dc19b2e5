package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	cboerrors "vistos/internal/cbocodes/errors"
	"vistos/internal/cbocodes/validator"
	"vistos/pkg/config"
	mongotx "vistos/pkg/db/mongo"
	apperrors "vistos/pkg/errors"
	"vistos/pkg/events"
	"vistos/pkg/locale"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type mockCboCodeRepository struct {
	findByCodeFunc func(ctx context.Context, code string) (*model.CboCode, error)
	capturedCbo    *model.CboCode
}

func (m *mockCboCodeRepository) Create(ctx context.Context, cbo *model.CboCode) error {
	m.capturedCbo = cbo
	return nil
}

func (m *mockCboCodeRepository) FindByID(ctx context.Context, id string) (*model.CboCode, error) {
	return nil, cboerrors.ErrNotFound
}

func (m *mockCboCodeRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CboCode, error) {
	return []*model.CboCode{}, nil
}

func (m *mockCboCodeRepository) Update(ctx context.Context, id string, cbo *model.CboCode) error {
	m.capturedCbo = cbo
	return nil
}

func (m *mockCboCodeRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockCboCodeRepository) FindByCode(ctx context.Context, code string) (*model.CboCode, error) {
	if m.findByCodeFunc != nil {
		return m.findByCodeFunc(ctx, code)
	}
	return nil, cboerrors.ErrNotFound
}

func (m *mockCboCodeRepository) FindByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*model.CboCode, error) {
	return []*model.CboCode{}, nil
}

func (m *mockCboCodeRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockCboCodeRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestService(repo *mockCboCodeRepository) CboCodeService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
	tr := locale.NewTranslator(locale.English)
	return NewCboCodeService(repo, validator.NewCboCodeValidator(tr), events.NopPublisher{}, cfg)
}

func TestCreate_NormalizesCodeShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare digits", "252105", "2521-05"},
		{"dotted form", "2521.05", "2521-05"},
		{"canonical form kept", "2521-05", "2521-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCboCodeRepository{}
			svc := newTestService(repo)

			cbo := &model.CboCode{Code: tt.input, Title: "Administrador"}
			if err := svc.Create(context.Background(), cbo); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.capturedCbo.Code != tt.want {
				t.Errorf("expected code %q, got %q", tt.want, repo.capturedCbo.Code)
			}
		})
	}
}

func TestCreate_EmptyCodeSkipsDuplicateCheck(t *testing.T) {
	repo := &mockCboCodeRepository{
		findByCodeFunc: func(ctx context.Context, code string) (*model.CboCode, error) {
			t.Error("duplicate check must not run for empty codes")
			return nil, cboerrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	if err := svc.Create(context.Background(), &model.CboCode{Title: "Analista de sistemas"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.capturedCbo == nil {
		t.Fatal("expected record to reach the repository")
	}
}

func TestCreate_DuplicateCodeConflict(t *testing.T) {
	repo := &mockCboCodeRepository{
		findByCodeFunc: func(ctx context.Context, code string) (*model.CboCode, error) {
			return &model.CboCode{ID: "665f1c2ab1e4a7d3c9f0aa33", Code: code}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.CboCode{Code: "2521-05", Title: "Administrador"})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected conflict code, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestCreate_MalformedCodeRejected(t *testing.T) {
	repo := &mockCboCodeRepository{}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.CboCode{Code: "2521-5", Title: "Administrador"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	fields, ok := appErr.Details["fields"].(map[string][]string)
	if !ok || len(fields["code"]) == 0 {
		t.Errorf("expected a message for field code, got %#v", appErr.Details)
	}
}

func TestGetByCode_NormalizesLookup(t *testing.T) {
	repo := &mockCboCodeRepository{
		findByCodeFunc: func(ctx context.Context, code string) (*model.CboCode, error) {
			if code != "2521-05" {
				t.Errorf("expected normalized code 2521-05, got %q", code)
			}
			return &model.CboCode{ID: "665f1c2ab1e4a7d3c9f0aa33", Code: code}, nil
		},
	}
	svc := newTestService(repo)

	cbo, err := svc.GetByCode(context.Background(), "252105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cbo.Code != "2521-05" {
		t.Errorf("expected code 2521-05, got %q", cbo.Code)
	}
}

func TestGetByCode_NotFound(t *testing.T) {
	svc := newTestService(&mockCboCodeRepository{})

	_, err := svc.GetByCode(context.Background(), "9999-99")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected not found code, got %s", apperrors.AsAppError(err).Code)
	}
}
