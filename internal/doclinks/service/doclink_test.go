package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"vistos/pkg/config"
	"vistos/pkg/logger"
	"vistos/pkg/model"
)

type mockDocumentTypeRepository struct {
	findAllLinkedFunc func(ctx context.Context) ([]*model.DocumentType, error)
	calls             int
}

func (m *mockDocumentTypeRepository) FindAllLinked(ctx context.Context) ([]*model.DocumentType, error) {
	m.calls++
	if m.findAllLinkedFunc != nil {
		return m.findAllLinkedFunc(ctx)
	}
	return []*model.DocumentType{}, nil
}

func testConfig(refreshInterval time.Duration) *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		DoclinkRefreshInterval: refreshInterval,
	}
}

func registryFixture() []*model.DocumentType {
	return []*model.DocumentType{
		{
			Name: "Passport scan",
			LinkedFields: []model.FieldLink{
				{EntityType: "passport", FieldPath: "number"},
				{EntityType: "passport", FieldPath: "expirationDate"},
			},
		},
		{
			Name: "Work contract",
			LinkedFields: []model.FieldLink{
				{EntityType: "person", FieldPath: "employer"},
			},
		},
		{
			Name: "Employment letter",
			LinkedFields: []model.FieldLink{
				{EntityType: "person", FieldPath: "employer"},
			},
		},
	}
}

func TestFieldLinks_ReturnsSortedNames(t *testing.T) {
	repo := &mockDocumentTypeRepository{
		findAllLinkedFunc: func(ctx context.Context) ([]*model.DocumentType, error) {
			return registryFixture(), nil
		},
	}
	svc := NewDoclinkService(repo, testConfig(time.Minute))

	got := svc.FieldLinks(context.Background(), "proc-1", "person", "employer")
	want := []string{"Employment letter", "Work contract"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFieldLinks_NothingToShow(t *testing.T) {
	repo := &mockDocumentTypeRepository{
		findAllLinkedFunc: func(ctx context.Context) ([]*model.DocumentType, error) {
			return registryFixture(), nil
		},
	}
	svc := NewDoclinkService(repo, testConfig(time.Minute))

	tests := []struct {
		name       string
		processID  string
		entityType string
		fieldPath  string
	}{
		{"empty process id", "", "person", "employer"},
		{"unknown key", "proc-1", "person", "birthDate"},
		{"unknown entity type", "proc-1", "vehicle", "plate"},
		{"empty field path", "proc-1", "person", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.FieldLinks(context.Background(), tt.processID, tt.entityType, tt.fieldPath); got != nil {
				t.Errorf("expected nil, got %v", got)
			}
		})
	}
}

func TestFieldLinks_EmptyProcessIDSkipsLoad(t *testing.T) {
	repo := &mockDocumentTypeRepository{}
	svc := NewDoclinkService(repo, testConfig(time.Minute))

	svc.FieldLinks(context.Background(), "", "person", "employer")
	if repo.calls != 0 {
		t.Errorf("expected no registry reads, got %d", repo.calls)
	}
}

func TestFieldLinks_IndexCachedWithinInterval(t *testing.T) {
	repo := &mockDocumentTypeRepository{
		findAllLinkedFunc: func(ctx context.Context) ([]*model.DocumentType, error) {
			return registryFixture(), nil
		},
	}
	svc := NewDoclinkService(repo, testConfig(time.Minute))

	for i := 0; i < 5; i++ {
		svc.FieldLinks(context.Background(), "proc-1", "passport", "number")
	}
	if repo.calls != 1 {
		t.Errorf("expected a single registry read, got %d", repo.calls)
	}
}

func TestFieldLinks_ServesStaleOnRefreshFailure(t *testing.T) {
	failing := false
	repo := &mockDocumentTypeRepository{
		findAllLinkedFunc: func(ctx context.Context) ([]*model.DocumentType, error) {
			if failing {
				return nil, fmt.Errorf("connection reset")
			}
			return registryFixture(), nil
		},
	}
	svc := NewDoclinkService(repo, testConfig(0))

	first := svc.FieldLinks(context.Background(), "proc-1", "passport", "number")
	if len(first) == 0 {
		t.Fatal("expected links from initial load")
	}

	failing = true
	second := svc.FieldLinks(context.Background(), "proc-1", "passport", "number")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected stale index to be served, got %v", second)
	}
}

func TestFieldLinks_NeverLoadedAnswersNil(t *testing.T) {
	repo := &mockDocumentTypeRepository{
		findAllLinkedFunc: func(ctx context.Context) ([]*model.DocumentType, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}
	svc := NewDoclinkService(repo, testConfig(time.Minute))

	if got := svc.FieldLinks(context.Background(), "proc-1", "person", "employer"); got != nil {
		t.Errorf("expected nil before any successful load, got %v", got)
	}
}

func TestFieldLinks_ConcurrentAccess(t *testing.T) {
	repo := &mockDocumentTypeRepository{
		findAllLinkedFunc: func(ctx context.Context) ([]*model.DocumentType, error) {
			time.Sleep(time.Millisecond)
			return registryFixture(), nil
		},
	}
	svc := NewDoclinkService(repo, testConfig(time.Minute))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				svc.FieldLinks(context.Background(), "proc-1", "person", "employer")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if repo.calls != 1 {
		t.Errorf("expected a single registry read, got %d", repo.calls)
	}
}
