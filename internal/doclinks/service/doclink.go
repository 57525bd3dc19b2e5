package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"vistos/internal/doclinks/repository"
	"vistos/pkg/config"
	"vistos/pkg/model"
)

// DoclinkService answers "which document types document this field". The
// answer is advisory: a nil result renders as no indicator, never as an
// error.
type DoclinkService interface {
	// FieldLinks returns the sorted document-type names linked to the
	// given entity field, or nil when there is nothing to show: the
	// process ID is empty, the index has never been loaded, or no entry
	// exists for the key.
	FieldLinks(ctx context.Context, processID, entityType, fieldPath string) []string
}

// linkIndex maps entityType + "." + fieldPath to sorted document-type
// names.
type linkIndex map[string][]string

type doclinkService struct {
	repo repository.DocumentTypeRepository
	cfg  *config.Config

	mu        sync.RWMutex
	index     linkIndex
	refreshed time.Time
}

func NewDoclinkService(repo repository.DocumentTypeRepository, cfg *config.Config) DoclinkService {
	return &doclinkService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *doclinkService) FieldLinks(ctx context.Context, processID, entityType, fieldPath string) []string {
	if processID == "" || entityType == "" || fieldPath == "" {
		return nil
	}

	index := s.currentIndex(ctx)
	if index == nil {
		return nil
	}
	return index[entityType+"."+fieldPath]
}

// currentIndex returns the cached index, refreshing it when stale. A failed
// refresh keeps serving the previous index; only a service that has never
// loaded one answers nil.
func (s *doclinkService) currentIndex(ctx context.Context) linkIndex {
	s.mu.RLock()
	index, refreshed := s.index, s.refreshed
	s.mu.RUnlock()

	if index != nil && time.Since(refreshed) < s.cfg.DoclinkRefreshInterval {
		return index
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	if s.index != nil && time.Since(s.refreshed) < s.cfg.DoclinkRefreshInterval {
		return s.index
	}

	docTypes, err := s.repo.FindAllLinked(ctx)
	if err != nil {
		s.cfg.Log.Warn("Failed to refresh doclink index, serving previous one", "error", err)
		s.refreshed = time.Now()
		return s.index
	}

	s.index = buildIndex(docTypes)
	s.refreshed = time.Now()
	s.cfg.Log.Debug("Doclink index refreshed", "keys", len(s.index), "document_types", len(docTypes))
	return s.index
}

func buildIndex(docTypes []*model.DocumentType) linkIndex {
	index := make(linkIndex)
	for _, dt := range docTypes {
		for _, link := range dt.LinkedFields {
			key := link.EntityType + "." + link.FieldPath
			index[key] = append(index[key], dt.Name)
		}
	}

	for key, names := range index {
		sort.Strings(names)
		index[key] = dedupe(names)
	}
	return index
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
