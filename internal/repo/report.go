package repo

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/reporthub/backend/internal/infra"
	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/pkg/rherr"
)

// Report is the report store: an append-only in-memory sequence durably
// mirrored to a single JSON document. The mutex is the only serialization
// point. Append and the mirror rewrite happen inside one critical section,
// so two concurrent ingests can never interleave rewrites in a way that
// loses a report.
type Report struct {
	mu sync.RWMutex

	reports []*model.Report
	byID    map[string]*model.Report

	datafile *infra.DataFile
}

func NewReport(datafile *infra.DataFile) (*Report, error) {
	s := &Report{
		byID:     map[string]*model.Report{},
		datafile: datafile,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// load reads the whole mirror. A missing file starts the store empty; an
// unparseable one is logged and starts empty as well instead of failing
// boot.
func (s *Report) load() error {
	content, err := s.datafile.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info().
				Str("evt.name", "repo.report.load").
				Str("path", s.datafile.Path()).
				Msg("repo: report: no data file yet, starting with an empty store")
			return nil
		}
		return errors.Wrap(err, "repo: report: failed to read data file")
	}

	var reports []*model.Report
	if err := json.Unmarshal(content, &reports); err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "repo.report.load").
			Str("path", s.datafile.Path()).
			Msg("repo: report: data file is unparseable, starting with an empty store")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = reports
	s.byID = make(map[string]*model.Report, len(reports))
	for _, report := range reports {
		s.byID[report.ID] = report
	}

	return nil
}

// Reload re-reads the mirror from disk, replacing the in-memory sequence.
// Used by maintenance tooling, not by the serving path.
func (s *Report) Reload() error {
	return s.load()
}

// Append adds the report to the sequence and rewrites the mirror. On a
// rewrite failure the in-memory sequence intentionally stays ahead of disk:
// the next successful rewrite catches the mirror up.
func (s *Report) Append(ctx context.Context, report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// createdAt stays non-decreasing with insertion order even when the
	// wall clock steps backwards between two appends.
	if n := len(s.reports); n > 0 && report.CreatedAt.Before(s.reports[n-1].CreatedAt) {
		report.CreatedAt = s.reports[n-1].CreatedAt
	}

	s.reports = append(s.reports, report)
	s.byID[report.ID] = report

	if err := s.rewrite(); err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "repo.report.persist_failed").
			Str("reportId", report.ID).
			Msg("repo: report: failed to rewrite data file, memory is ahead of disk")
		return rherr.ErrPersistFailed.Msg("failed to persist report: %s", err)
	}

	return nil
}

// rewrite serializes the full sequence to the mirror. Callers must hold mu.
func (s *Report) rewrite() error {
	content, err := json.Marshal(s.reports)
	if err != nil {
		return errors.Wrap(err, "repo: report: failed to marshal reports")
	}

	return s.datafile.WriteAtomic(content)
}

func (s *Report) GetByID(ctx context.Context, id string) (*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.byID[id]
	if !ok {
		return nil, rherr.ErrReportNotFound
	}

	return report, nil
}

// List returns a copy of the sequence sorted by createdAt descending.
// Insertion order would already satisfy the contract, but ordering is part
// of the read API, so it is enforced here rather than trusted from storage.
func (s *Report) List(ctx context.Context) []*model.Report {
	s.mu.RLock()
	reports := make([]*model.Report, len(s.reports))
	copy(reports, s.reports)
	s.mu.RUnlock()

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})

	return reports
}

func (s *Report) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.reports)
}

// HasID reports whether id is already taken. The identifier generator uses
// it as its collision probe.
func (s *Report) HasID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok
}
