package service

import (
	"context"
	"time"

	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/bininfo"
	"github.com/reporthub/backend/internal/repo"
)

// Health reports liveness. The store is process-local, so there is no
// backend to ping: the process being up is the health signal.
type Health struct {
	ReportRepo *repo.Report

	startedAt time.Time
}

func NewHealth(reportRepo *repo.Report) *Health {
	return &Health{
		ReportRepo: reportRepo,
		startedAt:  time.Now(),
	}
}

func (s *Health) Ping(ctx context.Context) error {
	return nil
}

func (s *Health) Status(ctx context.Context) *types.HealthResponse {
	return &types.HealthResponse{
		Status:  "ok",
		Reports: s.ReportRepo.Count(ctx),
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
		Version: bininfo.Version,
	}
}
