package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/model/cache"
	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/repo"
	"github.com/reporthub/backend/internal/util"
)

// Query serves the read side: listings, full fetches and the render
// projection. It never mutates the store.
type Query struct {
	ReportRepo   *repo.Report
	GeoIPService *GeoIP
}

func NewQuery(reportRepo *repo.Report, geoIPService *GeoIP) *Query {
	return &Query{
		ReportRepo:   reportRepo,
		GeoIPService: geoIPService,
	}
}

// ListSummaries returns one page of listing projections, newest first,
// along with the total number of reports matching the filters.
func (s *Query) ListSummaries(ctx context.Context, query *types.ReportListQuery) ([]*model.ReportSummary, int, error) {
	reports := s.ReportRepo.List(ctx)

	if query.Executor != "" {
		reports = lo.Filter(reports, func(r *model.Report, _ int) bool {
			return r.Executor.Name == query.Executor
		})
	}
	if query.Grade != "" {
		reports = lo.Filter(reports, func(r *model.Report, _ int) bool {
			return r.Grade == query.Grade
		})
	}

	total := len(reports)

	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = constant.DefaultPageLimit
	}
	if limit > constant.MaxPageLimit {
		limit = constant.MaxPageLimit
	}

	start := (page - 1) * limit
	if start >= total {
		return []*model.ReportSummary{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	summaries := lo.Map(reports[start:end], func(r *model.Report, _ int) *model.ReportSummary {
		return &model.ReportSummary{
			ID:            r.ID,
			ExecutorName:  r.Executor.Name,
			SuccessRate:   r.Results.SuccessRate,
			Grade:         r.Grade,
			Total:         r.Results.Total,
			Passed:        r.Results.Passed,
			Failed:        r.Results.Failed,
			Duration:      r.Duration,
			CreatedAt:     r.CreatedAt,
			SourceAddress: r.SourceAddress,
		}
	})

	return summaries, total, nil
}

func (s *Query) GetReportByID(ctx context.Context, id string) (*model.Report, error) {
	return s.ReportRepo.GetByID(ctx, id)
}

// GetRenderModel returns the display projection of a report. Reports are
// immutable, but the projection carries relative times, so cache entries
// expire on a short TTL rather than living forever.
//
// Cache: renderModel#reportId:{id}, 1m
func (s *Query) GetRenderModel(ctx context.Context, id string) (*model.RenderModel, error) {
	report, err := s.ReportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var rm model.RenderModel
	err = cache.RenderModelByID.MutexGetSet(id, &rm, func() (model.RenderModel, error) {
		return s.buildRenderModel(report)
	}, constant.RenderModelCacheTTL)
	if err != nil {
		return nil, err
	}

	return &rm, nil
}

func (s *Query) buildRenderModel(report *model.Report) (model.RenderModel, error) {
	var rm model.RenderModel
	if err := copier.Copy(&rm, &report.Results); err != nil {
		return rm, errors.Wrap(err, "service: query: failed to seed render model")
	}

	rm.ID = report.ID
	rm.ExecutorName = report.Executor.Name
	rm.ExecutorLine = executorLine(report.Executor)

	// The display rate prefers the submitted successRate and falls back to
	// the observed pass ratio when none was supplied.
	rate := report.Results.SuccessRate
	if ran := report.Results.Passed + report.Results.Failed; rate == 0 && ran > 0 {
		rate = util.RoundFloat64(float64(report.Results.Passed)/float64(ran), constant.PassRateDigits)
	}
	rm.SuccessRate = rate
	rm.SuccessRatePercent = fmt.Sprintf("%.1f%%", rate*100)
	rm.PassRateClass = passRateClass(rate)

	rm.Grade = report.Grade
	rm.GradeClass = gradeClass(report.Grade)

	rm.Duration = report.Duration
	rm.DurationHuman = humanize.SIWithDigits(report.Duration/1000, 2, "s")
	rm.CreatedAt = report.CreatedAt.UTC().Format(time.RFC3339)
	rm.CreatedAtHuman = humanize.Time(report.CreatedAt)

	rm.SourceAddress = report.SourceAddress
	rm.SourceCountry = s.GeoIPService.CountryName(report.SourceAddress)

	rm.System = sortedKVs(report.System)
	rm.Player = sortedKVs(report.Player)
	rm.Categories = renderCategories(report.Categories)

	rm.RawPayloadPretty = gjson.GetBytes(report.RawPayload, "@pretty").Raw

	return rm, nil
}

func executorLine(e model.Executor) string {
	line := e.Name + " " + e.Version
	if e.Type != "" {
		line += " (" + e.Type + ")"
	}
	return line
}

func passRateClass(rate float64) string {
	switch {
	case rate >= constant.PassRateGoodThreshold:
		return "good"
	case rate >= constant.PassRateWarnThreshold:
		return "warn"
	default:
		return "bad"
	}
}

// gradeClass falls back to the worst grade's class for labels outside the
// known grade set so the template always has a valid class to paint.
func gradeClass(grade string) string {
	if _, ok := constant.GradeSet[grade]; !ok {
		grade = constant.GradeWorst
	}
	return "grade-" + strings.ToLower(grade)
}

func sortedKVs(m map[string]any) []model.KV {
	keys := lo.Keys(m)
	sort.Strings(keys)

	kvs := make([]model.KV, 0, len(keys))
	for _, key := range keys {
		kvs = append(kvs, model.KV{
			Key:   key,
			Value: fmt.Sprintf("%v", m[key]),
		})
	}
	return kvs
}

func renderCategories(categories []map[string]any) []model.CategoryRender {
	renders := make([]model.CategoryRender, 0, len(categories))
	for i, category := range categories {
		name := fmt.Sprintf("Category %d", i+1)
		if n, ok := category["name"].(string); ok && n != "" {
			name = n
		}

		fields := make(map[string]any, len(category))
		for key, value := range category {
			if key == "name" {
				continue
			}
			fields[key] = value
		}

		renders = append(renders, model.CategoryRender{
			Name:   name,
			Fields: sortedKVs(fields),
		})
	}
	return renders
}
