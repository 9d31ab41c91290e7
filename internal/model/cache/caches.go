package cache

import (
	"sync"
	"time"

	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	SiteStats *cache.Singular[model.SiteStats]

	// RenderModelByID memoizes render projections. Reports are immutable
	// once appended, so entries never go stale and may live until evicted.
	RenderModelByID *cache.Set[model.RenderModel]

	LastModifiedTime *cache.Set[time.Time]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize() {
	once.Do(initializeCaches)
}

// Delete flushes the named cache; unknown names are a no-op.
func Delete(name string) error {
	if flush, ok := SingularFlusherMap[name]; ok {
		return flush()
	}
	if flush, ok := SetMap[name]; ok {
		return flush()
	}
	return nil
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// site_stats
	SiteStats = cache.NewSingular[model.SiteStats]("siteStats")

	SingularFlusherMap["siteStats"] = SiteStats.Delete

	// render
	RenderModelByID = cache.NewSet[model.RenderModel]("renderModel#reportId")

	SetMap["renderModel#reportId"] = RenderModelByID.Flush

	// others
	LastModifiedTime = cache.NewSet[time.Time]("lastModifiedTime#key")

	SetMap["lastModifiedTime#key"] = LastModifiedTime.Flush
}
