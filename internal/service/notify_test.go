package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model"
)

func notifyConf(t *testing.T, targets []string, queueSize int) *appconfig.Config {
	t.Helper()

	conf := testConfig(t)
	conf.WebhookUrls = targets
	conf.NotifyQueueSize = queueSize
	return conf
}

func notifyReport(id string) *model.Report {
	return &model.Report{
		ID: id,
		Executor: model.Executor{
			Name: "pytest",
		},
		Results: model.Results{
			Passed: 10,
			Failed: 2,
		},
		Grade:     "A",
		CreatedAt: time.Now(),
	}
}

func TestNotifyDisabledWithoutTargets(t *testing.T) {
	svc := NewNotify(notifyConf(t, nil, 8))

	assert.False(t, svc.Enabled)

	// pushes are a no-op and nothing queues
	svc.PushReportCreated(notifyReport("NTFY0001"))
	assert.Zero(t, svc.Pending())

	delivered, err := svc.DeliverPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, delivered)
}

func TestNotifyDelivers(t *testing.T) {
	var (
		mu       sync.Mutex
		bodies   []string
		events   []string
		delivIDs []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		bodies = append(bodies, string(body))
		events = append(events, r.Header.Get(constant.NotifyEventHeader))
		delivIDs = append(delivIDs, r.Header.Get(constant.NotifyDeliveryHeader))
		mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNotify(notifyConf(t, []string{server.URL}, 8))
	require.True(t, svc.Enabled)

	svc.PushReportCreated(notifyReport("NTFY1001"))
	svc.PushReportCreated(notifyReport("NTFY1002"))
	assert.Equal(t, 2, svc.Pending())

	delivered, err := svc.DeliverPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)
	assert.Zero(t, svc.Pending())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	for i := range bodies {
		text := gjson.Get(bodies[i], "text").String()
		assert.Contains(t, text, "NTFY100")
		assert.Contains(t, text, "pytest")
		assert.Equal(t, constant.NotifyEventReportCreated, events[i])
		assert.NotEmpty(t, delivIDs[i])
	}
}

func TestNotifyFansOutToAllTargets(t *testing.T) {
	var hits [2]int
	var mu sync.Mutex
	mkServer := func(i int) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits[i]++
			mu.Unlock()
		}))
	}
	s0, s1 := mkServer(0), mkServer(1)
	defer s0.Close()
	defer s1.Close()

	svc := NewNotify(notifyConf(t, []string{s0.URL, s1.URL}, 8))

	svc.PushReportCreated(notifyReport("NTFY2001"))

	delivered, err := svc.DeliverPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits[0])
	assert.Equal(t, 1, hits[1])
}

func TestNotifyDropsWhenQueueFull(t *testing.T) {
	svc := NewNotify(notifyConf(t, []string{"http://127.0.0.1:0"}, 1))

	svc.PushReportCreated(notifyReport("NTFY3001"))
	svc.PushReportCreated(notifyReport("NTFY3002"))

	// second event was dropped on the floor: no delivery guarantee
	assert.Equal(t, 1, svc.Pending())
}

func TestNotifyFailureIsReportedNotRetried(t *testing.T) {
	var hits int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewNotify(notifyConf(t, []string{server.URL}, 8))

	svc.PushReportCreated(notifyReport("NTFY4001"))

	delivered, err := svc.DeliverPending(context.Background())
	assert.Error(t, err)
	assert.Zero(t, delivered)

	// the failed event is gone from the queue; a later flush won't retry it
	assert.Zero(t, svc.Pending())

	delivered, err = svc.DeliverPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, delivered)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits)
}
