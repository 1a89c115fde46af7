package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/event"
)

func TestHandleEvent_RecordsGameMetrics(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	stages := read(t, StagesCompleted.WithLabelValues("cooking"))
	loops := read(t, LoopsCompleted)
	rejected := read(t, ActionsRejected.WithLabelValues("selection", "confirm"))
	xp := read(t, ExperienceAwarded)
	unlocked := read(t, IngredientsUnlocked.WithLabelValues("fruit"))
	violations := read(t, InvariantViolations.WithLabelValues("stage.binder"))
	active := read(t, SessionsActive)

	events := []event.Event{
		event.NewStageCompletedEvent(1, domain.StageCooking, domain.StageConsumption),
		event.NewLoopCompletedEvent(1, []domain.IngredientID{"apple"}),
		event.NewActionRejectedEvent(domain.StageSelection, "confirm", domain.ErrGuardNotSatisfied),
		event.NewExperienceAwardedEvent(25, 25, 100, 0),
		event.NewIngredientUnlockedEvent(domain.CategoryFruit, []domain.IngredientID{"apple", "kiwi"}),
		event.NewInvariantViolationEvent("stage.binder", "duplicate"),
		event.NewSessionStartedEvent(1),
		event.NewSessionStartedEvent(2),
		event.NewSessionEndedEvent(1, "deleted"),
	}
	for _, e := range events {
		require.NoError(t, bus.Publish(ctx, e))
	}

	assert.Equal(t, stages+1, read(t, StagesCompleted.WithLabelValues("cooking")))
	assert.Equal(t, loops+1, read(t, LoopsCompleted))
	assert.Equal(t, rejected+1, read(t, ActionsRejected.WithLabelValues("selection", "confirm")))
	assert.Equal(t, xp+25, read(t, ExperienceAwarded))
	assert.Equal(t, unlocked+2, read(t, IngredientsUnlocked.WithLabelValues("fruit")))
	assert.Equal(t, violations+1, read(t, InvariantViolations.WithLabelValues("stage.binder")))
	assert.Equal(t, active+1, read(t, SessionsActive))
}

func TestHandleEvent_IgnoresForeignPayload(t *testing.T) {
	before := read(t, EventsPublished.WithLabelValues("custom"))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{Type: "custom", Payload: map[string]any{}})

	assert.NoError(t, err)
	assert.Equal(t, before+1, read(t, EventsPublished.WithLabelValues("custom")))
}

func TestHandleEvent_DecodesSerializedPayloads(t *testing.T) {
	c := NewEventMetricsCollector()
	stages := read(t, StagesCompleted.WithLabelValues("serving"))

	fromMap := event.Event{Type: event.StageCompleted, Payload: map[string]any{"stage": "serving", "next": "selection"}}
	require.NoError(t, c.HandleEvent(context.Background(), fromMap))
	assert.Equal(t, stages+1, read(t, StagesCompleted.WithLabelValues("serving")))

	published := read(t, EventsPublished.WithLabelValues(string(event.StageCompleted)))
	garbled := event.Event{Type: event.StageCompleted, Payload: "serving"}
	require.NoError(t, c.HandleEvent(context.Background(), garbled))
	assert.Equal(t, stages+1, read(t, StagesCompleted.WithLabelValues("serving")))
	assert.Equal(t, published+1, read(t, EventsPublished.WithLabelValues(string(event.StageCompleted))))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := read(t, HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/sessions/{id}", "418"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, read(t, HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/sessions/{id}", "418")))
}

func TestGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	loops := prometheus.NewCounter(prometheus.CounterOpts{Name: MetricNameLoopsCompleted})
	stages := prometheus.NewCounterVec(prometheus.CounterOpts{Name: MetricNameStagesCompleted}, []string{LabelStage})
	active := prometheus.NewGauge(prometheus.GaugeOpts{Name: MetricNameSessionsActive})
	reg.MustRegister(loops, stages, active)

	loops.Add(3)
	stages.WithLabelValues("selection").Add(2)
	stages.WithLabelValues("cooking").Inc()
	active.Set(4)

	s, err := Gather(reg)

	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Game.LoopsCompleted)
	assert.Equal(t, map[string]float64{"selection": 2, "cooking": 1}, s.Game.StagesCompleted)
	assert.Equal(t, 4.0, s.Game.SessionsActive)
}

func TestGather_Error(t *testing.T) {
	_, err := Gather(prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		return nil, errors.New("boom")
	}))
	assert.Error(t, err)
}

func TestEstimateQuantile(t *testing.T) {
	count := func(n uint64) *uint64 { return &n }
	bound := func(f float64) *float64 { return &f }
	hist := &dto.Histogram{
		SampleCount: count(100),
		Bucket: []*dto.Bucket{
			{CumulativeCount: count(50), UpperBound: bound(0.01)},
			{CumulativeCount: count(94), UpperBound: bound(0.1)},
			{CumulativeCount: count(100), UpperBound: bound(1)},
		},
	}

	assert.Equal(t, 0.01, estimateQuantile(hist, 0.5))
	assert.Equal(t, 1.0, estimateQuantile(hist, 0.95))
	assert.Equal(t, 0.0, estimateQuantile(&dto.Histogram{}, 0.95))
}

func read(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, m.Write(&pb))
	return value(&pb)
}
