package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/checklist"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// CachePort abstracts the deadline-set cache.  The Redis adapter implements
// it; tests use in-memory fakes.
type CachePort interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// AlertPublisher fans generated alerts out to the message bus.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []DeadlineAlert) error
}

// ChecklistItemView pairs a template item with its completion and unlock
// state for one entity.
type ChecklistItemView struct {
	checklist.ChecklistItem
	Completed bool `json:"completed"`
	Unlocked  bool `json:"unlocked"`
}

// ChecklistProgressView is the per-entity view of one checklist template.
type ChecklistProgressView struct {
	SpacID     string              `json:"spac_id"`
	FilingType filing.FilingType   `json:"filing_type"`
	Items      []ChecklistItemView `json:"items"`
	Progress   checklist.Progress  `json:"progress"`
}

// Dashboard aggregates deadline state across all active entities.
type Dashboard struct {
	GeneratedAt    time.Time                     `json:"generated_at"`
	EntityCount    int                           `json:"entity_count"`
	DeadlineCount  int                           `json:"deadline_count"`
	OverdueCount   int                           `json:"overdue_count"`
	RequireReview  int                           `json:"require_review"`
	ByUrgency      map[Urgency]int               `json:"by_urgency"`
	ByCategory     map[filing.FilingCategory]int `json:"by_category"`
	CriticalAlerts []DeadlineAlert               `json:"critical_alerts"`
}

// Service is the application-level contract for compliance queries.
type Service interface {
	// GetDeadlines returns the deadline set for one entity.
	GetDeadlines(ctx context.Context, spacID string) ([]FilingDeadlineItem, error)

	// ListDeadlines returns the merged, sorted deadline set for all
	// entities matching the filter.
	ListDeadlines(ctx context.Context, filter spac.ListFilter) ([]FilingDeadlineItem, error)

	// GetAlerts classifies the matching deadline sets into alerts and fans
	// critical alerts out to the publisher.
	GetAlerts(ctx context.Context, filter spac.ListFilter) ([]DeadlineAlert, error)

	// GetChecklist returns the raw template for a filing type.
	GetChecklist(ctx context.Context, filingType filing.FilingType) (checklist.ChecklistTemplate, error)

	// GetChecklistProgress merges the template with one entity's completion
	// state.
	GetChecklistProgress(ctx context.Context, spacID string, filingType filing.FilingType) (*ChecklistProgressView, error)

	// GetDashboard aggregates deadline state across active entities.
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

// ServiceConfig holds service tunables.
type ServiceConfig struct {
	DeadlineCacheTTL time.Duration

	// PeriodicHorizonMonths bounds the rolling periodic-report schedule.
	// Zero uses the engine default.
	PeriodicHorizonMonths int
}

type serviceImpl struct {
	repo       spac.Repository
	checklists *checklist.Registry
	cache      CachePort
	publisher  AlertPublisher
	metrics    *prometheus.AppMetrics
	logger     logging.Logger
	cfg        ServiceConfig

	// now is swapped in tests for deterministic results.
	now func() time.Time
}

// NewService constructs the compliance Service.  cache, publisher, and
// metrics may be nil; the service degrades to direct computation without
// caching, fan-out, or instrumentation.
func NewService(
	repo spac.Repository,
	checklists *checklist.Registry,
	cache CachePort,
	publisher AlertPublisher,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
	cfg ServiceConfig,
) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.DeadlineCacheTTL == 0 {
		cfg.DeadlineCacheTTL = 10 * time.Minute
	}
	return &serviceImpl{
		repo:       repo,
		checklists: checklists,
		cache:      cache,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *serviceImpl) GetDeadlines(ctx context.Context, spacID string) ([]FilingDeadlineItem, error) {
	if spacID == "" {
		return nil, errors.NewValidationOp("compliance.deadlines", "spac id is required")
	}
	today := s.today()

	cacheKey := fmt.Sprintf("deadlines:%s:%s", spacID, today.Format("2006-01-02"))
	if s.cache != nil {
		var cached []FilingDeadlineItem
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("deadline cache read failed", logging.String("spac_id", spacID), logging.Err(err))
		}
		if s.metrics != nil {
			prometheus.RecordCacheAccess(s.metrics, "deadlines", hit)
		}
		if hit {
			return cached, nil
		}
	}

	snap, err := s.repo.GetByID(ctx, spacID)
	if err != nil {
		return nil, err
	}

	items, err := s.generate(snap, today)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, items, s.cfg.DeadlineCacheTTL); err != nil {
			s.logger.Warn("deadline cache write failed", logging.String("spac_id", spacID), logging.Err(err))
		}
	}

	return items, nil
}

func (s *serviceImpl) ListDeadlines(ctx context.Context, filter spac.ListFilter) ([]FilingDeadlineItem, error) {
	snaps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	today := s.today()

	start := time.Now()
	items, err := GenerateDeadlinesForManyWithHorizon(snaps, today, s.cfg.PeriodicHorizonMonths)
	if s.metrics != nil {
		prometheus.RecordDeadlineCompute(s.metrics, "many", len(items), time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("deadline sets generated",
		logging.Int("entities", len(snaps)),
		logging.Int("deadlines", len(items)),
	)
	return items, nil
}

func (s *serviceImpl) GetAlerts(ctx context.Context, filter spac.ListFilter) ([]DeadlineAlert, error) {
	items, err := s.ListDeadlines(ctx, filter)
	if err != nil {
		return nil, err
	}
	alerts := ToAlerts(items, s.now())

	if s.metrics != nil {
		for _, a := range alerts {
			prometheus.RecordAlert(s.metrics, string(a.Severity), string(a.FilingType))
		}
	}

	s.publishCritical(ctx, alerts)
	return alerts, nil
}

// publishCritical fans critical alerts out to the bus.  Publish failures are
// logged, not surfaced; the query result does not depend on the bus.
func (s *serviceImpl) publishCritical(ctx context.Context, alerts []DeadlineAlert) {
	if s.publisher == nil {
		return
	}
	var critical []DeadlineAlert
	for _, a := range alerts {
		if a.Severity == SeverityCritical {
			critical = append(critical, a)
		}
	}
	if len(critical) == 0 {
		return
	}
	if err := s.publisher.PublishAlerts(ctx, critical); err != nil {
		s.logger.Error("critical alert publish failed",
			logging.Int("count", len(critical)), logging.Err(err))
	}
}

func (s *serviceImpl) GetChecklist(ctx context.Context, filingType filing.FilingType) (checklist.ChecklistTemplate, error) {
	return s.checklists.TemplateFor(filingType)
}

func (s *serviceImpl) GetChecklistProgress(ctx context.Context, spacID string, filingType filing.FilingType) (*ChecklistProgressView, error) {
	if spacID == "" {
		return nil, errors.NewValidationOp("compliance.checklist", "spac id is required")
	}
	tmpl, err := s.checklists.TemplateFor(filingType)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.GetChecklistCompletion(ctx, spacID, filingType)
	if err != nil {
		return nil, err
	}

	view := &ChecklistProgressView{
		SpacID:     spacID,
		FilingType: filingType,
		Items:      make([]ChecklistItemView, 0, len(tmpl.Items)),
		Progress:   checklist.TemplateProgress(tmpl, completed),
	}
	for _, item := range tmpl.Items {
		view.Items = append(view.Items, ChecklistItemView{
			ChecklistItem: item,
			Completed:     completed[item.ID],
			Unlocked:      checklist.IsUnlocked(item, completed),
		})
	}
	return view, nil
}

func (s *serviceImpl) GetDashboard(ctx context.Context) (*Dashboard, error) {
	snaps, err := s.repo.List(ctx, spac.ListFilter{})
	if err != nil {
		return nil, err
	}
	today := s.today()

	items, err := GenerateDeadlinesForManyWithHorizon(snaps, today, s.cfg.PeriodicHorizonMonths)
	if err != nil {
		return nil, err
	}
	alerts := ToAlerts(items, s.now())

	dash := &Dashboard{
		GeneratedAt:   s.now(),
		EntityCount:   len(snaps),
		DeadlineCount: len(items),
		ByUrgency:     make(map[Urgency]int),
		ByCategory:    make(map[filing.FilingCategory]int),
	}
	for _, item := range items {
		dash.ByUrgency[item.Urgency]++
		dash.ByCategory[item.Category]++
		if item.IsOverdue {
			dash.OverdueCount++
		}
		if item.RequiresReview {
			dash.RequireReview++
		}
	}
	for _, a := range alerts {
		if a.Severity == SeverityCritical {
			dash.CriticalAlerts = append(dash.CriticalAlerts, a)
		}
	}
	return dash, nil
}

// generate runs the engine for one snapshot with instrumentation.
func (s *serviceImpl) generate(snap *spac.Snapshot, today time.Time) ([]FilingDeadlineItem, error) {
	start := time.Now()
	items, err := GenerateDeadlinesWithHorizon(snap, today, s.cfg.PeriodicHorizonMonths)
	if s.metrics != nil {
		prometheus.RecordDeadlineCompute(s.metrics, string(snap.Status), len(items), time.Since(start), err)
	}
	return items, err
}

// today captures the computation date once per top-level call.
func (s *serviceImpl) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}
