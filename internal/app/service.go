// Package service provides the valuation service that implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/prospect/internal/adapters/mq/queue"
	"github.com/okian/prospect/internal/adapters/mq/worker"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/offers"
	"github.com/okian/prospect/internal/domain/position"
	"github.com/okian/prospect/internal/domain/tables"
	"github.com/okian/prospect/internal/domain/types"
	"github.com/okian/prospect/internal/domain/valuation"
	"github.com/okian/prospect/pkg/logger"
	"github.com/okian/prospect/pkg/metrics"
)

// Service resolves model versions and runs valuations against them.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog *tables.Catalog
	engines map[string]*valuation.Engine
	jobs    *queue.InMemoryQueue
	pool    *worker.Pool

	// Configuration
	defaultModel string
	moics        []float64
	stakes       []float64
	maxBatch     int
	workers      int
	queueSize    int

	// State
	started bool

	// Counters
	computed         atomic.Int64
	validationErrors atomic.Int64
	fallbacks        atomic.Int64
	failures         atomic.Int64

	// Observability
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records on m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithCatalog replaces the built-in model catalog.
func WithCatalog(c *tables.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithDefaultModel sets the version used when a request names none.
func WithDefaultModel(version string) Option {
	return func(s *Service) {
		if version != "" {
			s.defaultModel = version
		}
	}
}

// WithMOICTargets sets the offer schedule.
func WithMOICTargets(moics []float64) Option {
	return func(s *Service) {
		if len(moics) > 0 {
			s.moics = slices.Clone(moics)
		}
	}
}

// WithEquityStakes sets the stake percentages each offer is scaled to.
func WithEquityStakes(stakes []float64) Option {
	return func(s *Service) {
		if len(stakes) > 0 {
			s.stakes = slices.Clone(stakes)
		}
	}
}

// WithMaxBatchSize caps ComputeBatch.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// WithWorkers sets how many goroutines run batch items.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithQueueSize bounds the number of batch items waiting for a worker.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:   tables.Builtin(),
		moics:     slices.Clone(offers.DefaultMOICs),
		stakes:    slices.Clone(offers.DefaultStakes),
		maxBatch:  100,
		workers:   runtime.NumCPU(),
		queueSize: 1024,
		logger:    nil, // Will be replaced when service starts
		metrics:   metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds one engine per model version. The catalog and engines are
// read-only afterwards.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting valuation service...")

	if s.defaultModel == "" {
		s.defaultModel = s.catalog.Default().Version()
	}
	if _, err := s.catalog.Get(s.defaultModel); err != nil {
		return fmt.Errorf("default model: %w", err)
	}

	gen, err := offers.NewGenerator(offers.WithMOICs(s.moics...), offers.WithStakes(s.stakes...))
	if err != nil {
		return fmt.Errorf("offer schedule: %w", err)
	}

	engines := make(map[string]*valuation.Engine, len(s.catalog.Versions()))
	for _, v := range s.catalog.Versions() {
		set, err := s.catalog.Get(v)
		if err != nil {
			return err
		}
		e, err := valuation.New(set, gen)
		if err != nil {
			return fmt.Errorf("model %s: %w", v, err)
		}
		engines[v] = e
	}
	s.engines = engines

	s.jobs = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize), queue.WithMetrics(s.metrics))
	s.pool = worker.NewPool(s.workers, s.jobs,
		worker.WithLogger(s.logger.Named("worker")),
		worker.WithMetrics(s.metrics))
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "valuation service started",
		logger.String("defaultModel", s.defaultModel),
		logger.Any("models", s.catalog.Versions()),
		logger.Any("moicTargets", s.moics),
		logger.Any("equityStakes", s.stakes),
		logger.Int("workers", s.pool.Size()),
	)

	return nil
}

// Stop marks the service stopped and drains the worker pool. Later calls
// fail with ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	pool := s.pool
	s.engines = nil
	s.jobs = nil
	s.pool = nil
	s.started = false
	s.mu.Unlock()

	// Queued jobs take the read lock, so drain outside it.
	ctx := context.Background()
	if err := pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.logger.Info(ctx, "valuation service stopped")
}

// DefaultModel returns the version used when a request names none.
func (s *Service) DefaultModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.defaultModel != "" {
		return s.defaultModel
	}
	return s.catalog.Default().Version()
}

func (s *Service) engine(version string) (*valuation.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	if version == "" {
		version = s.defaultModel
	}
	e, ok := s.engines[version]
	if !ok {
		return nil, fmt.Errorf("%w: %q", tables.ErrUnknownModel, version)
	}
	return e, nil
}

// Compute values one request. Position parsing is case-insensitive.
func (s *Service) Compute(ctx context.Context, req types.ValuationRequest) (model.ValuationResult, error) {
	start := time.Now()

	e, err := s.engine(req.Model)
	if err != nil {
		s.failures.Add(1)
		s.metrics.RecordValuationError(req.Model, ErrorKind(err))
		return model.ValuationResult{}, err
	}
	version := e.Set().Version()

	pos, err := position.Parse(req.Position)
	if err != nil {
		err = &valuation.ValidationError{Field: "position", Value: fmt.Sprintf("%q", req.Position), Err: err}
		return model.ValuationResult{}, s.rejected(ctx, version, err)
	}

	res, err := e.Compute(req.Rank, pos)
	if err != nil {
		var ve *valuation.ValidationError
		if errors.As(err, &ve) {
			return model.ValuationResult{}, s.rejected(ctx, version, err)
		}
		s.failures.Add(1)
		s.metrics.RecordValuationError(version, ErrorKind(err))
		s.logger.Error(ctx, "valuation failed",
			logger.String("model", version),
			logger.Int("rank", req.Rank),
			logger.String("position", pos.String()),
			logger.Error(err),
		)
		return model.ValuationResult{}, err
	}
	res.ID = uuid.NewString()

	elapsed := time.Since(start)
	s.computed.Add(1)
	s.metrics.RecordValuation(version, res.Tier.Key, pos.String())
	s.metrics.RecordValuationLatency(version, float64(elapsed.Microseconds())/1000)

	if len(res.Warnings) > 0 {
		s.fallbacks.Add(1)
		s.metrics.RecordFallback(version)
		s.logger.Warn(ctx, "valuation used fallback tables",
			logger.String("id", res.ID),
			logger.String("model", version),
			logger.String("tier", res.Tier.Label),
			logger.String("position", pos.String()),
			logger.Any("warnings", res.Warnings),
		)
	}

	s.logger.Debug(ctx, "valuation computed",
		logger.String("id", res.ID),
		logger.String("model", version),
		logger.Int("rank", req.Rank),
		logger.String("position", pos.String()),
		logger.String("projected", res.EarningsDisplay),
		logger.Bool("fallback", len(res.Warnings) > 0),
		logger.Duration("took", elapsed),
	)
	return res, nil
}

func (s *Service) rejected(ctx context.Context, version string, err error) error {
	var ve *valuation.ValidationError
	field := "input"
	if errors.As(err, &ve) {
		field = ve.Field
	}
	s.validationErrors.Add(1)
	s.metrics.RecordValidationError(field)
	s.logger.Info(ctx, "valuation rejected",
		logger.String("model", version),
		logger.String("field", field),
		logger.Error(err),
	)
	return err
}

// BatchItem is the outcome of one request in a batch. Exactly one of Result
// and Err is set.
type BatchItem struct {
	Request types.ValuationRequest
	Result  *model.ValuationResult
	Err     error
}

// ComputeBatch values each request independently; one bad item does not fail
// the batch. Items run on the worker pool and come back in request order.
// Items not started before ctx is done carry ctx's error, which is also
// returned.
func (s *Service) ComputeBatch(ctx context.Context, reqs []types.ValuationRequest) ([]BatchItem, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	s.mu.RLock()
	limit := s.maxBatch
	jobs := s.jobs
	s.mu.RUnlock()
	if len(reqs) > limit {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(reqs), limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.metrics.RecordBatchSize(len(reqs))

	out := make([]BatchItem, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		i, req := i, req
		wg.Add(1)
		job := func() {
			defer wg.Done()
			out[i] = s.batchItem(ctx, req)
		}
		// A full or closed queue runs the item on the caller's goroutine.
		if jobs == nil || !jobs.Enqueue(ctx, job) {
			job()
		}
	}
	wg.Wait()

	return out, ctx.Err()
}

func (s *Service) batchItem(ctx context.Context, req types.ValuationRequest) BatchItem {
	item := BatchItem{Request: req}
	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}
	res, err := s.Compute(ctx, req)
	item.Err = err
	if err == nil {
		item.Result = &res
	}
	return item
}

// Models describes every model version in ascending order.
func (s *Service) Models() []types.ModelInfo {
	def := s.DefaultModel()
	versions := s.catalog.Versions()
	out := make([]types.ModelInfo, 0, len(versions))
	for _, v := range versions {
		set, err := s.catalog.Get(v)
		if err != nil {
			continue
		}
		out = append(out, describe(set, v == def))
	}
	return out
}

// Tiers returns the rank bands of a model version; empty selects the default.
func (s *Service) Tiers(version string) ([]types.TierInfo, error) {
	if version == "" {
		version = s.DefaultModel()
	}
	set, err := s.catalog.Get(version)
	if err != nil {
		return nil, err
	}
	return tierInfos(set), nil
}

func describe(set *tables.Set, isDefault bool) types.ModelInfo {
	return types.ModelInfo{
		Version:     set.Version(),
		Description: set.Description(),
		Projector:   string(set.Projector()),
		Probability: string(set.Probability()),
		Source:      set.Source(),
		Default:     isDefault,
		Tiers:       tierInfos(set),
	}
}

func tierInfos(set *tables.Set) []types.TierInfo {
	bands := set.Tiers().Bands()
	out := make([]types.TierInfo, len(bands))
	for i, b := range bands {
		out[i] = types.TierInfo{Key: b.Key, Label: b.Label, Min: b.Min, Max: b.Max}
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queueLength, workerCount := 0, 0
	if s.jobs != nil {
		queueLength = s.jobs.Len()
		workerCount = s.pool.Size()
	}

	return map[string]interface{}{
		"started":          s.started,
		"defaultModel":     s.defaultModel,
		"models":           len(s.catalog.Versions()),
		"computed":         s.computed.Load(),
		"validationErrors": s.validationErrors.Load(),
		"fallbacks":        s.fallbacks.Load(),
		"failures":         s.failures.Load(),
		"queueLength":      queueLength,
		"workerCount":      workerCount,
	}
}
