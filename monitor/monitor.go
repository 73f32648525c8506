package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"product-extractor/internal/types"
	perrors "product-extractor/pkg/errors"
	"product-extractor/store"
	"product-extractor/utils"
)

// WatchListKey is the store key holding the whole watch-list as JSON
const WatchListKey = "stockWatchList"

// Extractor produces a record from a loaded page
type Extractor interface {
	Extract(ctx context.Context, page types.Page) (*types.ProductRecord, error)
}

// Loader opens a product page
type Loader interface {
	Load(ctx context.Context, url string) (utils.LoadedPage, error)
}

// ChangeFunc is called after an entry's stock status changed. During a
// scheduled batch it runs on the schedule goroutine, so it must not call
// Start or Stop.
type ChangeFunc func(entry types.WatchEntry, previous types.StockStatus)

// Result summarizes one batch of re-checks
type Result struct {
	Checked int `json:"checked"`
	Failed  int `json:"failed"`
}

// Monitor keeps the watch-list and re-checks its entries on a schedule
type Monitor struct {
	store     store.Store
	extractor Extractor
	loader    Loader
	config    *types.Config
	logger    types.Logger

	// mu serializes watch-list read-modify-write cycles
	mu       sync.Mutex
	onChange ChangeFunc

	schedMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}

	now func() time.Time
}

// New creates a monitor. A nil store disables it: every operation becomes a
// no-op returning empty values.
func New(st store.Store, extractor Extractor, loader Loader, config *types.Config, logger types.Logger) *Monitor {
	if config == nil {
		config = types.DefaultConfig()
	}
	return &Monitor{
		store:     st,
		extractor: extractor,
		loader:    loader,
		config:    config,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether the monitor has a store
func (m *Monitor) Enabled() bool {
	return m.store != nil
}

// OnChange registers fn to be told about stock transitions
func (m *Monitor) OnChange(fn ChangeFunc) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// List returns the watch-list
func (m *Monitor) List(ctx context.Context) ([]types.WatchEntry, error) {
	if !m.Enabled() {
		return []types.WatchEntry{}, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// AddOrUpdate upserts the entry for record.URL and appends one stock history
// item. A new entry gets an id and an added date.
func (m *Monitor) AddOrUpdate(ctx context.Context, record *types.ProductRecord) (*types.WatchEntry, error) {
	if !m.Enabled() {
		return nil, nil
	}
	if record == nil || record.URL == "" {
		return nil, perrors.NewValidation("url", "record has no url")
	}

	m.mu.Lock()
	entries, err := m.load(ctx)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	now := m.now()
	idx := -1
	for i := range entries {
		if entries[i].URL == record.URL {
			idx = i
			break
		}
	}
	isNew := idx < 0
	if isNew {
		entries = append(entries, types.WatchEntry{
			ID:      uuid.NewString(),
			URL:     record.URL,
			AddedAt: now,
		})
		idx = len(entries) - 1
	}

	entry := &entries[idx]
	previous := entry.LastStock
	if record.Title != "" {
		entry.Title = record.Title
	}
	if len(record.Images) > 0 {
		entry.Image = record.Images[0]
	}
	entry.Platform = record.Platform
	entry.LastStock = record.StockStatus
	entry.LastQuantity = record.StockQuantity
	entry.LastCheckedAt = now
	entry.StockHistory = append(entry.StockHistory, types.StockSnapshot{
		Status:   record.StockStatus,
		Quantity: record.StockQuantity,
		Date:     now,
	})
	result := *entry
	onChange := m.onChange

	if err := m.save(ctx, entries); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	if !isNew && previous != record.StockStatus {
		m.logger.Infof("Stock of %s changed: %s -> %s", record.URL, previous, record.StockStatus)
		if onChange != nil {
			onChange(result, previous)
		}
	}
	return &result, nil
}

// Start schedules a re-check of every entry each interval, replacing any
// running schedule. The first batch runs one interval after the call.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) error {
	if !m.Enabled() {
		return nil
	}
	if interval <= 0 {
		interval = m.config.MonitorInterval
	}
	if interval <= 0 {
		return perrors.NewValidation("interval", "monitoring interval must be positive")
	}

	m.schedMu.Lock()
	defer m.schedMu.Unlock()
	m.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.logger.Infof("Stock monitoring started, interval %v", interval)
		for {
			select {
			case <-runCtx.Done():
				m.logger.Info("Stock monitoring stopped")
				return
			case <-ticker.C:
				if _, err := m.CheckAll(runCtx); err != nil && runCtx.Err() == nil {
					m.logger.Errorf("Stock check failed: %v", err)
				}
			}
		}
	}()
	return nil
}

// Stop cancels the schedule and waits for a running batch to wind down
func (m *Monitor) Stop() {
	m.schedMu.Lock()
	defer m.schedMu.Unlock()
	m.stopLocked()
}

// stopLocked also clears a schedule that already ended on its own
func (m *Monitor) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
	m.done = nil
}

// Running reports whether a schedule is active. A schedule whose parent
// context was cancelled is no longer running.
func (m *Monitor) Running() bool {
	m.schedMu.Lock()
	defer m.schedMu.Unlock()
	if m.done == nil {
		return false
	}
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

// CheckAll re-extracts every watched product now. Failures are logged and
// counted; they never stop the batch.
func (m *Monitor) CheckAll(ctx context.Context) (Result, error) {
	entries, err := m.List(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(entries) == 0 {
		return Result{}, nil
	}

	workers := m.config.MonitorConcurrency
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result Result
	)
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := m.check(ctx, url)
			mu.Lock()
			result.Checked++
			if err != nil {
				result.Failed++
			}
			mu.Unlock()
			if err != nil {
				m.logger.Warnf("Re-check of %s failed: %v", url, err)
			}
		}(entry.URL)
	}
	wg.Wait()

	m.logger.Infof("Stock check done: %d checked, %d failed", result.Checked, result.Failed)
	return result, ctx.Err()
}

func (m *Monitor) check(ctx context.Context, url string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perrors.NewPanic("monitor", r)
		}
	}()

	page, err := m.loader.Load(ctx, url)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	defer page.Close()

	record, err := m.extractor.Extract(ctx, page)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	// the watch-list key is the URL the entry was added with
	record.URL = url
	_, err = m.AddOrUpdate(ctx, record)
	return err
}

func (m *Monitor) load(ctx context.Context) ([]types.WatchEntry, error) {
	data, err := m.store.Get(ctx, WatchListKey)
	if errors.Is(err, store.ErrNotFound) {
		return []types.WatchEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrStoreUnavailable, err)
	}

	var entries []types.WatchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, perrors.NewMalformed("watchList", "stored watch-list is not valid JSON", err)
	}
	if entries == nil {
		entries = []types.WatchEntry{}
	}
	return entries, nil
}

func (m *Monitor) save(ctx context.Context, entries []types.WatchEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, WatchListKey, data); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrStoreUnavailable, err)
	}
	return nil
}
