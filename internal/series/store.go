package series

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Observer watches recomputation cost.
type Observer interface {
	ObserveRecompute(d time.Duration, layers int)
}

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver attaches an Observer notified after every recomputation.
func WithObserver(observer Observer) Option {
	return func(s *Store) {
		s.observer = observer
	}
}

// Store owns the grouped dataset, the active category filter and the
// derived snapshot. The grouped dataset is fixed at construction; every
// filter change derives a fresh snapshot from it. A Store is not safe for
// concurrent use.
type Store struct {
	original   []Series
	categories []string
	active     []string
	current    Snapshot
	pub        Publisher
	logger     *slog.Logger
	observer   Observer
	now        func() time.Time
}

// NewStoreFromCSV parses raw CSV text and builds a Store from it.
func NewStoreFromCSV(r io.Reader, pub Publisher, opts ...Option) (*Store, error) {
	records, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return NewStore(records, pub, opts...)
}

// NewStore groups records by category and computes the unfiltered snapshot
// without publishing it. It fails when the categories do not share the same
// x positions.
func NewStore(records []Record, pub Publisher, opts ...Option) (*Store, error) {
	s := &Store{
		pub:    pub,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.original = Group(records)
	s.categories = make([]string, 0, len(s.original))
	for _, layer := range s.original {
		s.categories = append(s.categories, layer.Category())
	}

	start := s.now()
	snapshot, err := Build(s.original)
	if err != nil {
		return nil, fmt.Errorf("series: build initial snapshot: %w", err)
	}
	s.apply(snapshot, start)
	s.logger.Debug("series store ready",
		slog.Int("records", len(records)),
		slog.Any("categories", s.categories),
	)
	return s, nil
}

// Publish broadcasts the current snapshot.
func (s *Store) Publish() {
	if s.pub == nil {
		return
	}
	s.pub.Publish(s.current.Clone())
}

// SetActiveCategories restricts the snapshot to the given categories and
// publishes the result. Order and duplicates are irrelevant; unknown
// categories are dropped silently. An empty set yields an empty snapshot.
func (s *Store) SetActiveCategories(categories ...string) {
	wanted := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		wanted[category] = struct{}{}
	}

	start := s.now()
	filtered := make([]Series, 0, len(s.original))
	for _, layer := range s.original {
		if _, ok := wanted[layer.Category()]; ok {
			filtered = append(filtered, layer)
			delete(wanted, layer.Category())
		}
	}
	for unknown := range wanted {
		s.logger.Debug("ignoring unknown category", slog.String("category", unknown))
	}

	// Any subset of aligned layers is aligned, so no check is needed here.
	s.apply(buildAligned(filtered), start)
	s.Publish()
}

// Snapshot returns a copy of the current snapshot without publishing it.
func (s *Store) Snapshot() Snapshot {
	return s.current.Clone()
}

// Categories lists every category of the dataset in first-seen order.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// ActiveCategories lists the categories in the current snapshot.
func (s *Store) ActiveCategories() []string {
	return append([]string(nil), s.active...)
}

func (s *Store) apply(snapshot Snapshot, start time.Time) {
	s.current = snapshot
	s.active = snapshot.Categories()
	elapsed := s.now().Sub(start)
	if s.observer != nil {
		s.observer.ObserveRecompute(elapsed, len(snapshot.Data))
	}
	s.logger.Debug("snapshot recomputed",
		slog.Any("categories", s.active),
		slog.Int64("max_y", snapshot.MaxY),
		slog.Duration("elapsed", elapsed),
	)
}
