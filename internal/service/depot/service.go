// Package depot is the entry point of the engine. It owns the single depot
// document, serializes every operation on it and persists each change
// through a Store before reporting success.
package depot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

var (
	// ErrNoActiveShift is returned by data entry made while nobody is on shift.
	ErrNoActiveShift = shift.ErrNoActiveShift
	// ErrArchiveDisabled is returned by archive lookups when no archive is configured.
	ErrArchiveDisabled = errors.New("daily report archive is not configured")
)

// Store persists the depot document. Load returns a nil document when
// nothing has been stored yet.
type Store interface {
	Load(ctx context.Context) (*workbook.Document, error)
	Save(ctx context.Context, doc *workbook.Document) error
}

// Archive keeps end-of-day summaries.
type Archive interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
	FindDailyReport(ctx context.Context, date time.Time) (models.DailyReport, error)
}

// Service implements the depot operations.
type Service struct {
	mu      sync.Mutex
	doc     *workbook.Document
	reg     *calibration.Registry
	store   Store
	archive Archive
	logger  *zap.Logger
	now     func() time.Time
	loc     *time.Location
}

// Option customizes a Service.
type Option func(*Service)

// WithArchive enables ArchiveDay persistence and ArchivedDay lookups.
func WithArchive(a Archive) Option {
	return func(s *Service) { s.archive = a }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone calendar days are taken in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService loads the depot document from store, creating and saving a
// blank one on first start.
func NewService(ctx context.Context, reg *calibration.Registry, store Store, logger *zap.Logger, opts ...Option) (*Service, error) {
	if reg == nil {
		return nil, errors.New("calibration registry is required")
	}
	if store == nil {
		return nil, errors.New("document store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		reg:    reg,
		store:  store,
		logger: logger,
		now:    time.Now,
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load depot document: %w", err)
	}

	dirty := false
	if doc == nil {
		s.logger.Info("no depot document stored, creating a blank one")
		doc = workbook.New(reg.Tanks())
		dirty = true
	} else if workbook.EnsureLayout(doc, reg.Tanks()) {
		s.logger.Info("depot document upgraded with missing sections")
		dirty = true
	}
	if dirty {
		if err := store.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("save depot document: %w", err)
		}
	}
	s.doc = doc
	return s, nil
}

// Registry exposes the calibration tables in use.
func (s *Service) Registry() *calibration.Registry { return s.reg }

// Location is the timezone of calendar days.
func (s *Service) Location() *time.Location { return s.loc }

// Now is the service clock in its timezone.
func (s *Service) Now() time.Time { return s.now().In(s.loc) }

// Reset replaces the document with a blank one.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := workbook.New(s.reg.Tanks())
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save depot document: %w", err)
	}
	s.doc = doc
	s.logger.Warn("depot document reset")
	return nil
}

// mutate runs fn on a copy of the document and adopts the copy once the
// store has saved it. gated operations need an open shift.
func (s *Service) mutate(ctx context.Context, op string, gated bool, fn func(doc *workbook.Document, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gated {
		if _, ok := shift.Active(s.doc, s.loc); !ok {
			return ErrNoActiveShift
		}
	}

	work := s.doc.Clone()
	if err := fn(work, s.Now()); err != nil {
		return err
	}
	if err := s.store.Save(ctx, work); err != nil {
		s.logger.Error("persist depot document failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: save depot document: %w", op, err)
	}
	s.doc = work
	s.logger.Debug("depot document saved", zap.String("op", op))
	return nil
}

// read runs fn under the lock without persisting anything.
func (s *Service) read(fn func(doc *workbook.Document, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc, s.Now())
}
