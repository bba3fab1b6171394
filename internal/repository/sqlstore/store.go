// Package sqlstore keeps the depot document as a JSON blob in a SQL table,
// on SQLite for a single workstation or PostgreSQL for a shared server.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/fueldepot/internal/config"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

const documentID = "depot"

// documentRecord is the single stored document.
type documentRecord struct {
	ID        string `gorm:"primaryKey;size:32"`
	Revision  string `gorm:"size:36;not null"`
	Body      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (documentRecord) TableName() string { return "depot_documents" }

// revisionRecord keeps the revision trail of saved documents.
type revisionRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Revision  string `gorm:"size:36;uniqueIndex"`
	Size      int
	CreatedAt time.Time
}

func (revisionRecord) TableName() string { return "depot_revisions" }

// Store implements the depot document store on top of GORM.
type Store struct {
	db       *gorm.DB
	logger   *zap.Logger
	revision string
}

// Open connects to the backend selected in cfg and migrates the schema.
func Open(cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Backend {
	case config.BackendSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported backend %q", cfg.Backend)
	}
	return OpenDialector(dialector, logger)
}

// OpenDialector opens the store on an explicit GORM dialector.
func OpenDialector(dialector gorm.Dialector, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialector.Name(), err)
	}
	if err := db.AutoMigrate(&documentRecord{}, &revisionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate %s database: %w", dialector.Name(), err)
	}
	logger.Info("document store ready", zap.String("dialect", dialector.Name()))
	return &Store{db: db, logger: logger}, nil
}

// Load returns the stored document, or nil when none was saved yet.
func (s *Store) Load(ctx context.Context) (*workbook.Document, error) {
	var rec documentRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", documentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read depot document: %w", err)
	}

	doc, err := workbook.Unmarshal(rec.Body)
	if err != nil {
		return nil, err
	}
	s.revision = rec.Revision
	s.logger.Debug("depot document loaded", zap.String("revision", rec.Revision), zap.Int("bytes", len(rec.Body)))
	return doc, nil
}

// Save replaces the stored document and records a new revision.
func (s *Store) Save(ctx context.Context, doc *workbook.Document) error {
	body, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode depot document: %w", err)
	}
	revision := uuid.NewString()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := documentRecord{ID: documentID, Revision: revision, Body: body}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return tx.Create(&revisionRecord{Revision: revision, Size: len(body)}).Error
	})
	if err != nil {
		return fmt.Errorf("write depot document: %w", err)
	}

	s.revision = revision
	s.logger.Debug("depot document saved", zap.String("revision", revision), zap.Int("bytes", len(body)))
	return nil
}

// Revision is the id of the last document loaded or saved.
func (s *Store) Revision() string { return s.revision }

// Revisions counts the saved revisions.
func (s *Store) Revisions(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&revisionRecord{}).Count(&n).Error
	return n, err
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
