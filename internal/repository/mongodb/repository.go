package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/domain/models"
)

// ErrReportNotFound is returned when no summary was archived for a date.
var ErrReportNotFound = errors.New("daily report not found")

// Repository defines the interface for report storage.
type Repository interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
	FindDailyReport(ctx context.Context, date time.Time) (models.DailyReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	logger   *zap.Logger
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return newRepository(client, dbName, logger), nil
}

func newRepository(client *mongo.Client, dbName string, logger *zap.Logger) *MongoDBRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "daily_reports",
		logger:   logger,
	}
}

// SaveDailyReport stores the summary of a day, replacing an earlier one.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err := collection.ReplaceOne(ctx, dayFilter(report.Date), report, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert daily report: %w", err)
	}
	r.logger.Debug("daily report archived", zap.String("day", dayKey(report.Date)))
	return nil
}

// FindDailyReport loads the summary archived for the day of date.
func (r *MongoDBRepository) FindDailyReport(ctx context.Context, date time.Time) (models.DailyReport, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	var report models.DailyReport
	err := collection.FindOne(ctx, dayFilter(date)).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyReport{}, fmt.Errorf("%s: %w", dayKey(date), ErrReportNotFound)
	}
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("failed to find daily report: %w", err)
	}
	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// dayFilter matches the calendar day of date in its own location.
func dayFilter(date time.Time) bson.M {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return bson.M{"date": bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}}
}

func dayKey(date time.Time) string { return date.Format("2006-01-02") }
