package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Document is the exported shape: every collection of the store.
type Document struct {
	TakenAt             time.Time                    `json:"taken_at"`
	AvailableDates      []models.AvailableDate       `json:"available_dates"`
	AvailableTimes      []models.AvailableTime       `json:"available_times"`
	ServiceAvailability []models.ServiceAvailability `json:"service_availability"`
	Appointments        []models.Appointment         `json:"appointments"`
	Services            []models.Service             `json:"services"`
	Settings            []models.SalonSetting        `json:"salon_settings"`
	Consumptions        []models.SlotConsumption     `json:"slot_consumptions"`
}

type Exporter struct {
	db     *gorm.DB
	s3     objectPutter
	bucket string
	now    func() time.Time
}

func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func NewExporter(db *gorm.DB, client *s3.Client, bucket string) *Exporter {
	return &Exporter{db: db, s3: client, bucket: bucket, now: time.Now}
}

// Collect reads every table into one Document.
func (e *Exporter) Collect(ctx context.Context) (*Document, error) {
	doc := &Document{TakenAt: e.now().UTC()}
	q := e.db.WithContext(ctx)

	for _, dest := range []any{
		&doc.AvailableDates,
		&doc.AvailableTimes,
		&doc.ServiceAvailability,
		&doc.Appointments,
		&doc.Services,
		&doc.Settings,
		&doc.Consumptions,
	} {
		if err := q.Find(dest).Error; err != nil {
			return nil, fmt.Errorf("snapshot read: %w", err)
		}
	}
	return doc, nil
}

func (e *Exporter) Key(t time.Time) string {
	return "snapshots/" + t.UTC().Format("2006/01/02/150405") + ".json"
}

// Run exports the store and returns the object key written.
func (e *Exporter) Run(ctx context.Context) (string, error) {
	doc, err := e.Collect(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("snapshot encode: %w", err)
	}

	key := e.Key(doc.TakenAt)
	if _, err := e.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", fmt.Errorf("snapshot upload: %w", err)
	}

	logger.Log.Info("snapshot uploaded",
		zap.String("bucket", e.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(body)),
	)
	return key, nil
}
