// Package backup exports the patient and appointment dumps as one JSON
// document and uploads it to an S3-compatible bucket.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
)

const keyLayout = "20060102T150405Z"

// Uploader is the part of *s3.Client the exporter needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Snapshot struct {
	GeneratedAt  string                     `json:"generated_at"`
	Patients     []dto.PatientRecordDTO     `json:"patients"`
	Appointments []dto.AppointmentRecordDTO `json:"appointments"`
}

type Exporter struct {
	patients     *ucPatient.ListPatients
	appointments *ucAppointment.ListAppointments
	clock        *timezone.Clock
	uploader     Uploader
	bucket       string
	prefix       string
	now          func() time.Time
}

func NewExporter(
	patients *ucPatient.ListPatients,
	appointments *ucAppointment.ListAppointments,
	clock *timezone.Clock,
	uploader Uploader,
	cfg config.S3Config,
) *Exporter {
	return &Exporter{
		patients:     patients,
		appointments: appointments,
		clock:        clock,
		uploader:     uploader,
		bucket:       cfg.Bucket,
		prefix:       cfg.Prefix,
		now:          time.Now,
	}
}

// NewS3Client builds a client with static credentials. A custom endpoint
// (MinIO, R2, ...) switches to path-style addressing.
func NewS3Client(cfg config.S3Config) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3_BUCKET is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required")
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return s3.New(opts), nil
}

// Key is the object name of a snapshot taken at t.
func Key(prefix string, t time.Time) string {
	return path.Join(prefix, "clinic-"+t.UTC().Format(keyLayout)+".json")
}

func (e *Exporter) Build(ctx context.Context) (*Snapshot, error) {
	patients, err := e.patients.Execute(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "list patients")
	}

	apps, err := e.appointments.Execute(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list appointments")
	}

	return &Snapshot{
		GeneratedAt:  e.now().UTC().Format(dto.ISOLayout),
		Patients:     dto.PatientRecords(patients),
		Appointments: dto.AppointmentRecords(apps, e.clock.Location()),
	}, nil
}

// Run builds a snapshot and uploads it, returning the object key.
func (e *Exporter) Run(ctx context.Context) (string, error) {
	snap, err := e.Build(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return "", errors.Wrap(err, "encode snapshot")
	}

	key := Key(e.prefix, e.now())
	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}

	return key, nil
}
