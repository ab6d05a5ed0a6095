package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/backup"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "abort the export after this long")
	flag.Parse()

	if err := run(*timeout); err != nil {
		log.Fatalf("snapshot failed: %v", err)
	}
}

func run(timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := backup.NewS3Client(cfg.S3)
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db)

	exporter := backup.NewExporter(
		ucPatient.NewListPatients(infraRepo.NewPatientGormRepository(db)),
		ucAppointment.NewListAppointments(infraRepo.NewAppointmentGormRepository(db)),
		timezone.NewClock(cfg.ClinicTimezone),
		client,
		cfg.S3,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	key, err := exporter.Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("snapshot uploaded to s3://%s/%s", cfg.S3.Bucket, key)
	return nil
}
