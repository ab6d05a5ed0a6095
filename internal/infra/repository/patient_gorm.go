package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// likeEscaper makes % and _ in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type PatientGormRepository struct {
	db *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) *PatientGormRepository {
	return &PatientGormRepository{db: db}
}

func (r *PatientGormRepository) Create(
	ctx context.Context,
	p *models.Patient,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientGormRepository) Update(
	ctx context.Context,
	p *models.Patient,
) error {
	return r.db.WithContext(ctx).
		Model(p).
		Select("Name", "Age", "Gender", "Phone", "Address", "MedicalHistory").
		Updates(p).Error
}

func (r *PatientGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// appointments go with the patient, mirrored by the ON DELETE CASCADE key
	return r.db.WithContext(ctx).
		Select("Appointments").
		Delete(p).Error
}

func (r *PatientGormRepository) List(
	ctx context.Context,
	query string,
) ([]models.Patient, error) {

	q := r.db.WithContext(ctx).Model(&models.Patient{})

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(query)+"%")
	}

	var patients []models.Patient
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientGormRepository) ListByName(
	ctx context.Context,
) ([]models.Patient, error) {

	var patients []models.Patient
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientGormRepository) Exists(
	ctx context.Context,
	id uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PatientGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error
	return count, err
}

// Compile-time check
var _ domain.Repository = (*PatientGormRepository)(nil)
