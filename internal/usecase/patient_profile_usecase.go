package usecase

import (
	"context"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/converter"
	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/domain/repository"
	"github.com/Asjad-cell/HealthLink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientProfileUsecase interface {
	CreatePatient(ctx context.Context, actor entity.Actor, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, page, limit int) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, actor entity.Actor, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	GetDoctorPatients(ctx context.Context, doctorID uuid.UUID, page, limit int) (*dto.PatientListResponse, error)
	AddMedicalRecord(ctx context.Context, actor entity.Actor, patientID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	UpdateMedicalRecord(ctx context.Context, actor entity.Actor, patientID, recordID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	UpdateBilling(ctx context.Context, actor entity.Actor, patientID uuid.UUID, req *dto.UpdateBillingRequest) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	transactor         repository.Transactor
	userRepo           repository.UserRepository
	roleRepo           repository.RoleRepository
	patientProfileRepo repository.PatientProfileRepository
	medicalRecordRepo  repository.MedicalRecordRepository
	appointmentRepo    repository.AppointmentRepository
	auditService       service.AuditService
	maxPageLimit       int
	now                func() time.Time
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transactor repository.Transactor,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	patientProfileRepo repository.PatientProfileRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	maxPageLimit int,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		transactor:         transactor,
		userRepo:           userRepo,
		roleRepo:           roleRepo,
		patientProfileRepo: patientProfileRepo,
		medicalRecordRepo:  medicalRecordRepo,
		appointmentRepo:    appointmentRepo,
		auditService:       auditService,
		maxPageLimit:       maxPageLimit,
		now:                time.Now,
	}
}

func (u *patientProfileUsecase) CreatePatient(ctx context.Context, actor entity.Actor, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := entity.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, entity.NewValidationError("date_of_birth", "%v", err)
	}

	var profile *entity.PatientProfile
	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		role, err := u.roleRepo.FindByName(ctx, tx, entity.RolePatient)
		if err != nil {
			u.log.Warnf("Failed to find patient role: %+v", err)
			return err
		}
		if role == nil {
			return ErrRoleNotFound
		}

		profile = &entity.PatientProfile{
			PhoneNumber: req.PhoneNumber,
			DateOfBirth: dob,
			Gender:      req.Gender,
			Address:     req.Address,
			User: entity.User{
				Email:    req.Email,
				FullName: req.FullName,
				RoleID:   role.ID,
			},
		}
		if err := u.patientProfileRepo.Create(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return mapProfileWriteError(err)
		}

		return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionPatientCreate, "patient_profile",
			profile.UserID.String(), converter.PatientProfileToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientProfileUsecase) GetAllPatients(ctx context.Context, page, limit int) (*dto.PatientListResponse, error) {
	p, err := entity.NewPage(page, limit, u.maxPageLimit)
	if err != nil {
		return nil, err
	}

	profiles, total, err := u.patientProfileRepo.FindAll(ctx, u.db, p.Limit, p.Offset())
	if err != nil {
		u.log.Warnf("Failed to find all patient profiles: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients:   converter.PatientProfilesToResponses(profiles),
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}, nil
}

func (u *patientProfileUsecase) UpdatePatient(ctx context.Context, actor entity.Actor, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := entity.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, entity.NewValidationError("date_of_birth", "%v", err)
		}
		dob = &parsed
	}

	var profile *entity.PatientProfile
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		profile, err = u.patientProfileRepo.FindByUserID(ctx, tx, patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrPatientNotFound
		}

		oldValue := converter.PatientProfileToResponse(profile)

		userChanged := false
		if req.Email != nil {
			profile.User.Email = *req.Email
			userChanged = true
		}
		if req.FullName != nil {
			profile.User.FullName = *req.FullName
			userChanged = true
		}
		if req.PhoneNumber != nil {
			profile.PhoneNumber = *req.PhoneNumber
		}
		if dob != nil {
			profile.DateOfBirth = *dob
		}
		if req.Gender != nil {
			profile.Gender = *req.Gender
		}
		if req.Address != nil {
			profile.Address = *req.Address
		}

		if userChanged {
			if err := u.userRepo.Update(ctx, tx, &profile.User); err != nil {
				u.log.Warnf("Failed to update patient user: %+v", err)
				return mapProfileWriteError(err)
			}
		}
		if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to update patient profile: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionPatientUpdate, "patient_profile",
			patientID.String(), oldValue, converter.PatientProfileToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

// GetDoctorPatients pages through the distinct patients the doctor has
// appointments with, including their medical history.
func (u *patientProfileUsecase) GetDoctorPatients(ctx context.Context, doctorID uuid.UUID, page, limit int) (*dto.PatientListResponse, error) {
	p, err := entity.NewPage(page, limit, u.maxPageLimit)
	if err != nil {
		return nil, err
	}

	ids, total, err := u.appointmentRepo.FindPatientIDsByDoctor(ctx, u.db, doctorID, p.Limit, p.Offset())
	if err != nil {
		u.log.Warnf("Failed to find patients of doctor %s: %+v", doctorID, err)
		return nil, err
	}

	profiles, err := u.patientProfileRepo.FindByUserIDs(ctx, u.db, ids)
	if err != nil {
		u.log.Warnf("Failed to load patient profiles: %+v", err)
		return nil, err
	}

	// Keep the appointment ordering of ids.
	byID := make(map[uuid.UUID]entity.PatientProfile, len(profiles))
	for _, profile := range profiles {
		byID[profile.UserID] = profile
	}
	ordered := make([]entity.PatientProfile, 0, len(ids))
	for _, id := range ids {
		if profile, ok := byID[id]; ok {
			ordered = append(ordered, profile)
		}
	}

	return &dto.PatientListResponse{
		Patients:   converter.PatientProfilesToResponses(ordered),
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}, nil
}

func (u *patientProfileUsecase) AddMedicalRecord(ctx context.Context, actor entity.Actor, patientID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	recordedAt, err := u.recordedAt(req.RecordedAt)
	if err != nil {
		return nil, err
	}

	var record *entity.MedicalRecord
	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.checkTreats(ctx, tx, actor, patientID); err != nil {
			return err
		}

		record = &entity.MedicalRecord{
			PatientID:  patientID,
			DoctorID:   actor.ID,
			Diagnosis:  req.Diagnosis,
			Treatment:  req.Treatment,
			Notes:      req.Notes,
			RecordedAt: recordedAt,
		}
		if err := u.medicalRecordRepo.Create(ctx, tx, record); err != nil {
			u.log.Warnf("Failed to create medical record: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionRecordAdd, "medical_record",
			record.ID.String(), converter.MedicalRecordToResponse(record))
	})
	if err != nil {
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *patientProfileUsecase) UpdateMedicalRecord(ctx context.Context, actor entity.Actor, patientID, recordID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	var recordedAt *time.Time
	if req.RecordedAt != "" {
		parsed, err := u.recordedAt(req.RecordedAt)
		if err != nil {
			return nil, err
		}
		recordedAt = &parsed
	}

	var record *entity.MedicalRecord
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.checkTreats(ctx, tx, actor, patientID); err != nil {
			return err
		}

		var err error
		record, err = u.medicalRecordRepo.FindByID(ctx, tx, recordID)
		if err != nil {
			u.log.Warnf("Failed to find medical record %s: %+v", recordID, err)
			return err
		}
		if record == nil {
			return ErrMedicalRecordNotFound
		}
		if record.PatientID != patientID {
			return ErrRecordNotOwned
		}

		oldValue := converter.MedicalRecordToResponse(record)
		record.Diagnosis = req.Diagnosis
		record.Treatment = req.Treatment
		record.Notes = req.Notes
		if recordedAt != nil {
			record.RecordedAt = *recordedAt
		}

		if err := u.medicalRecordRepo.Update(ctx, tx, record); err != nil {
			u.log.Warnf("Failed to update medical record %s: %+v", recordID, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionRecordUpdate, "medical_record",
			recordID.String(), oldValue, converter.MedicalRecordToResponse(record))
	})
	if err != nil {
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// UpdateBilling sets the patient's outstanding billing amount.
func (u *patientProfileUsecase) UpdateBilling(ctx context.Context, actor entity.Actor, patientID uuid.UUID, req *dto.UpdateBillingRequest) (*dto.PatientResponse, error) {
	if req.Amount.IsNegative() {
		return nil, entity.NewValidationError("amount", "must not be negative")
	}

	var profile *entity.PatientProfile
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.checkTreats(ctx, tx, actor, patientID); err != nil {
			return err
		}

		var err error
		profile, err = u.patientProfileRepo.FindByUserID(ctx, tx, patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrPatientNotFound
		}

		previous := profile.BillingAmount
		profile.BillingAmount = req.Amount.Round(2)
		if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to update billing for patient %s: %+v", patientID, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionBillingUpdate, "patient_profile", patientID.String(),
			map[string]any{"billing_amount": previous}, map[string]any{"billing_amount": profile.BillingAmount})
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

// checkTreats allows a doctor to touch a patient's records and billing only
// once they share an appointment.
func (u *patientProfileUsecase) checkTreats(ctx context.Context, tx *gorm.DB, actor entity.Actor, patientID uuid.UUID) error {
	if !actor.IsDoctor() {
		return ErrNotYourPatient
	}

	ok, err := u.appointmentRepo.HasAppointmentWith(ctx, tx, actor.ID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check doctor %s and patient %s: %+v", actor.ID, patientID, err)
		return err
	}
	if !ok {
		return ErrNotYourPatient
	}
	return nil
}

func (u *patientProfileUsecase) recordedAt(raw string) (time.Time, error) {
	if raw == "" {
		return u.now().UTC(), nil
	}
	t, err := entity.ParseDate(raw)
	if err != nil {
		return time.Time{}, entity.NewValidationError("recorded_at", "%v", err)
	}
	return t, nil
}
