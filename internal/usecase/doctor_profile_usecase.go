package usecase

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/converter"
	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/domain/repository"
	pgrepo "github.com/Asjad-cell/HealthLink/internal/repository"
	"github.com/Asjad-cell/HealthLink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorProfileUsecase interface {
	CreateDoctor(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, page, limit int) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	ToggleDoctorStatus(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) (*dto.DoctorResponse, error)
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	transactor        repository.Transactor
	userRepo          repository.UserRepository
	roleRepo          repository.RoleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	maxPageLimit      int
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transactor repository.Transactor,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	maxPageLimit int,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		transactor:        transactor,
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		maxPageLimit:      maxPageLimit,
	}
}

func (u *doctorProfileUsecase) CreateDoctor(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee.IsNegative() {
		return nil, entity.NewValidationError("consultation_fee", "must not be negative")
	}

	var profile *entity.DoctorProfile
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		role, err := u.roleRepo.FindByName(ctx, tx, entity.RoleDoctor)
		if err != nil {
			u.log.Warnf("Failed to find doctor role: %+v", err)
			return err
		}
		if role == nil {
			return ErrRoleNotFound
		}

		// User and profile are inserted together through the association.
		profile = &entity.DoctorProfile{
			LicenseNumber:   req.LicenseNumber,
			Specialization:  req.Specialization,
			Biography:       req.Biography,
			ConsultationFee: req.ConsultationFee,
			User: entity.User{
				Email:    req.Email,
				FullName: req.FullName,
				RoleID:   role.ID,
			},
		}
		if err := u.doctorProfileRepo.Create(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create doctor: %+v", err)
			return mapProfileWriteError(err)
		}

		return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionDoctorCreate, "doctor_profile",
			profile.UserID.String(), converter.DoctorProfileToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetAllDoctors(ctx context.Context, page, limit int) (*dto.DoctorListResponse, error) {
	p, err := entity.NewPage(page, limit, u.maxPageLimit)
	if err != nil {
		return nil, err
	}

	profiles, total, err := u.doctorProfileRepo.FindAll(ctx, u.db, p.Limit, p.Offset())
	if err != nil {
		u.log.Warnf("Failed to find all doctor profiles: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors:    converter.DoctorProfilesToResponses(profiles),
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}, nil
}

func (u *doctorProfileUsecase) UpdateDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, entity.NewValidationError("consultation_fee", "must not be negative")
	}

	var profile *entity.DoctorProfile
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		profile, err = u.doctorProfileRepo.FindByUserID(ctx, tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrDoctorNotFound
		}

		oldValue := converter.DoctorProfileToResponse(profile)

		userChanged := false
		if req.Email != nil {
			profile.User.Email = *req.Email
			userChanged = true
		}
		if req.FullName != nil {
			profile.User.FullName = *req.FullName
			userChanged = true
		}
		if req.LicenseNumber != nil {
			profile.LicenseNumber = *req.LicenseNumber
		}
		if req.Specialization != nil {
			profile.Specialization = *req.Specialization
		}
		if req.Biography != nil {
			profile.Biography = *req.Biography
		}
		if req.ConsultationFee != nil {
			profile.ConsultationFee = *req.ConsultationFee
		}

		if userChanged {
			if err := u.userRepo.Update(ctx, tx, &profile.User); err != nil {
				u.log.Warnf("Failed to update doctor user: %+v", err)
				return mapProfileWriteError(err)
			}
		}
		if err := u.doctorProfileRepo.Update(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return mapProfileWriteError(err)
		}

		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionDoctorUpdate, "doctor_profile",
			doctorID.String(), oldValue, converter.DoctorProfileToResponse(profile))
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// ToggleDoctorStatus flips the doctor's active flag. Inactive doctors keep
// their appointments but cannot be booked.
func (u *doctorProfileUsecase) ToggleDoctorStatus(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	var profile *entity.DoctorProfile
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		profile, err = u.doctorProfileRepo.FindByUserID(ctx, tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrDoctorNotFound
		}

		wasActive := profile.User.Active()
		active := !wasActive
		rows, err := u.userRepo.SetActive(ctx, tx, doctorID, active)
		if err != nil {
			u.log.Warnf("Failed to toggle doctor %s: %+v", doctorID, err)
			return err
		}
		if rows == 0 {
			return ErrDoctorNotFound
		}
		profile.User.IsActive = &active

		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionDoctorToggle, "user", doctorID.String(),
			map[string]any{"is_active": wasActive}, map[string]any{"is_active": active})
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// mapProfileWriteError translates unique violations on user and profile
// columns into conflict errors.
func mapProfileWriteError(err error) error {
	switch {
	case pgrepo.IsDuplicateKeyError(err, "email"):
		return ErrEmailExists
	case pgrepo.IsDuplicateKeyError(err, "license_number"):
		return ErrLicenseExists
	}
	return err
}
