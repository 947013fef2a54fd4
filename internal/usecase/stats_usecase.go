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

const recentAppointmentsLimit = 5

// Cache scopes for the last successfully computed payloads.
const (
	statsScopeAdmin     = "admin"
	statsScopeDoctor    = "doctor:"
	statsScopeDashboard = "dashboard:"
)

// StatsUsecase takes the caller's current time, in the caller's time zone,
// to decide which appointments count as today.
type StatsUsecase interface {
	DoctorStats(ctx context.Context, doctorID uuid.UUID, now time.Time) (*dto.StatsResponse, error)
	AdminStats(ctx context.Context, now time.Time) (*dto.AdminStatsResponse, error)
	RefreshDoctorDashboard(ctx context.Context, doctorID uuid.UUID, now time.Time) (*dto.DoctorDashboardResponse, error)
}

type statsUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	medicalRecordRepo  repository.MedicalRecordRepository
	statsCache         *service.StatsCache
}

func NewStatsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	statsCache *service.StatsCache,
) StatsUsecase {
	return &statsUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		medicalRecordRepo:  medicalRecordRepo,
		statsCache:         statsCache,
	}
}

// DoctorStats counts the doctor's appointments. TotalPatients is the number
// of distinct patients the doctor has appointments with.
func (u *statsUsecase) DoctorStats(ctx context.Context, doctorID uuid.UUID, now time.Time) (*dto.StatsResponse, error) {
	return withLastKnown(ctx, u, statsScopeDoctor+doctorID.String(), func() (*dto.StatsResponse, error) {
		appointments, err := u.appointmentRepo.FindSnapshot(ctx, u.db, entity.AppointmentFilter{DoctorID: &doctorID})
		if err != nil {
			return nil, err
		}

		return &dto.StatsResponse{
			AppointmentStats: entity.ComputeAppointmentStats(appointments, entity.DateKey(now)),
			Date:             entity.DateKey(now),
			GeneratedAt:      now,
		}, nil
	}, func(r *dto.StatsResponse) { r.Stale = true })
}

// AdminStats counts every appointment and adds the doctor and patient
// directory totals plus the most recently created appointments.
func (u *statsUsecase) AdminStats(ctx context.Context, now time.Time) (*dto.AdminStatsResponse, error) {
	return withLastKnown(ctx, u, statsScopeAdmin, func() (*dto.AdminStatsResponse, error) {
		appointments, err := u.appointmentRepo.FindSnapshot(ctx, u.db, entity.AppointmentFilter{})
		if err != nil {
			return nil, err
		}

		totalPatients, err := u.patientProfileRepo.Count(ctx, u.db)
		if err != nil {
			return nil, err
		}

		totalDoctors, activeDoctors, err := u.doctorProfileRepo.Count(ctx, u.db)
		if err != nil {
			return nil, err
		}

		recent, err := u.appointmentRepo.FindRecent(ctx, u.db, recentAppointmentsLimit)
		if err != nil {
			return nil, err
		}

		stats := entity.ComputeAppointmentStats(appointments, entity.DateKey(now))
		stats.TotalPatients = int(totalPatients)
		doctors, active := int(totalDoctors), int(activeDoctors)
		stats.TotalDoctors = &doctors
		stats.ActiveDoctors = &active

		history := lookupMedicalHistory(ctx, u.db, u.log, u.medicalRecordRepo, recent)
		return &dto.AdminStatsResponse{
			AppointmentStats:   stats,
			RecentAppointments: converter.AppointmentsToResponses(recent, history),
			Date:               entity.DateKey(now),
			GeneratedAt:        now,
		}, nil
	}, func(r *dto.AdminStatsResponse) { r.Stale = true })
}

// RefreshDoctorDashboard rebuilds the doctor's dashboard from the pending,
// confirmed and completed lists. The host calls it when the dashboard
// regains focus or visibility.
func (u *statsUsecase) RefreshDoctorDashboard(ctx context.Context, doctorID uuid.UUID, now time.Time) (*dto.DoctorDashboardResponse, error) {
	return withLastKnown(ctx, u, statsScopeDashboard+doctorID.String(), func() (*dto.DoctorDashboardResponse, error) {
		lists := make([][]entity.Appointment, 0, 3)
		for _, status := range []entity.AppointmentStatus{
			entity.AppointmentStatusPending,
			entity.AppointmentStatusConfirmed,
			entity.AppointmentStatusCompleted,
		} {
			appointments, err := u.appointmentRepo.FindSnapshot(ctx, u.db, entity.AppointmentFilter{
				DoctorID: &doctorID,
				Statuses: []entity.AppointmentStatus{status},
			})
			if err != nil {
				return nil, err
			}
			lists = append(lists, appointments)
		}

		merged := entity.MergeAppointments(lists...)
		entity.SortAppointments(merged)

		todayKey := entity.DateKey(now)
		today := entity.TodayAppointments(merged, todayKey)
		history := lookupMedicalHistory(ctx, u.db, u.log, u.medicalRecordRepo, merged)

		return &dto.DoctorDashboardResponse{
			Stats:             entity.ComputeAppointmentStats(merged, todayKey),
			TodayAppointments: converter.AppointmentsToResponses(today, history),
			Appointments:      converter.AppointmentsToResponses(merged, history),
			Date:              todayKey,
			GeneratedAt:       now,
		}, nil
	}, func(r *dto.DoctorDashboardResponse) { r.Stale = true })
}

// withLastKnown runs compute and caches its result. When compute fails the
// last cached value is returned marked stale; with nothing cached the
// compute error is returned.
func withLastKnown[T any](ctx context.Context, u *statsUsecase, scope string, compute func() (*T, error), markStale func(*T)) (*T, error) {
	fresh, err := compute()
	if err == nil {
		if saveErr := u.statsCache.Save(ctx, scope, fresh); saveErr != nil {
			u.log.Warnf("Failed to cache stats %s: %+v", scope, saveErr)
		}
		return fresh, nil
	}

	u.log.Warnf("Failed to compute stats %s: %+v", scope, err)

	var cached T
	found, loadErr := u.statsCache.Load(ctx, scope, &cached)
	if loadErr != nil {
		u.log.Warnf("Failed to load last known stats %s: %+v", scope, loadErr)
		return nil, err
	}
	if !found {
		return nil, err
	}

	markStale(&cached)
	return &cached, nil
}
