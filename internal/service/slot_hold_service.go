package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// releaseHoldScript deletes a hold only while it still belongs to the given
// appointment, so a late release never frees a slot re-booked by someone else.
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisSlotHoldKeyPrefix = "slot:hold:"

	// Startup sync processes active appointments in batches, one pipeline per batch.
	syncBatchSize = 500

	scanBatchSize = 1000
)

// SlotHoldService keeps a Redis hold for every (doctor, date, time slot)
// occupied by a pending or confirmed appointment. Holds reject concurrent
// bookers before they reach the database; the partial unique index on
// appointments remains the authority.
type SlotHoldService struct {
	db              *gorm.DB
	redisClient     *redis.Client
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	enabled         bool
	now             func() time.Time
}

func NewSlotHoldService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	enabled bool,
) *SlotHoldService {
	return &SlotHoldService{
		db:              db,
		redisClient:     redisClient,
		log:             log,
		appointmentRepo: appointmentRepo,
		enabled:         enabled && redisClient != nil,
		now:             time.Now,
	}
}

func (s *SlotHoldService) Enabled() bool {
	return s.enabled
}

// Reserve places a hold for appointmentID. It returns false when another
// appointment already holds the slot. When holds are disabled it always succeeds.
func (s *SlotHoldService) Reserve(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string, appointmentID uuid.UUID) (bool, error) {
	if !s.enabled {
		return true, nil
	}

	key := holdKey(doctorID, date, timeSlot)
	ok, err := s.redisClient.SetNX(ctx, key, appointmentID.String(), s.calculateTTL(date)).Result()
	if err != nil {
		return false, fmt.Errorf("reserve slot hold %s: %w", key, err)
	}

	if ok {
		s.log.Debugf("Slot hold placed: key=%s appointment=%s", key, appointmentID)
	}
	return ok, nil
}

// Release removes the hold if it still belongs to appointmentID.
func (s *SlotHoldService) Release(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string, appointmentID uuid.UUID) error {
	if !s.enabled {
		return nil
	}

	key := holdKey(doctorID, date, timeSlot)
	deleted, err := releaseHoldScript.Run(ctx, s.redisClient, []string{key}, appointmentID.String()).Int()
	if err != nil {
		return fmt.Errorf("release slot hold %s: %w", key, err)
	}

	if deleted == 0 {
		s.log.Debugf("Slot hold %s not owned by appointment %s, left in place", key, appointmentID)
	}
	return nil
}

// SyncOnStartup clears every hold and rebuilds them from the active
// appointments dated today or later. Call it before accepting traffic.
func (s *SlotHoldService) SyncOnStartup(ctx context.Context) error {
	if !s.enabled {
		s.log.Info("Slot holds disabled, skipping Redis sync")
		return nil
	}

	s.log.Info("Starting slot hold re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	cleared, err := s.clearHolds(ctx)
	if err != nil {
		return err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	offset := 0
	totalSynced := 0

	for {
		appointments, err := s.appointmentRepo.FindActiveFrom(ctx, s.db, today, syncBatchSize, offset)
		if err != nil {
			s.log.Errorf("Failed to query active appointments at offset %d: %+v", offset, err)
			return fmt.Errorf("query active appointments at offset %d: %w", offset, err)
		}

		if len(appointments) == 0 {
			break
		}

		// New pipeline per batch keeps memory bounded.
		pipe := s.redisClient.TxPipeline()
		for i := range appointments {
			a := &appointments[i]
			pipe.Set(ctx, holdKey(a.DoctorID, a.AppointmentDate, a.TimeSlot), a.ID.String(), s.calculateTTL(a.AppointmentDate))
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(appointments)
		s.log.Debugf("Synced batch: offset=%d count=%d", offset, len(appointments))

		if len(appointments) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.WithFields(logrus.Fields{
		"cleared": cleared,
		"synced":  totalSynced,
		"elapsed": time.Since(startTime).String(),
	}).Info("Slot hold re-sync completed")

	return nil
}

func (s *SlotHoldService) clearHolds(ctx context.Context) (int, error) {
	var cursor uint64
	cleared := 0
	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, RedisSlotHoldKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return cleared, fmt.Errorf("scan slot holds: %w", err)
		}
		if len(keys) > 0 {
			if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
				return cleared, fmt.Errorf("delete slot holds: %w", err)
			}
			cleared += len(keys)
		}
		if next == 0 {
			return cleared, nil
		}
		cursor = next
	}
}

// calculateTTL keeps a hold until the end of the day after the appointment date.
func (s *SlotHoldService) calculateTTL(date time.Time) time.Duration {
	expireAt := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 2)
	ttl := expireAt.Sub(s.now())

	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}

func holdKey(doctorID uuid.UUID, date time.Time, timeSlot string) string {
	return RedisSlotHoldKeyPrefix + entity.SlotKey(doctorID, date.Format(entity.DateLayout), timeSlot)
}
