package service

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit entries inside the caller's transaction.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action, entityName, entityID string, newValue any) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action, entityName, entityID string, oldValue, newValue any) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action, entityName, entityID string, newValue any) error {
	return s.write(ctx, tx, actor, action, entity.Metadata{
		"entity":     entityName,
		"entity_id":  entityID,
		"actor_role": entity.RoleNameByID(actor.RoleID),
		"new_value":  newValue,
	})
}

func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action, entityName, entityID string, oldValue, newValue any) error {
	return s.write(ctx, tx, actor, action, entity.Metadata{
		"entity":     entityName,
		"entity_id":  entityID,
		"actor_role": entity.RoleNameByID(actor.RoleID),
		"old_value":  oldValue,
		"new_value":  newValue,
	})
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, metadata entity.Metadata) error {
	var userID *uuid.UUID
	if actor.ID != uuid.Nil {
		id := actor.ID
		userID = &id
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", action, err)
		return err
	}
	return nil
}
