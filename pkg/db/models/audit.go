package models

import (
	"time"

	"github.com/google/uuid"
)

// TimestampAudit carries row creation/update times maintained by GORM.
type TimestampAudit struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// InitiatorAudit additionally tracks which user performed the write. The
// columns are populated by services from the explicitly threaded actor id,
// never read back for business decisions.
type InitiatorAudit struct {
	TimestampAudit
	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid" json:"-"`
	UpdatedBy *uuid.UUID `gorm:"column:updated_by;type:uuid" json:"-"`
}

// Touch records the acting user on the audit columns. CreatedBy is only set
// on first write.
func (a *InitiatorAudit) Touch(actorID uuid.UUID) {
	if actorID == uuid.Nil {
		return
	}
	actor := actorID
	if a.CreatedBy == nil {
		a.CreatedBy = &actor
	}
	a.UpdatedBy = &actor
}
