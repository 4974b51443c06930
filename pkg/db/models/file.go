package models

import (
	"github.com/google/uuid"
)

// File stores uploaded content as a byte blob owned by the uploading user.
type File struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string    `gorm:"column:name;not null" json:"name"`
	Path    string    `gorm:"column:path;not null" json:"path"`
	Type    string    `gorm:"column:type;not null" json:"type"`
	Size    int64     `gorm:"column:size;not null" json:"size"`
	Content []byte    `gorm:"column:content;not null" json:"-"`
	UserID  uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	TimestampAudit
}
