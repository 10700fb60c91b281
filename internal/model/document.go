package model

import (
	"time"

	"gorm.io/datatypes"
)

// Document is the single table behind the database-backed record store: one
// row per record, the record body as a JSON column. Collection plus DocID is
// the primary key so ids only need to be unique within a collection.
type Document struct {
	Collection string         `gorm:"primaryKey;size:64"`
	DocID      string         `gorm:"primaryKey;size:36"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}
