package catalog

import (
	"github.com/google/uuid"
)

type Genre struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (Genre) TableName() string { return "genres" }
