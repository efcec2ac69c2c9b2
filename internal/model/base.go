package model

import "time"

// BaseEntity carries the audit timestamps managed by GORM on every save (UTC, see database.New).
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}
