package types

import (
	"context"
	"time"
)

// BaseModel carries the audit columns shared by every persisted entity.
// Any changes to this model should be reflected in the database schema by
// running migrations.
type BaseModel struct {
	CreatedDate time.Time `db:"created_date" json:"created_date"`
	UpdatedDate time.Time `db:"updated_date" json:"updated_date"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	UpdatedBy   string    `db:"updated_by" json:"updated_by"`
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		CreatedDate: now,
		UpdatedDate: now,
		CreatedBy:   GetUserID(ctx),
		UpdatedBy:   GetUserID(ctx),
	}
}
