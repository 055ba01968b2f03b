package specification

import "gorm.io/gorm"

// ByOutcome filters interactions by response source; empty matches all.
type ByOutcome struct {
	Outcome string
}

func (s ByOutcome) Apply(db *gorm.DB) *gorm.DB {
	if s.Outcome == "" {
		return db
	}
	return db.Where("outcome = ?", s.Outcome)
}

// NewestFirst orders interactions by creation time, latest first.
type NewestFirst struct{}

func (NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return OrderBy{Field: "created_at", Desc: true}.Apply(db)
}
