package repository

import (
	"context"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRepositionRepository implements the RepositionRepository interface
type GormRepositionRepository struct {
	db *gorm.DB
}

// NewGormRepositionRepository creates a new GORM reposition repository
func NewGormRepositionRepository(db *gorm.DB) repository.RepositionRepository {
	return &GormRepositionRepository{
		db: db,
	}
}

// RepositionFlight GORM model for database mapping
type RepositionFlight struct {
	gorm.Model
	ID             uint           `gorm:"primaryKey"`
	FlightID       string         `gorm:"column:flight_id;unique"`
	Origin         string         `gorm:"column:origin"`
	Destination    string         `gorm:"column:destination"`
	SchedDep       time.Time      `gorm:"column:sched_dep"`
	SchedArr       time.Time      `gorm:"column:sched_arr"`
	SeatsAvailable bool           `gorm:"column:seats_available"`
	Cost           *float64       `gorm:"column:cost"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the default table name
func (RepositionFlight) TableName() string {
	return "m_reposition_flights"
}

// FindByRoute returns the repositioning pool for a route, earliest arrival first
func (r *GormRepositionRepository) FindByRoute(ctx context.Context, origin, destination string) ([]*entity.RepositioningFlight, error) {
	var rows []RepositionFlight
	result := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ?", origin, destination).
		Order("sched_arr").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	options := make([]*entity.RepositioningFlight, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		options = append(options, &entity.RepositioningFlight{
			ID:             row.ID,
			FlightID:       row.FlightID,
			Origin:         row.Origin,
			Destination:    row.Destination,
			SchedDep:       row.SchedDep,
			SchedArr:       row.SchedArr,
			SeatsAvailable: row.SeatsAvailable,
			Cost:           row.Cost,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
			DeletedAt:      row.DeletedAt,
		})
	}
	return options, nil
}
