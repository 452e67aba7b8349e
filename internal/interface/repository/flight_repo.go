package repository

import (
	"context"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// FlightSchedule GORM model for database mapping
type FlightSchedule struct {
	gorm.Model
	ID           uint           `gorm:"primaryKey"`
	FlightID     string         `gorm:"column:flight_id;unique"`
	Origin       string         `gorm:"column:origin"`
	Destination  string         `gorm:"column:destination"`
	ScheduledDep time.Time      `gorm:"column:scheduled_dep"`
	ScheduledArr time.Time      `gorm:"column:scheduled_arr"`
	AircraftType string         `gorm:"column:aircraft_type"`
	Status       string         `gorm:"column:status"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (FlightSchedule) TableName() string {
	return "m_flight_schedule"
}

// GetByFlightID finds a flight by flight ID
func (r *GormFlightRepository) GetByFlightID(ctx context.Context, flightID string) (*entity.Flight, error) {
	var row FlightSchedule
	result := r.db.WithContext(ctx).Where("flight_id = ?", flightID).First(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.Flight{
		ID:           row.ID,
		FlightID:     row.FlightID,
		Origin:       row.Origin,
		Destination:  row.Destination,
		ScheduledDep: row.ScheduledDep,
		ScheduledArr: row.ScheduledArr,
		AircraftType: row.AircraftType,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		DeletedAt:    row.DeletedAt,
	}, nil
}
