package repository

import (
	"context"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormCrewRepository implements the CrewRepository interface
type GormCrewRepository struct {
	db *gorm.DB
}

// NewGormCrewRepository creates a new GORM crew repository
func NewGormCrewRepository(db *gorm.DB) repository.CrewRepository {
	return &GormCrewRepository{
		db: db,
	}
}

// CrewRoster GORM model for database mapping
type CrewRoster struct {
	gorm.Model
	ID                uint           `gorm:"primaryKey"`
	CrewID            string         `gorm:"column:crew_id;unique"`
	Name              string         `gorm:"column:name"`
	Role              string         `gorm:"column:role"`
	Base              string         `gorm:"column:base"`
	QualifiedAircraft string         `gorm:"column:qualified_aircraft"`
	AssignedFlightID  *string        `gorm:"column:assigned_flight_id"`
	DutyEnd           *string        `gorm:"column:duty_end"`
	RestUntil         string         `gorm:"column:rest_until"`
	Status            string         `gorm:"column:status"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the default table name
func (CrewRoster) TableName() string {
	return "m_crew_roster"
}

func (r *GormCrewRepository) toEntity(row *CrewRoster) *entity.CrewMember {
	return &entity.CrewMember{
		ID:                row.ID,
		CrewID:            row.CrewID,
		Name:              row.Name,
		Role:              row.Role,
		Base:              row.Base,
		QualifiedAircraft: row.QualifiedAircraft,
		AssignedFlightID:  row.AssignedFlightID,
		DutyEnd:           row.DutyEnd,
		RestUntil:         row.RestUntil,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
		DeletedAt:         row.DeletedAt,
	}
}

// FindByFlight returns all crew assigned to a flight
func (r *GormCrewRepository) FindByFlight(ctx context.Context, flightID string) ([]*entity.CrewMember, error) {
	var rows []CrewRoster
	result := r.db.WithContext(ctx).Where("assigned_flight_id = ?", flightID).Order("crew_id").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]*entity.CrewMember, 0, len(rows))
	for i := range rows {
		members = append(members, r.toEntity(&rows[i]))
	}
	return members, nil
}

// FindByCrewID finds a crew member by crew ID
func (r *GormCrewRepository) FindByCrewID(ctx context.Context, crewID string) (*entity.CrewMember, error) {
	var row CrewRoster
	result := r.db.WithContext(ctx).Where("crew_id = ?", crewID).First(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.toEntity(&row), nil
}

// FindUnassignedActive returns the spare pool in roster order
func (r *GormCrewRepository) FindUnassignedActive(ctx context.Context) ([]*entity.CrewMember, error) {
	var rows []CrewRoster
	result := r.db.WithContext(ctx).
		Where("assigned_flight_id IS NULL AND status = ?", entity.CrewStatusActive).
		Order("id").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]*entity.CrewMember, 0, len(rows))
	for i := range rows {
		members = append(members, r.toEntity(&rows[i]))
	}
	return members, nil
}

// ClaimSpare assigns a spare to a flight with a conditional update so
// concurrent passes cannot both take the same member.
func (r *GormCrewRepository) ClaimSpare(ctx context.Context, crewID, flightID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&CrewRoster{}).
		Where("crew_id = ? AND assigned_flight_id IS NULL AND status = ?", crewID, entity.CrewStatusActive).
		Update("assigned_flight_id", flightID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
