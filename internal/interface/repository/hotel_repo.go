package repository

import (
	"context"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormHotelRepository implements the HotelRepository interface
type GormHotelRepository struct {
	db *gorm.DB
}

// NewGormHotelRepository creates a new GORM hotel repository
func NewGormHotelRepository(db *gorm.DB) repository.HotelRepository {
	return &GormHotelRepository{
		db: db,
	}
}

// HotelInventory GORM model for database mapping
type HotelInventory struct {
	gorm.Model
	ID             uint           `gorm:"primaryKey"`
	HotelID        string         `gorm:"column:hotel_id;unique"`
	Location       string         `gorm:"column:location"`
	Name           string         `gorm:"column:name"`
	AvailableRooms int            `gorm:"column:available_rooms"`
	Rate           *float64       `gorm:"column:rate"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the default table name
func (HotelInventory) TableName() string {
	return "m_hotel_inventory"
}

// FindByLocation returns the hotel inventory at a location
func (r *GormHotelRepository) FindByLocation(ctx context.Context, location string) ([]*entity.Hotel, error) {
	var rows []HotelInventory
	result := r.db.WithContext(ctx).Where("location = ?", location).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	hotels := make([]*entity.Hotel, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		hotels = append(hotels, &entity.Hotel{
			ID:             row.ID,
			HotelID:        row.HotelID,
			Location:       row.Location,
			Name:           row.Name,
			AvailableRooms: row.AvailableRooms,
			Rate:           row.Rate,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
			DeletedAt:      row.DeletedAt,
		})
	}
	return hotels, nil
}

// ReserveRoom decrements the room count with a conditional update so
// concurrent passes cannot both take the last room.
func (r *GormHotelRepository) ReserveRoom(ctx context.Context, hotelID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&HotelInventory{}).
		Where("hotel_id = ? AND available_rooms > 0", hotelID).
		Update("available_rooms", gorm.Expr("available_rooms - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// GormTransportRepository implements the TransportRepository interface
type GormTransportRepository struct {
	db *gorm.DB
}

// NewGormTransportRepository creates a new GORM transport repository
func NewGormTransportRepository(db *gorm.DB) repository.TransportRepository {
	return &GormTransportRepository{
		db: db,
	}
}

// GroundTransport GORM model for database mapping
type GroundTransport struct {
	gorm.Model
	ID             uint           `gorm:"primaryKey"`
	Airport        string         `gorm:"column:airport"`
	ServiceName    string         `gorm:"column:service_name"`
	SeatsAvailable int            `gorm:"column:seats_available"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the default table name
func (GroundTransport) TableName() string {
	return "m_ground_transport"
}

// FindByAirport returns the transport options at an airport
func (r *GormTransportRepository) FindByAirport(ctx context.Context, airport string) ([]*entity.TransportOption, error) {
	var rows []GroundTransport
	result := r.db.WithContext(ctx).Where("airport = ?", airport).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	options := make([]*entity.TransportOption, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		options = append(options, &entity.TransportOption{
			ID:             row.ID,
			Airport:        row.Airport,
			ServiceName:    row.ServiceName,
			SeatsAvailable: row.SeatsAvailable,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
			DeletedAt:      row.DeletedAt,
		})
	}
	return options, nil
}
