package main

import (
	"fmt"
	"math/rand"
	"time"

	"crewrecovery-service/internal/infrastructure/config"
	ifaceRepo "crewrecovery-service/internal/interface/repository"
	"crewrecovery-service/pkg/logger"
	"crewrecovery-service/pkg/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Seeds the reference tables with one simulated operating day across
// the hub network. Intended for local development and demos.
func main() {
	log := logger.NewLogger()
	log.Info("Seeding reference data")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	err = db.AutoMigrate(
		&ifaceRepo.FlightSchedule{},
		&ifaceRepo.CrewRoster{},
		&ifaceRepo.RepositionFlight{},
		&ifaceRepo.HotelInventory{},
		&ifaceRepo.GroundTransport{},
	)
	if err != nil {
		log.Fatal("Failed to migrate tables", "error", err)
	}

	bases := []string{"ORD", "LAX", "DEN", "SFO", "SEA", "MIA", "JFK", "ATL", "DFW", "BOS", "IAD"}
	routes := [][2]string{
		{"ORD", "LAX"}, {"LAX", "ORD"}, {"ORD", "DEN"}, {"DEN", "ORD"},
		{"SFO", "SEA"}, {"SEA", "SFO"}, {"MIA", "JFK"}, {"JFK", "MIA"},
		{"ATL", "DFW"}, {"DFW", "ATL"}, {"BOS", "IAD"}, {"IAD", "BOS"},
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour).Add(6 * time.Hour)

	// Flight schedule
	flights := make([]ifaceRepo.FlightSchedule, 0, 24)
	for i := 0; i < 24; i++ {
		route := routes[rand.Intn(len(routes))]
		dep := dayStart.Add(time.Duration(rand.Intn(18*60)) * time.Minute)
		arr := dep.Add(time.Duration(120+rand.Intn(240)) * time.Minute)
		flights = append(flights, ifaceRepo.FlightSchedule{
			FlightID:     fmt.Sprintf("UA%d", 1000+i),
			Origin:       route[0],
			Destination:  route[1],
			ScheduledDep: dep,
			ScheduledArr: arr,
			AircraftType: "B737",
			Status:       "scheduled",
		})
	}
	if err := db.Create(&flights).Error; err != nil {
		log.Fatal("Failed to seed flights", "error", err)
	}

	// Assigned crew, two per flight
	crew := make([]ifaceRepo.CrewRoster, 0, len(flights)*2+len(bases)*2)
	for i, flight := range flights {
		dutyEnd := utils.FormatTimestamp(flight.ScheduledArr.Add(2 * time.Hour))
		restUntil := utils.FormatTimestamp(flight.ScheduledDep.Add(-12 * time.Hour))
		flightID := flight.FlightID
		crew = append(crew,
			ifaceRepo.CrewRoster{
				CrewID:            fmt.Sprintf("C%d", 100+i*2),
				Name:              fmt.Sprintf("Captain %d", 100+i*2),
				Role:              "captain",
				Base:              flight.Origin,
				QualifiedAircraft: "B737",
				AssignedFlightID:  &flightID,
				DutyEnd:           &dutyEnd,
				RestUntil:         restUntil,
				Status:            "active",
			},
			ifaceRepo.CrewRoster{
				CrewID:            fmt.Sprintf("C%d", 100+i*2+1),
				Name:              fmt.Sprintf("First Officer %d", 100+i*2+1),
				Role:              "first_officer",
				Base:              flight.Origin,
				QualifiedAircraft: "B737",
				AssignedFlightID:  &flightID,
				DutyEnd:           &dutyEnd,
				RestUntil:         restUntil,
				Status:            "active",
			},
		)
	}

	// Spare crew, a captain and first officer per base
	for i, base := range bases {
		restUntil := utils.FormatTimestamp(dayStart.Add(-12 * time.Hour))
		crew = append(crew,
			ifaceRepo.CrewRoster{
				CrewID:            fmt.Sprintf("S%d", 200+i*2),
				Name:              fmt.Sprintf("Spare Captain %d", 200+i*2),
				Role:              "captain",
				Base:              base,
				QualifiedAircraft: "B737",
				RestUntil:         restUntil,
				Status:            "active",
			},
			ifaceRepo.CrewRoster{
				CrewID:            fmt.Sprintf("S%d", 200+i*2+1),
				Name:              fmt.Sprintf("Spare First Officer %d", 200+i*2+1),
				Role:              "first_officer",
				Base:              base,
				QualifiedAircraft: "B737",
				RestUntil:         restUntil,
				Status:            "active",
			},
		)
	}
	if err := db.Create(&crew).Error; err != nil {
		log.Fatal("Failed to seed crew", "error", err)
	}

	// Hotel inventory, two per base, some intentionally full
	hotelNames := []string{
		"Airport Plaza", "Runway Inn", "Sky Harbor Hotel", "Terminal Suites",
		"Crew Rest Lodge", "Aviation Center", "Jetway Hotel", "Concourse Inn",
	}
	hotels := make([]ifaceRepo.HotelInventory, 0, len(bases)*2)
	for i, base := range bases {
		for j := 0; j < 2; j++ {
			rate := float64(80 + rand.Intn(70))
			hotels = append(hotels, ifaceRepo.HotelInventory{
				HotelID:        fmt.Sprintf("H%03d", i*2+j+1),
				Location:       base,
				Name:           fmt.Sprintf("%s %s", hotelNames[rand.Intn(len(hotelNames))], base),
				AvailableRooms: rand.Intn(9),
				Rate:           &rate,
			})
		}
	}
	if err := db.Create(&hotels).Error; err != nil {
		log.Fatal("Failed to seed hotels", "error", err)
	}

	// Repositioning pool between bases
	repositions := make([]ifaceRepo.RepositionFlight, 0)
	for _, origin := range bases {
		for _, destination := range bases {
			if origin == destination || rand.Float64() >= 0.3 {
				continue
			}
			dep := dayStart.Add(time.Duration(60+rand.Intn(15*60)) * time.Minute)
			arr := dep.Add(time.Duration(90+rand.Intn(210)) * time.Minute)
			cost := float64(200 + rand.Intn(600))
			repositions = append(repositions, ifaceRepo.RepositionFlight{
				FlightID:       fmt.Sprintf("RP%03d", len(repositions)+1),
				Origin:         origin,
				Destination:    destination,
				SchedDep:       dep,
				SchedArr:       arr,
				SeatsAvailable: rand.Intn(2) == 0,
				Cost:           &cost,
			})
		}
	}
	if err := db.Create(&repositions).Error; err != nil {
		log.Fatal("Failed to seed repositioning flights", "error", err)
	}

	// Ground transport, one shuttle per base
	transports := make([]ifaceRepo.GroundTransport, 0, len(bases))
	for _, base := range bases {
		transports = append(transports, ifaceRepo.GroundTransport{
			Airport:        base,
			ServiceName:    fmt.Sprintf("%s Crew Shuttle", base),
			SeatsAvailable: 4 + rand.Intn(8),
		})
	}
	if err := db.Create(&transports).Error; err != nil {
		log.Fatal("Failed to seed ground transport", "error", err)
	}

	log.Info("Seed complete",
		"flights", len(flights),
		"crew", len(crew),
		"hotels", len(hotels),
		"repositions", len(repositions),
		"transports", len(transports))
}
