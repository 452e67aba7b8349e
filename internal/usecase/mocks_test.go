package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/pkg/logger"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (l nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return l
}

// fakeCrewRepo is an in-memory roster with mutex-guarded claims, so the
// same race semantics as the SQL conditional update apply.
type fakeCrewRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.CrewMember
	members []*entity.CrewMember
}

func newFakeCrewRepo(members ...*entity.CrewMember) *fakeCrewRepo {
	repo := &fakeCrewRepo{byID: make(map[string]*entity.CrewMember)}
	for _, member := range members {
		repo.members = append(repo.members, member)
		repo.byID[member.CrewID] = member
	}
	return repo
}

func (r *fakeCrewRepo) FindByFlight(ctx context.Context, flightID string) ([]*entity.CrewMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CrewMember
	for _, member := range r.members {
		if member.AssignedFlightID != nil && *member.AssignedFlightID == flightID {
			copied := *member
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCrewRepo) FindByCrewID(ctx context.Context, crewID string) (*entity.CrewMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.byID[crewID]
	if !ok {
		return nil, fmt.Errorf("crew %s not found", crewID)
	}
	copied := *member
	return &copied, nil
}

func (r *fakeCrewRepo) FindUnassignedActive(ctx context.Context) ([]*entity.CrewMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CrewMember
	for _, member := range r.members {
		if member.IsSpare() {
			copied := *member
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCrewRepo) ClaimSpare(ctx context.Context, crewID, flightID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.byID[crewID]
	if !ok || !member.IsSpare() {
		return false, nil
	}
	assigned := flightID
	member.AssignedFlightID = &assigned
	return true, nil
}

type fakeFlightRepo struct {
	flights map[string]*entity.Flight
}

func newFakeFlightRepo(flights ...*entity.Flight) *fakeFlightRepo {
	repo := &fakeFlightRepo{flights: make(map[string]*entity.Flight)}
	for _, flight := range flights {
		repo.flights[flight.FlightID] = flight
	}
	return repo
}

func (r *fakeFlightRepo) GetByFlightID(ctx context.Context, flightID string) (*entity.Flight, error) {
	flight, ok := r.flights[flightID]
	if !ok {
		return nil, fmt.Errorf("flight %s not found", flightID)
	}
	return flight, nil
}

type fakeRepositionRepo struct {
	pool []*entity.RepositioningFlight
}

func (r *fakeRepositionRepo) FindByRoute(ctx context.Context, origin, destination string) ([]*entity.RepositioningFlight, error) {
	var out []*entity.RepositioningFlight
	for _, option := range r.pool {
		if option.Origin == origin && option.Destination == destination {
			out = append(out, option)
		}
	}
	return out, nil
}

// fakeHotelRepo mirrors the conditional-decrement claim of the SQL
// implementation.
type fakeHotelRepo struct {
	mu     sync.Mutex
	hotels []*entity.Hotel
}

func (r *fakeHotelRepo) FindByLocation(ctx context.Context, location string) ([]*entity.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Hotel
	for _, hotel := range r.hotels {
		if hotel.Location == location {
			copied := *hotel
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeHotelRepo) ReserveRoom(ctx context.Context, hotelID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, hotel := range r.hotels {
		if hotel.HotelID == hotelID && hotel.AvailableRooms > 0 {
			hotel.AvailableRooms--
			return true, nil
		}
	}
	return false, nil
}

type fakeTransportRepo struct {
	options []*entity.TransportOption
}

func (r *fakeTransportRepo) FindByAirport(ctx context.Context, airport string) ([]*entity.TransportOption, error) {
	var out []*entity.TransportOption
	for _, option := range r.options {
		if option.Airport == airport {
			out = append(out, option)
		}
	}
	return out, nil
}

type fakeRecoveryLogRepo struct {
	mu    sync.Mutex
	saved []*entity.RecoveryResult
}

func (r *fakeRecoveryLogRepo) Save(ctx context.Context, result *entity.RecoveryResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, result)
	return nil
}

func (r *fakeRecoveryLogRepo) FindByFlight(ctx context.Context, flightID string, limit int) ([]*entity.RecoveryResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.RecoveryResult
	for _, result := range r.saved {
		if result.FlightID == flightID {
			out = append(out, result)
		}
	}
	return out, nil
}

func (r *fakeRecoveryLogRepo) FindByDisruptionID(ctx context.Context, disruptionID string) (*entity.RecoveryResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, result := range r.saved {
		if result.DisruptionID == disruptionID {
			return result, nil
		}
	}
	return nil, nil
}

// fakeAdvisorRepo returns canned policies keyed on query substrings and
// can be told to fail.
type fakeAdvisorRepo struct {
	policy    *entity.PolicyRecord
	rationale string
	fail      bool
}

func (r *fakeAdvisorRepo) RetrievePolicy(ctx context.Context, query string) (*entity.PolicyRecord, error) {
	if r.fail {
		return nil, fmt.Errorf("advisor unavailable")
	}
	if r.policy != nil {
		return r.policy, nil
	}
	return entity.FallbackPolicy(), nil
}

func (r *fakeAdvisorRepo) Reason(ctx context.Context, query string, reasonContext map[string]interface{}, onChunk func(string)) (*entity.Rationale, error) {
	if r.fail {
		return nil, fmt.Errorf("advisor unavailable")
	}
	rationale := r.rationale
	if rationale == "" {
		rationale = "Duty limits exceeded for assigned crew."
	}
	return &entity.Rationale{Rationale: rationale}, nil
}

type fakeNoticeRepo struct {
	mu   sync.Mutex
	sent []*entity.Notice
}

func (r *fakeNoticeRepo) Send(ctx context.Context, notice *entity.Notice) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notice)
	return fmt.Sprintf("task-%d", len(r.sent)), nil
}

// fakeDisruptionRepo backs the dispatcher tests.
type fakeDisruptionRepo struct {
	mu     sync.Mutex
	byID   map[string]*entity.Disruption
	resets int
}

func newFakeDisruptionRepo(disruptions ...*entity.Disruption) *fakeDisruptionRepo {
	repo := &fakeDisruptionRepo{byID: make(map[string]*entity.Disruption)}
	for _, d := range disruptions {
		repo.byID[d.ID] = d
	}
	return repo
}

func (r *fakeDisruptionRepo) Save(ctx context.Context, d *entity.Disruption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ProcessStatus == "" {
		d.ProcessStatus = entity.StatusPending
	}
	r.byID[d.ID] = d
	return nil
}

func (r *fakeDisruptionRepo) FindByID(ctx context.Context, id string) (*entity.Disruption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("disruption %s not found", id)
	}
	return d, nil
}

func (r *fakeDisruptionRepo) FindByEventID(ctx context.Context, eventID string) (*entity.Disruption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.byID {
		if d.EventID == eventID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDisruptionRepo) FindByEventIDs(ctx context.Context, eventIDs []string) (map[string]*entity.Disruption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*entity.Disruption)
	for _, d := range r.byID {
		for _, id := range eventIDs {
			if d.EventID == id {
				out[id] = d
			}
		}
	}
	return out, nil
}

func (r *fakeDisruptionRepo) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Disruption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Disruption
	for _, d := range r.byID {
		if d.ProcessStatus == "" || d.ProcessStatus == entity.StatusPending {
			out = append(out, d)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeDisruptionRepo) GetLastReported(ctx context.Context) (*entity.Disruption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last *entity.Disruption
	for _, d := range r.byID {
		if last == nil || d.ReportedAt.After(last.ReportedAt) {
			last = d
		}
	}
	return last, nil
}

func (r *fakeDisruptionRepo) UpdateStatus(ctx context.Context, id string, status string, startedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("disruption %s not found", id)
	}
	d.ProcessStatus = status
	if status == entity.StatusProcessing {
		d.ProcessStartedAt = startedAt
	}
	return nil
}

func (r *fakeDisruptionRepo) MarkAsProcessed(ctx context.Context, id, status, handlerType, errorDetail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("disruption %s not found", id)
	}
	d.ProcessStatus = status
	d.HandlerType = handlerType
	d.ErrorDetail = errorDetail
	d.ProcessedAt = time.Now()
	return nil
}

func (r *fakeDisruptionRepo) ResetProcessing(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
	return nil
}
