package usecase

import (
	"context"
	"fmt"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"
	"crewrecovery-service/pkg/logger"
	"crewrecovery-service/pkg/metrics"
	"crewrecovery-service/pkg/utils"
	"crewrecovery-service/templates"
)

// RecoveryOrchestrator sequences the fallback chain for one disrupted
// flight: legality check, spare search, repositioning, lodging,
// escalation. Every pass produces exactly one RecoveryResult; business
// outcomes are never errors. Errors are reserved for data-access
// failures and malformed input.
type RecoveryOrchestrator struct {
	crewRepo        repository.CrewRepository
	flightRepo      repository.FlightRepository
	repositionRepo  repository.RepositionRepository
	hotelRepo       repository.HotelRepository
	transportRepo   repository.TransportRepository
	recoveryLogRepo repository.RecoveryLogRepository
	advisorRepo     repository.AdvisorRepository
	noticeRepo      repository.NoticeRepository

	legality  *LegalityChecker
	spares    *SpareFinder
	matcher   *RepositionMatcher
	booker    *HotelBooker
	transport *TransportArranger

	reportBufferMinutes int
	advisorTimeout      time.Duration
	metrics             *metrics.Metrics
	logger              logger.Logger
}

// NewRecoveryOrchestrator creates a new recovery orchestrator
func NewRecoveryOrchestrator(
	crewRepo repository.CrewRepository,
	flightRepo repository.FlightRepository,
	repositionRepo repository.RepositionRepository,
	hotelRepo repository.HotelRepository,
	transportRepo repository.TransportRepository,
	recoveryLogRepo repository.RecoveryLogRepository,
	advisorRepo repository.AdvisorRepository,
	noticeRepo repository.NoticeRepository,
	rules entity.DutyRules,
	reportBufferMinutes int,
	advisorTimeout time.Duration,
	m *metrics.Metrics,
	log logger.Logger,
) *RecoveryOrchestrator {
	return &RecoveryOrchestrator{
		crewRepo:            crewRepo,
		flightRepo:          flightRepo,
		repositionRepo:      repositionRepo,
		hotelRepo:           hotelRepo,
		transportRepo:       transportRepo,
		recoveryLogRepo:     recoveryLogRepo,
		advisorRepo:         advisorRepo,
		noticeRepo:          noticeRepo,
		legality:            NewLegalityChecker(rules, log),
		spares:              NewSpareFinder(log),
		matcher:             NewRepositionMatcher(log),
		booker:              NewHotelBooker(hotelRepo, log),
		transport:           NewTransportArranger(log),
		reportBufferMinutes: reportBufferMinutes,
		advisorTimeout:      advisorTimeout,
		metrics:             m,
		logger:              log,
	}
}

// HandleDisruption resolves one disruption event into a RecoveryResult.
// Legality is checked against the delay-adjusted arrival, uniformly.
func (o *RecoveryOrchestrator) HandleDisruption(ctx context.Context, d *entity.Disruption) (*entity.RecoveryResult, error) {
	started := time.Now()
	o.logger.Info("Handling disruption", "disruptionId", d.ID, "flightId", d.FlightID, "delayMinutes", d.DelayMinutes)

	flight, err := o.flightRepo.GetByFlightID(ctx, d.FlightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flight %s: %w", d.FlightID, err)
	}

	assigned, err := o.crewRepo.FindByFlight(ctx, d.FlightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load crew for flight %s: %w", d.FlightID, err)
	}

	result := &entity.RecoveryResult{
		DisruptionID: d.ID,
		FlightID:     d.FlightID,
		CreatedAt:    time.Now().UTC(),
	}

	projectedArr := flight.ProjectedArrival(d.DelayMinutes)
	legalCrew, illegalCrew := o.checkAssignedCrew(assigned, flight.ScheduledDep, projectedArr, result)

	if len(assigned) > 0 && len(illegalCrew) == 0 {
		result.Status = entity.RecoveryLegal
		result.Message = "All assigned crew are legal."
		result.AssignedCrew = derefCrew(legalCrew)
		result.Rationale = "Standard duty time analysis confirmed all crew members are within duty limits."
		return o.finish(ctx, result, started)
	}

	// The narration is computed from the same context as the decision
	// but never drives it; collect it once the outcome is settled.
	rationaleCh := o.startRationale(ctx, d, flight, len(legalCrew), len(assigned))

	spare, match, err := o.selectSpare(ctx, d, flight, illegalCrew, assigned, result)
	if err != nil {
		return nil, err
	}

	if spare == nil {
		result.Status = entity.RecoveryEscalationRequired
		result.Policy = o.retrievePolicy(ctx, "no legal crew and repositioning unavailable")
		if result.Message == "" {
			result.Message = "No spare crew available and repositioning unavailable."
		}
		result.Rationale = <-rationaleCh
		o.sendNotices(ctx, result, flight)
		return o.finish(ctx, result, started)
	}

	result.AssignedCrew = []entity.CrewMember{*spare}
	result.SpareUsed = spare.CrewID
	result.LodgingRequired = len(illegalCrew) > 0

	if match == nil {
		result.Status = entity.RecoveryReassigned
		result.Message = fmt.Sprintf("Assigned spare crew member %s.", spare.CrewID)
	} else {
		result.Status = entity.RecoveryRepositioningInitiated
		result.Message = fmt.Sprintf("Repositioning spare crew %s from %s via flight %s.", spare.CrewID, spare.Base, match.FlightID)
	}

	if result.LodgingRequired {
		support, err := o.HandleGroundSupport(ctx, d.ID, crewIDs(illegalCrew), flight.Origin)
		if err != nil {
			return nil, err
		}
		result.Steps = append(result.Steps, support.Steps...)
		result.Bookings = support.Bookings
		result.TransportService = support.TransportService
		if support.Status == entity.RecoveryEscalationRequired {
			result.Status = entity.RecoveryEscalationRequired
			result.Policy = support.Policy
			result.Message = support.Message
		}
	}

	result.Rationale = <-rationaleCh
	o.sendNotices(ctx, result, flight)
	return o.finish(ctx, result, started)
}

// HandleGroundSupport runs the lodging chain for displaced crew at a
// location: one room per member, most-rooms-first, with a policy
// escalation when any booking fails. Transport is best effort.
func (o *RecoveryOrchestrator) HandleGroundSupport(ctx context.Context, disruptionID string, crewIDs []string, location string) (*entity.RecoveryResult, error) {
	support := &entity.RecoveryResult{
		DisruptionID: disruptionID,
		CreatedAt:    time.Now().UTC(),
	}

	inventory, err := o.hotelRepo.FindByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel inventory at %s: %w", location, err)
	}

	for _, crewID := range crewIDs {
		booking := o.booker.BookHotel(ctx, location, crewID, inventory)
		if !booking.Success {
			support.AddStep("hotel_booking", fmt.Sprintf("%s: %s", crewID, booking.FailureReason))
			support.Status = entity.RecoveryEscalationRequired
			support.Policy = o.retrievePolicy(ctx, "hotel full at layover location")
			support.Message = fmt.Sprintf("Hotel unavailable at %s. Policy escalation triggered.", location)
			return support, nil
		}
		support.AddStep("hotel_booking", fmt.Sprintf("%s: %s (%s)", crewID, booking.HotelName, booking.Confirmation))
		support.Bookings = append(support.Bookings, entity.HotelBooking{
			CrewID:       crewID,
			HotelID:      booking.HotelID,
			HotelName:    booking.HotelName,
			Confirmation: booking.Confirmation,
		})
	}

	support.Status = entity.RecoveryBooked
	support.Message = fmt.Sprintf("Hotel booked for displaced crew at %s.", location)

	options, err := o.transportRepo.FindByAirport(ctx, location)
	if err != nil {
		o.logger.Error("Failed to load transport options", "airport", location, "error", err)
		return support, nil
	}
	transport := o.transport.Arrange(location, crewIDs, options)
	if transport.Success {
		support.TransportService = transport.Service
		support.AddStep("transport", fmt.Sprintf("%s (%d seats)", transport.Service, transport.SeatsBooked))
	} else {
		support.AddStep("transport", transport.FailureReason)
	}

	return support, nil
}

// checkAssignedCrew runs the legality check per member. A malformed
// roster record fails that one member without aborting the rest.
func (o *RecoveryOrchestrator) checkAssignedCrew(assigned []*entity.CrewMember, start, end time.Time, result *entity.RecoveryResult) (legal, illegal []*entity.CrewMember) {
	for _, member := range assigned {
		check, err := o.legality.CheckWindow(member.CrewID, start, end, assigned)
		if err != nil {
			o.logger.Error("Legality check failed", "crewId", member.CrewID, "error", err)
			result.AddStep("legality_check", fmt.Sprintf("%s: %v", member.CrewID, err))
			illegal = append(illegal, member)
			continue
		}
		result.AddStep("legality_check", fmt.Sprintf("%s: %s", member.CrewID, check.Reason))
		if check.Legal {
			legal = append(legal, member)
		} else {
			illegal = append(illegal, member)
		}
	}
	return legal, illegal
}

// selectSpare picks and atomically claims a replacement. It prefers a
// qualification match and relaxes the filter when none exists. A
// candidate based away from the flight origin needs a repositioning
// flight meeting the reporting deadline; without one the search stops
// and the caller escalates. A lost claim race excludes the candidate
// and retries, so two concurrent passes never assign the same spare.
func (o *RecoveryOrchestrator) selectSpare(ctx context.Context, d *entity.Disruption, flight *entity.Flight, illegalCrew, assigned []*entity.CrewMember, result *entity.RecoveryResult) (*entity.CrewMember, *entity.RepositioningFlight, error) {
	pool, err := o.crewRepo.FindUnassignedActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load spare pool: %w", err)
	}

	criteria := SpareCriteria{Exclude: crewIDs(assigned)}
	if len(illegalCrew) > 0 {
		criteria.Role = illegalCrew[0].Role
	}
	if flight.AircraftType != "" {
		criteria.QualifiedAircraft = flight.AircraftType
	}

	for {
		candidate := o.spares.FindSpare(pool, criteria)
		if candidate == nil && (criteria.Role != "" || criteria.QualifiedAircraft != "") {
			result.AddStep("spare_search", "no qualification match, relaxing filters")
			criteria.Role = ""
			criteria.QualifiedAircraft = ""
			candidate = o.spares.FindSpare(pool, criteria)
		}
		if candidate == nil {
			result.AddStep("spare_search", "no spare crew available")
			return nil, nil, nil
		}

		var option *entity.RepositioningFlight
		if candidate.Base != flight.Origin {
			routePool, err := o.repositionRepo.FindByRoute(ctx, candidate.Base, flight.Origin)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to load repositioning pool: %w", err)
			}
			match := o.matcher.FindReposition(routePool, candidate.Base, flight.Origin, flight.ScheduledDep, d.DelayMinutes, o.reportBufferMinutes)
			if match.Option == nil {
				detail := fmt.Sprintf("spare %s at %s has no repositioning flight arriving by %s",
					candidate.CrewID, candidate.Base, utils.FormatTimestamp(match.Deadline))
				result.AddStep("reposition_search", detail)
				result.Message = fmt.Sprintf("Spare crew found at %s but no repositioning flight meets the reporting deadline.", candidate.Base)
				return nil, nil, nil
			}
			option = match.Option
			result.AddStep("reposition_search", fmt.Sprintf("flight %s arrives %s, deadline %s",
				option.FlightID, utils.FormatTimestamp(option.SchedArr), utils.FormatTimestamp(match.Deadline)))
		}

		claimed, err := o.crewRepo.ClaimSpare(ctx, candidate.CrewID, d.FlightID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to claim spare %s: %w", candidate.CrewID, err)
		}
		if !claimed {
			result.AddStep("spare_search", fmt.Sprintf("%s claimed by a concurrent pass", candidate.CrewID))
			criteria.Exclude = append(criteria.Exclude, candidate.CrewID)
			continue
		}

		result.AddStep("spare_search", fmt.Sprintf("claimed %s at %s", candidate.CrewID, candidate.Base))
		return candidate, option, nil
	}
}

// startRationale asks the advisor to narrate the situation without
// blocking the decision. The returned channel always yields a value
// within the advisor timeout.
func (o *RecoveryOrchestrator) startRationale(ctx context.Context, d *entity.Disruption, flight *entity.Flight, legalCount, totalCount int) <-chan string {
	rationaleCh := make(chan string, 1)
	query := fmt.Sprintf("Flight %s crew disruption: %d of %d assigned crew have duty time violations for %s-%s.",
		d.FlightID, totalCount-legalCount, totalCount, flight.Origin, flight.Destination)
	reasonCtx := map[string]interface{}{
		"flight_id":        d.FlightID,
		"origin":           flight.Origin,
		"destination":      flight.Destination,
		"delay_minutes":    d.DelayMinutes,
		"legal_crew_count": legalCount,
		"total_crew_count": totalCount,
	}

	go func() {
		rctx, cancel := context.WithTimeout(ctx, o.advisorTimeout)
		defer cancel()
		reasoning, err := o.advisorRepo.Reason(rctx, query, reasonCtx, nil)
		if err != nil || reasoning == nil {
			o.logger.Warn("Advisor reasoning unavailable, using default", "error", err)
			rationaleCh <- entity.DefaultRationale
			return
		}
		rationaleCh <- reasoning.Rationale
	}()
	return rationaleCh
}

// retrievePolicy never returns nil: on any advisor failure the fallback
// record is substituted and counted.
func (o *RecoveryOrchestrator) retrievePolicy(ctx context.Context, query string) *entity.PolicyRecord {
	pctx, cancel := context.WithTimeout(ctx, o.advisorTimeout)
	defer cancel()

	policy, err := o.advisorRepo.RetrievePolicy(pctx, query)
	if err != nil || policy == nil {
		o.logger.Warn("Policy retrieval failed, using fallback", "query", query, "error", err)
		if o.metrics != nil {
			o.metrics.AdvisorFallbacks.Inc()
		}
		return entity.FallbackPolicy()
	}
	return policy
}

// sendNotices dispatches crew notices for the final result. Best effort.
func (o *RecoveryOrchestrator) sendNotices(ctx context.Context, result *entity.RecoveryResult, flight *entity.Flight) {
	var notices []*entity.Notice

	switch result.Status {
	case entity.RecoveryReassigned, entity.RecoveryBooked:
		notices = append(notices, &entity.Notice{
			Type:      entity.NoticeReassignment,
			CrewID:    result.SpareUsed,
			Text:      templates.ReassignmentNotice(result.SpareUsed, flight),
			CreatedAt: time.Now().UTC(),
			Status:    "pending",
		})
	case entity.RecoveryRepositioningInitiated:
		notices = append(notices, &entity.Notice{
			Type:      entity.NoticeRepositioning,
			CrewID:    result.SpareUsed,
			Text:      result.Message,
			CreatedAt: time.Now().UTC(),
			Status:    "pending",
		})
	case entity.RecoveryEscalationRequired:
		notices = append(notices, &entity.Notice{
			Type:      entity.NoticeEscalation,
			CrewID:    "duty-desk",
			Text:      templates.EscalationSummary(result),
			CreatedAt: time.Now().UTC(),
			Status:    "pending",
		})
	}

	for _, booking := range result.Bookings {
		notices = append(notices, &entity.Notice{
			Type:      entity.NoticeLodging,
			CrewID:    booking.CrewID,
			Text:      templates.LodgingNotice(booking.CrewID, flight.Origin, booking.HotelName, booking.Confirmation),
			CreatedAt: time.Now().UTC(),
			Status:    "pending",
		})
	}

	for _, notice := range notices {
		if _, err := o.noticeRepo.Send(ctx, notice); err != nil {
			o.logger.Error("Failed to send notice", "crewId", notice.CrewID, "type", notice.Type, "error", err)
			continue
		}
		if o.metrics != nil {
			o.metrics.NoticesSent.Inc()
		}
	}
}

func (o *RecoveryOrchestrator) finish(ctx context.Context, result *entity.RecoveryResult, started time.Time) (*entity.RecoveryResult, error) {
	result.ResolutionMs = time.Since(started).Milliseconds()

	if err := o.recoveryLogRepo.Save(ctx, result); err != nil {
		o.logger.Error("Failed to save recovery result", "disruptionId", result.DisruptionID, "error", err)
	}
	if o.metrics != nil {
		o.metrics.RecoveriesByStatus.WithLabelValues(string(result.Status)).Inc()
		o.metrics.ResolutionTime.Observe(time.Since(started).Seconds())
	}

	o.logger.Info("Disruption resolved",
		"disruptionId", result.DisruptionID,
		"flightId", result.FlightID,
		"status", result.Status,
		"resolutionMs", result.ResolutionMs)
	return result, nil
}

func crewIDs(members []*entity.CrewMember) []string {
	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.CrewID)
	}
	return ids
}

func derefCrew(members []*entity.CrewMember) []entity.CrewMember {
	out := make([]entity.CrewMember, 0, len(members))
	for _, member := range members {
		out = append(out, *member)
	}
	return out
}
