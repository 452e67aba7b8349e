package templates

import (
	"fmt"
	"strings"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/pkg/utils"
)

const reassignmentTemplate = `Dear %s,

You have been assigned to flight %s (%s - %s).
Scheduled departure: %s
Scheduled arrival: %s

Please report to crew operations as soon as possible.`

const lodgingTemplate = `Dear %s,

Layover accommodation has been arranged at %s.
Hotel: %s
Confirmation: %s

Ground transport details will follow separately.`

// ReassignmentNotice builds the message sent to a spare crew member
// taking over a flight.
func ReassignmentNotice(crewID string, flight *entity.Flight) string {
	return fmt.Sprintf(reassignmentTemplate,
		crewID,
		flight.FlightID,
		flight.Origin, flight.Destination,
		utils.FormatTimestamp(flight.ScheduledDep),
		utils.FormatTimestamp(flight.ScheduledArr),
	)
}

// LodgingNotice builds the message sent to a displaced crew member
// after a hotel booking.
func LodgingNotice(crewID, location, hotelName, confirmation string) string {
	return fmt.Sprintf(lodgingTemplate, crewID, location, hotelName, confirmation)
}

// EscalationSummary builds the duty-desk summary for an escalated pass.
func EscalationSummary(result *entity.RecoveryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flight %s requires manual intervention.\n", result.FlightID)
	fmt.Fprintf(&b, "Reason: %s\n", result.Message)
	if result.Policy != nil {
		fmt.Fprintf(&b, "\nApplicable policy [%s] %s:\n%s\n", result.Policy.PolicyID, result.Policy.Title, result.Policy.PolicyText)
	}
	if result.Rationale != "" {
		fmt.Fprintf(&b, "\nAdvisor rationale: %s\n", result.Rationale)
	}
	return b.String()
}
