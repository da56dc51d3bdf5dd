// README: Analysis history record definitions.
package history

import (
	"errors"
	"time"

	"railmate/internal/modules/booking"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var ErrBadLimit = errors.New("limit must be between 1 and 100")

// Record is one persisted analysis.
type Record struct {
	ID             string                 `json:"id"`
	Source         string                 `json:"source"`
	Destination    string                 `json:"destination"`
	TravelDate     string                 `json:"travelDate"`
	PassengerCount int                    `json:"passengerCount"`
	TravelClass    string                 `json:"travelClass"`
	Priority       string                 `json:"priority"`
	Result         booking.AnalysisResult `json:"result"`
	Degraded       bool                   `json:"degraded"`
	Provider       string                 `json:"provider"`
	CreatedAt      time.Time              `json:"createdAt"`
}
