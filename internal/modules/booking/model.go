// README: Booking query and analysis result definitions.
package booking

// TravelClass is an IRCTC class code. Values are passed through unchecked.
type TravelClass string

const (
	ClassFirstAC  TravelClass = "1A"
	ClassSecondAC TravelClass = "2A"
	ClassThirdAC  TravelClass = "3A"
	ClassSleeper  TravelClass = "SL"
	ClassSecondSt TravelClass = "2S"
)

// Priority is what the traveller optimises for.
type Priority string

const (
	PriorityTime         Priority = "time"
	PriorityConfirmation Priority = "confirmation"
	PriorityCost         Priority = "cost"
)

// AnalyzeRequest is the decoded request body before validation.
type AnalyzeRequest struct {
	Source         string  `json:"source"`
	Destination    string  `json:"destination"`
	TravelDate     string  `json:"travelDate"`
	PassengerCount float64 `json:"passengerCount"`
	TravelClass    string  `json:"travelClass"`
	Priority       string  `json:"priority"`
}

// BookingQuery is a validated request. It is never mutated after Validate returns it.
type BookingQuery struct {
	Source         string
	Destination    string
	TravelDate     string
	PassengerCount int
	TravelClass    TravelClass
	Priority       Priority
}

// AnalysisResult holds the seven sections in display order. Field order fixes JSON key order.
type AnalysisResult struct {
	JourneySummary          string `json:"journeySummary"`
	BestDirectTrains        string `json:"bestDirectTrains"`
	SmartBookingHacks       string `json:"smartBookingHacks"`
	QuotaRecommendation     string `json:"quotaRecommendation"`
	ConfirmationProbability string `json:"confirmationProbability"`
	BookingCalendar         string `json:"bookingCalendar"`
	BackupStrategies        string `json:"backupStrategies"`
}
