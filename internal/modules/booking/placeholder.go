package booking

import (
	"fmt"

	"railmate/internal/ai"
)

// ConfigurationPlaceholder builds the instructive result shown instead of an
// analysis when the provider credential is missing, plus its error message.
func ConfigurationPlaceholder(info ai.ProviderInfo) (string, AnalysisResult) {
	msg := fmt.Sprintf("%s API key not configured. Please set %s environment variable.", info.Name, info.CredentialEnv)
	return msg, AnalysisResult{
		JourneySummary:          "API Configuration Required",
		BestDirectTrains:        fmt.Sprintf("Please configure your %s API key to use this feature.", info.Name),
		SmartBookingHacks:       fmt.Sprintf("Set the %s environment variable in your .env.local file.", info.CredentialEnv),
		QuotaRecommendation:     "You can get an API key from " + info.ConsoleURL,
		ConfirmationProbability: "N/A",
		BookingCalendar:         "N/A",
		BackupStrategies:        "N/A",
	}
}
