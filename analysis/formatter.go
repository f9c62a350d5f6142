package analysis

import (
	"fmt"
	"strings"
)

// ProviderName returns the uppercase provider name used in user-facing
// messages.
func ProviderName(provider string) string {
	if provider == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(provider)
}

// FormatSuccessMessage describes a completed analysis that produced
// features.
func FormatSuccessMessage(featureCount int, provider string, stats DetectionStats) string {
	msg := fmt.Sprintf("Created layer with %d features from %s analysis (including query extent)", featureCount, ProviderName(provider))
	if stats.SkippedConfidence > 0 || stats.SkippedMissing > 0 {
		msg += fmt.Sprintf(" (filtered from %d total)", stats.Total)
	}
	return msg
}

// FormatWarningMessage describes an analysis whose detections were all
// filtered out or missing.
func FormatWarningMessage(provider string, stats DetectionStats, confidenceThreshold float64) string {
	msg := fmt.Sprintf("No features created from %s analysis", ProviderName(provider))

	if stats.Total == 0 {
		return msg + " (no items in JSON response)"
	}

	var reasons []string
	if stats.SkippedConfidence > 0 {
		reasons = append(reasons, fmt.Sprintf("%d below %d%% confidence", stats.SkippedConfidence, int(confidenceThreshold)))
	}
	if stats.SkippedMissing > 0 {
		reasons = append(reasons, fmt.Sprintf("%d missing required fields", stats.SkippedMissing))
	}
	if len(reasons) > 0 {
		msg += fmt.Sprintf(" (%d items: %s)", stats.Total, strings.Join(reasons, ", "))
	}
	return msg
}
