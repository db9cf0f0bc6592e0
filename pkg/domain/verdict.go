package domain

// RiskLevel is the coarse risk bucket derived from the model score.
type RiskLevel string

const (
	// RiskLevelSafe is reported for whitelisted domains and for scores <= 0.5.
	RiskLevelSafe RiskLevel = "SAFE"
	// RiskLevelModerate is reported for scores in (0.5, 0.8].
	RiskLevelModerate RiskLevel = "MODERATE"
	// RiskLevelCritical is reported for scores above 0.8.
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Verdict is the outcome of classifying a single URL.
type Verdict struct {
	// URL is the raw input exactly as submitted.
	URL string `json:"url"`
	// IsPhishing is true when the model score is strictly above 0.5.
	IsPhishing bool `json:"is_phishing"`
	// ConfidenceScore is the raw phishing probability returned by the model.
	ConfidenceScore float64 `json:"confidence_score"`
	// DisplayConfidence is the confidence in the direction of the verdict, e.g. "90.0%".
	DisplayConfidence string `json:"display_confidence"`
	// RiskLevel buckets ConfidenceScore.
	RiskLevel RiskLevel `json:"risk_level"`
	// Details lists human-readable justifications in rule order.
	Details []string `json:"details"`
}
