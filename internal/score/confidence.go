// Package score maps keyword match ratios to discrete confidence tiers.
package score

// Confidence tiers. A fixed, coarse scale is intentional: verdicts stay
// human-auditable instead of pretending to be probabilities.
const (
	TierNone     = 0
	TierMinimal  = 20
	TierWeak     = 40
	TierModerate = 60
	TierStrong   = 75
	TierHigh     = 90
)

// Confidence maps the found/searched keyword ratio to a tier. Thresholds are
// strict (greater-than), so an exact boundary ratio falls into the lower tier.
func Confidence(found, total int) int {
	if total == 0 {
		return TierNone
	}

	ratio := float64(found) / float64(total)
	switch {
	case ratio > 0.7:
		return TierHigh
	case ratio > 0.5:
		return TierStrong
	case ratio > 0.3:
		return TierModerate
	case ratio > 0.2:
		return TierWeak
	default:
		return TierMinimal
	}
}
