// Package credibility scores a source's domain-level quality from a static
// bias/credibility dataset combining AdFontes and MediaBiasFactCheck ratings.
package credibility

import (
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Rescaling constants mapping the raters' native ranges onto a shared 0-20
// scale before the final spread to 0-50. AdFontes bias runs -42..42 and
// credibility 0..64; MediaBiasFactCheck bias runs -10..10 and credibility
// 0..10 with 0 best. The values encode an empirical calibration; keep them
// as-is.
const (
	adFontesBiasScale = 0.238
	adFontesCredScale = 0.15625
	qualitySpread     = 2.5
)

// DefaultQuality is returned for unknown domains, unparseable URLs, and
// entries without ratings
const DefaultQuality = 25.0

// MaxQuality is the ceiling of the quality contribution
const MaxQuality = 50.0

// Scorer computes domain quality scores against a loaded dataset
type Scorer struct {
	store *Store
}

// NewScorer creates a scorer over the given dataset store
func NewScorer(store *Store) *Scorer {
	return &Scorer{store: store}
}

// Quality returns the 0-50 quality score for a result URL. Unknown domains
// and bad URLs get DefaultQuality; the second return reports whether the
// default was used so callers can flag low confidence.
func (s *Scorer) Quality(rawURL string) (float64, bool) {
	if rawURL == "" {
		return DefaultQuality, true
	}

	hostname := extractHostname(rawURL)
	if hostname == "" {
		return DefaultQuality, true
	}

	dataset := s.store.Load()
	entry, ok := dataset[hostname]
	if !ok || entry.Credibility == nil {
		return DefaultQuality, true
	}

	return scoreEntry(entry.Credibility), false
}

// scoreEntry applies the blended bias/credibility formula.
// AdFontes fields default to 0 when absent; MediaBiasFactCheck fields are
// skipped entirely when absent rather than zeroed.
func scoreEntry(ratings *model.CredibilityRatings) float64 {
	var adfBias, adfCred float64
	if adf := ratings.AdFontes; adf != nil {
		if adf.Bias != nil {
			adfBias = *adf.Bias
		}
		if adf.Credibility != nil {
			adfCred = *adf.Credibility
		}
	}

	bias := abs(adfBias) * adFontesBiasScale
	if mbfc := ratings.MediaBiasFactCheck; mbfc != nil && mbfc.Bias != nil {
		bias = (bias + abs(*mbfc.Bias)) / 2
	}
	// Invert distance from the mid-scale value 10 so low bias scores high
	biasTerm := abs(bias - 10)

	cred := adfCred * adFontesCredScale
	if mbfc := ratings.MediaBiasFactCheck; mbfc != nil && mbfc.Credibility != nil {
		// MBFC credibility is 0 best, 10 worst
		cred = (cred + abs(*mbfc.Credibility-10)) / 2
	}

	quality := (biasTerm + cred) * qualitySpread
	if quality < 0 {
		return 0
	}
	if quality > MaxQuality {
		return MaxQuality
	}
	return quality
}

// extractHostname pulls the lowercase hostname for dataset lookup.
// Lookup is exact: no subdomain or fuzzy matching.
func extractHostname(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
