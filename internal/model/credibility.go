package model

// Rating holds one rater's bias/credibility pair for a domain.
// Pointer fields distinguish "absent" from a genuine zero.
type Rating struct {
	Bias        *float64 `json:"bias,omitempty"`
	Credibility *float64 `json:"credibility,omitempty"`
}

// CredibilityEntry is one domain's record in the credibility dataset.
// AdFontes uses native ranges bias -42..42, credibility 0..64;
// MediaBiasFactCheck uses bias -10..10, credibility 0..10 (0 best).
type CredibilityEntry struct {
	Credibility *CredibilityRatings `json:"credibility,omitempty"`
}

// CredibilityRatings groups the per-rater ratings for a domain
type CredibilityRatings struct {
	AdFontes           *Rating `json:"AdFontes,omitempty"`
	MediaBiasFactCheck *Rating `json:"MediaBiasFactCheck,omitempty"`
}

// CredibilityDataset maps lowercase domain -> ratings entry
type CredibilityDataset map[string]CredibilityEntry
