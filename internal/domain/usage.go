package domain

import "time"

// SnapCounts is a player's raw recent-usage line from the provider.
// Counts are attempts over the lookback window, not shares.
type SnapCounts struct {
	SnapShare      float64 `json:"snapShare"`
	RushAttempts   float64 `json:"rushAttempts"`
	Targets        float64 `json:"targets"`
	RedZoneRushes  float64 `json:"redZoneRushes"`
	RedZoneTargets float64 `json:"redZoneTargets"`
}

// PlayerUsage is the derived share-of-team view of SnapCounts, after
// news-trend tweaks and renormalization.
type PlayerUsage struct {
	SnapShare          float64 `json:"snapShare"`
	RushShare          float64 `json:"rushShare"`
	TargetShare        float64 `json:"targetShare"`
	RedZoneRushShare   float64 `json:"redZoneRushShare"`
	RedZoneTargetShare float64 `json:"redZoneTargetShare"`
}

// StarterConfig names the expected starters for one team. Empty slots are
// filled from the official depth chart during validation.
type StarterConfig struct {
	QB  string `json:"qb,omitempty"`
	RB1 string `json:"rb1,omitempty"`
	RB2 string `json:"rb2,omitempty"`
	WR1 string `json:"wr1,omitempty"`
	WR2 string `json:"wr2,omitempty"`
	WR3 string `json:"wr3,omitempty"`
	TE1 string `json:"te1,omitempty"`
	TE2 string `json:"te2,omitempty"`
}

type NewsArticle struct {
	Title   string    `json:"title"`
	Author  string    `json:"author,omitempty"`
	Summary string    `json:"summary,omitempty"`
	Team    string    `json:"team,omitempty"`
	Updated time.Time `json:"updated"`
}
