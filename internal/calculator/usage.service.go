package calculator

import (
	"fmt"
	"strings"

	"propfactor/internal/domain"
)

const (
	teamPassAttempts = 40.0
	catchRate        = 0.65

	trendUpMultiplier   = 1.1
	trendDownMultiplier = 0.9
)

// DeriveUsage turns a raw snap count report into per-player shares of
// the team's rushes, targets and red zone work. News trends bump the
// affected player's shares up or down 10% before the pools are
// renormalized, so one player's hype comes out of his teammates' touches.
func DeriveUsage(snaps map[string]domain.SnapCounts, trends map[string]domain.NewsTrend) (map[string]domain.PlayerUsage, error) {
	if len(snaps) == 0 {
		return nil, fmt.Errorf("cannot derive usage from an empty snap report")
	}

	totalRushes := 0.0
	totalTargets := 0.0
	totalRedZoneRushes := 0.0
	totalRedZoneTargets := 0.0
	for _, counts := range snaps {
		totalRushes += counts.RushAttempts
		totalTargets += counts.Targets
		totalRedZoneRushes += counts.RedZoneRushes
		totalRedZoneTargets += counts.RedZoneTargets
	}

	usage := map[string]domain.PlayerUsage{}
	for player, counts := range snaps {
		u := domain.PlayerUsage{
			SnapShare:          counts.SnapShare,
			RushShare:          counts.RushAttempts / orOne(totalRushes),
			TargetShare:        counts.Targets / orOne(totalTargets),
			RedZoneRushShare:   counts.RedZoneRushes / orOne(totalRedZoneRushes),
			RedZoneTargetShare: counts.RedZoneTargets / orOne(totalRedZoneTargets),
		}
		switch trends[player] {
		case domain.NewsTrendUp:
			u.RushShare *= trendUpMultiplier
			u.TargetShare *= trendUpMultiplier
		case domain.NewsTrendDown:
			u.RushShare *= trendDownMultiplier
			u.TargetShare *= trendDownMultiplier
		}
		usage[player] = u
	}

	rushSum := 0.0
	targetSum := 0.0
	for _, u := range usage {
		rushSum += u.RushShare
		targetSum += u.TargetShare
	}
	for player, u := range usage {
		u.RushShare /= orOne(rushSum)
		u.TargetShare /= orOne(targetSum)
		usage[player] = u
	}

	return usage, nil
}

// EstimateReceptions projects a reception count off target share,
// assuming a 40 attempt passing game at a 65% catch rate. Returns nil
// for players who draw no targets.
func EstimateReceptions(u domain.PlayerUsage) *float64 {
	if u.TargetShare <= 0 {
		return nil
	}
	receptions := teamPassAttempts * u.TargetShare * catchRate
	return &receptions
}

// EstimateTouchdowns converts red zone involvement into an expected
// touchdown count plus a conservative floor.
func EstimateTouchdowns(u domain.PlayerUsage) domain.TouchdownEstimate {
	mean := 0.3 * (1 + u.RedZoneRushShare + u.RedZoneTargetShare)
	return domain.TouchdownEstimate{
		Mean:  mean,
		Floor: mean * 0.7,
	}
}

var downKeywords = []string{
	"ruled out",
	"doubtful",
	"questionable",
	"limited practice",
	"did not practice",
	"downgraded",
	"carted off",
	"inactive",
	"injury concern",
}

var upKeywords = []string{
	"expected to start",
	"full practice",
	"cleared",
	"upgraded",
	"activated",
	"no injury designation",
	"expanded role",
}

// DeriveNewsTrends scans beat reporter articles for usage signals on the
// given players. Negative phrasing wins when an article hedges both ways.
func DeriveNewsTrends(articles []domain.NewsArticle, players []string) map[string]domain.NewsTrend {
	trends := map[string]domain.NewsTrend{}
	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Summary)
		for _, player := range players {
			if !strings.Contains(text, strings.ToLower(player)) {
				continue
			}
			if containsAny(text, downKeywords) {
				trends[player] = domain.NewsTrendDown
			} else if containsAny(text, upKeywords) {
				if _, ok := trends[player]; !ok {
					trends[player] = domain.NewsTrendUp
				}
			}
		}
	}
	return trends
}

// ValidateStarters checks a requested starter lineup against the team's
// depth chart and fills any blank required slot from chart order. Blank
// optional slots (RB2, WR3, TE2) stay blank.
func ValidateStarters(depthChart map[domain.Position][]string, cfg domain.StarterConfig) (domain.StarterConfig, error) {
	out := cfg
	slots := []struct {
		value    *string
		position domain.Position
		depth    int
		required bool
	}{
		{&out.QB, domain.PositionQB, 0, true},
		{&out.RB1, domain.PositionRB, 0, true},
		{&out.RB2, domain.PositionRB, 1, false},
		{&out.WR1, domain.PositionWR, 0, true},
		{&out.WR2, domain.PositionWR, 1, true},
		{&out.WR3, domain.PositionWR, 2, false},
		{&out.TE1, domain.PositionTE, 0, true},
		{&out.TE2, domain.PositionTE, 1, false},
	}

	for _, slot := range slots {
		listed := depthChart[slot.position]
		if *slot.value == "" {
			if !slot.required {
				continue
			}
			if slot.depth >= len(listed) {
				return domain.StarterConfig{}, fmt.Errorf("depth chart has no %s at depth %d", slot.position, slot.depth+1)
			}
			*slot.value = listed[slot.depth]
			continue
		}
		if !containsFold(listed, *slot.value) {
			return domain.StarterConfig{}, fmt.Errorf("%s is not listed at %s on the depth chart", *slot.value, slot.position)
		}
	}

	return out, nil
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func containsFold(list []string, name string) bool {
	for _, candidate := range list {
		if strings.EqualFold(candidate, name) {
			return true
		}
	}
	return false
}
