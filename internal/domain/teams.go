package domain

import "strings"

// canonical team names are nicknames ("Cowboys"), matching how users type
// them. Providers mostly speak abbreviations, so map both ways.

var teamByAbbreviation = map[string]string{
	"ARI": "Cardinals",
	"ATL": "Falcons",
	"BAL": "Ravens",
	"BUF": "Bills",
	"CAR": "Panthers",
	"CHI": "Bears",
	"CIN": "Bengals",
	"CLE": "Browns",
	"DAL": "Cowboys",
	"DEN": "Broncos",
	"DET": "Lions",
	"GB":  "Packers",
	"HOU": "Texans",
	"IND": "Colts",
	"JAX": "Jaguars",
	"KC":  "Chiefs",
	"LAC": "Chargers",
	"LAR": "Rams",
	"LV":  "Raiders",
	"MIA": "Dolphins",
	"MIN": "Vikings",
	"NE":  "Patriots",
	"NO":  "Saints",
	"NYG": "Giants",
	"NYJ": "Jets",
	"PHI": "Eagles",
	"PIT": "Steelers",
	"SEA": "Seahawks",
	"SF":  "49ers",
	"TB":  "Buccaneers",
	"TEN": "Titans",
	"WAS": "Commanders",
}

var stadiumCityByTeam = map[string]string{
	"Cardinals":  "Glendale",
	"Falcons":    "Atlanta",
	"Ravens":     "Baltimore",
	"Bills":      "Orchard Park",
	"Panthers":   "Charlotte",
	"Bears":      "Chicago",
	"Bengals":    "Cincinnati",
	"Browns":     "Cleveland",
	"Cowboys":    "Arlington",
	"Broncos":    "Denver",
	"Lions":      "Detroit",
	"Packers":    "Green Bay",
	"Texans":     "Houston",
	"Colts":      "Indianapolis",
	"Jaguars":    "Jacksonville",
	"Chiefs":     "Kansas City",
	"Chargers":   "Inglewood",
	"Rams":       "Inglewood",
	"Raiders":    "Las Vegas",
	"Dolphins":   "Miami Gardens",
	"Vikings":    "Minneapolis",
	"Patriots":   "Foxborough",
	"Saints":     "New Orleans",
	"Giants":     "East Rutherford",
	"Jets":       "East Rutherford",
	"Eagles":     "Philadelphia",
	"Steelers":   "Pittsburgh",
	"Seahawks":   "Seattle",
	"49ers":      "Santa Clara",
	"Buccaneers": "Tampa",
	"Titans":     "Nashville",
	"Commanders": "Landover",
}

// NormalizeTeam maps abbreviations and sloppy casing onto the canonical
// nickname. Unknown inputs come back trimmed but otherwise untouched so
// matching still works for whatever the caller typed on both sides.
func NormalizeTeam(s string) string {
	trimmed := strings.TrimSpace(s)
	if nickname, ok := teamByAbbreviation[strings.ToUpper(trimmed)]; ok {
		return nickname
	}
	for nickname := range stadiumCityByTeam {
		if strings.EqualFold(nickname, trimmed) {
			return nickname
		}
	}
	return trimmed
}

// StadiumCity returns the home stadium's city for weather lookups, or
// "" when the team is unknown.
func StadiumCity(team string) string {
	return stadiumCityByTeam[NormalizeTeam(team)]
}

// Abbreviation reverses NormalizeTeam for providers whose URLs want
// "DAL" instead of "Cowboys". Unknown teams come back as given.
func Abbreviation(team string) string {
	canonical := NormalizeTeam(team)
	for abbreviation, nickname := range teamByAbbreviation {
		if nickname == canonical {
			return abbreviation
		}
	}
	return team
}
