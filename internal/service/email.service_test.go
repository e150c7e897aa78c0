package service

import (
	"testing"

	"propfactor/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeEmailRepository struct {
	to      string
	subject string
	body    string
}

func (f *fakeEmailRepository) SendEmail(to string, subject string, body string) error {
	f.to = to
	f.subject = subject
	f.body = body
	return nil
}

func sampleProjections() []*domain.AdjustedProjection {
	return []*domain.AdjustedProjection{
		{
			PlayerName: "Dak Prescott",
			Team:       "Cowboys",
			Position:   domain.PositionQB,
			Baseline: map[domain.Stat]float64{
				domain.StatPassingYards: 305,
			},
			Stats: map[domain.Stat]float64{
				domain.StatPassingYards: 283.6,
			},
			Floors: map[domain.Stat]float64{
				domain.StatPassingYards: 241.1,
			},
			HitProbability: 0.56,
		},
		{
			PlayerName: "Jahmyr Gibbs",
			Team:       "Lions",
			Position:   domain.PositionRB,
			Baseline: map[domain.Stat]float64{
				domain.StatRushingYards: 75,
			},
			Stats: map[domain.Stat]float64{
				domain.StatRushingYards: 82.5,
			},
		},
	}
}

func TestGenerateProjectionReport(t *testing.T) {
	game := domain.GameInfo{Season: 2025, Week: 13, HomeTeam: "Cowboys", AwayTeam: "Lions"}

	subject, body, err := NewEmailService(nil).GenerateProjectionReport(game, sampleProjections())
	require.NoError(t, err)

	require.Equal(t, "Projection report: Lions at Cowboys (week 13, 2025)", subject)

	require.Contains(t, body, "Dak Prescott")
	require.Contains(t, body, "passing yards")
	require.Contains(t, body, "283.6")
	require.Contains(t, body, "241.1")
	require.Contains(t, body, "56%")

	// no hit probability renders as a dash
	require.Contains(t, body, "Jahmyr Gibbs")
	require.Contains(t, body, "82.5")
}

func TestSendProjectionReport(t *testing.T) {
	game := domain.GameInfo{Season: 2025, Week: 13, HomeTeam: "Cowboys", AwayTeam: "Lions"}
	repo := &fakeEmailRepository{}

	err := NewEmailService(repo).SendProjectionReport("test@propfactor.io", game, sampleProjections())
	require.NoError(t, err)

	require.Equal(t, "test@propfactor.io", repo.to)
	require.Equal(t, "Projection report: Lions at Cowboys (week 13, 2025)", repo.subject)
	require.Contains(t, repo.body, "Dak Prescott")
}
