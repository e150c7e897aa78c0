package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"propfactor/internal/app"
	"propfactor/internal/calculator"
	"propfactor/internal/domain"
	"propfactor/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var floatCompare = cmp.Comparer(func(i, j float64) bool {
	return math.Abs(i-j) < 0.0001
})

func newTestRouter() http.Handler {
	demoRepository := repository.NewDemoProjectionsRepository()
	handler := ApiHandler{
		GameAnalysisHandler: app.GameAnalysisHandler{
			ProjectionsRepository: demoRepository,
			Weights:               calculator.DefaultFactorWeights(),
		},
		ProjectionsRepository: demoRepository,
	}
	return handler.InitializeRouterEngine()
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWelcomeRoute(t *testing.T) {
	router := newTestRouter()

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), "welcome to propfactor")
}

func TestAdjustProjectionsResolver(t *testing.T) {
	router := newTestRouter()

	t.Run("adjusts caller baselines", func(t *testing.T) {
		w := post(t, router, "/adjustProjections", `{
			"projections": [
				{
					"playerName": "Dak Prescott",
					"team": "Cowboys",
					"position": "QB",
					"stats": {"passing_yards": 100},
					"hitProbability": 0.6
				}
			],
			"factors": {
				"weights": {"defense_rank_weight": 1.2, "injury_weight": 0.8}
			}
		}`)
		require.Equal(t, 200, w.Code)

		var response app.AdjustProjectionsResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Projections, 1)
		require.Equal(t, "", cmp.Diff(96.0, response.Projections[0].Stats[domain.StatPassingYards], floatCompare))
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		w := post(t, router, "/adjustProjections", `{"projections": `)
		require.Equal(t, 500, w.Code)
	})
}

func TestAnalyzeGameResolver(t *testing.T) {
	router := newTestRouter()

	w := post(t, router, "/analyzeGame", `{
		"season": 2025,
		"week": 13,
		"homeTeam": "Cowboys",
		"awayTeam": "Lions"
	}`)
	require.Equal(t, 200, w.Code)

	var response analyzeGameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projections, 9)
	require.Equal(t, "Dak Prescott", response.Projections[0].PlayerName)
	require.NotNil(t, response.Profile)
	require.NotEmpty(t, response.Profile.Events)
}

func TestExportCsvResolver(t *testing.T) {
	router := newTestRouter()

	w := post(t, router, "/exportCsv", `{
		"season": 2025,
		"week": 13,
		"homeTeam": "Cowboys",
		"awayTeam": "Lions"
	}`)
	require.Equal(t, 200, w.Code)
	require.Equal(
		t,
		"attachment; filename=2025-13_Lions_at_Cowboys_projections.csv",
		w.Header().Get("Content-Disposition"),
	)

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Equal(t, "player,team,position,stat,baseline,adjusted,floor,multiplier,hitProbability,zScore,factors", lines[0])
	require.Contains(t, lines[1], "Dak Prescott")
}

func TestConstructContextFactorsResolver_noGptConfigured(t *testing.T) {
	router := newTestRouter()

	w := post(t, router, "/constructContextFactors", `{"input": "the wind is howling"}`)
	require.Equal(t, 400, w.Code)
	require.Contains(t, w.Body.String(), "no gpt api key is configured")
}

func TestEmailReportResolver_missingRecipient(t *testing.T) {
	router := newTestRouter()

	w := post(t, router, "/emailReport", `{
		"season": 2025,
		"week": 13,
		"homeTeam": "Cowboys",
		"awayTeam": "Lions"
	}`)
	require.Equal(t, 400, w.Code)
	require.Contains(t, w.Body.String(), "recipient is required")
}
