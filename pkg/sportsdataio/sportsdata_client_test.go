package sportsdataio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := New("test-key")
	c.BaseUrl = url
	c.RetryWait = 0
	return c
}

func TestGetGameProjections(t *testing.T) {
	t.Run("parses the provider response", func(t *testing.T) {
		var gotPath, gotKey, gotUserAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			gotUserAgent = r.Header.Get("User-Agent")

			w.Write([]byte(`[
				{
					"PlayerID": "21804",
					"Name": "Dak Prescott",
					"Team": "DAL",
					"Opponent": "DET",
					"Position": "QB",
					"PassingYards": 305.0,
					"PassingTouchdowns": 2.4,
					"RushingYards": 15.0
				}
			]`))
		}))
		defer server.Close()

		projections, err := newTestClient(server.URL).GetGameProjections(2025, 12)
		require.NoError(t, err)

		require.Equal(t, "/projections/json/PlayerGameProjectionStatsByWeek/2025/12", gotPath)
		require.Equal(t, "test-key", gotKey)
		require.NotEmpty(t, gotUserAgent)

		require.Equal(t, "", cmp.Diff(
			[]PlayerGameProjection{
				{
					PlayerID:          21804,
					Name:              "Dak Prescott",
					Team:              "DAL",
					Opponent:          "DET",
					Position:          "QB",
					PassingYards:      305,
					PassingTouchdowns: 2.4,
					RushingYards:      15,
				},
			},
			projections,
		))
	})

	t.Run("retries rate limits", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			if requests == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetGameProjections(2025, 12)
		require.NoError(t, err)
		require.Equal(t, 2, requests)
	})

	t.Run("bad api key fails immediately", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "invalid subscription key"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetGameProjections(2025, 12)
		require.Error(t, err)
		require.Contains(t, err.Error(), "rejected the api key")
		require.Equal(t, 1, requests)
	})
}

func TestGetInjuries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"PlayerID": 19063, "Name": "CeeDee Lamb", "Team": "DAL", "Position": "WR", "Status": "Questionable", "BodyPart": "Ankle"}
		]`))
	}))
	defer server.Close()

	injuries, err := newTestClient(server.URL).GetInjuries(2025, 12)
	require.NoError(t, err)

	require.Equal(t, "", cmp.Diff(
		[]PlayerInjury{
			{
				PlayerID: 19063,
				Name:     "CeeDee Lamb",
				Team:     "DAL",
				Position: "WR",
				Status:   "Questionable",
				BodyPart: "Ankle",
			},
		},
		injuries,
	))
}

func TestFlexInt(t *testing.T) {
	type record struct {
		ID FlexInt `json:"id"`
	}

	var quoted record
	require.NoError(t, json.Unmarshal([]byte(`{"id": "42"}`), &quoted))
	require.Equal(t, FlexInt(42), quoted.ID)

	var bare record
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &bare))
	require.Equal(t, FlexInt(42), bare.ID)

	var empty record
	require.NoError(t, json.Unmarshal([]byte(`{"id": ""}`), &empty))
	require.Equal(t, FlexInt(0), empty.ID)
}
