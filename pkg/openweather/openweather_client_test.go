package openweather

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCurrentConditions(t *testing.T) {
	t.Run("parses wind, temp and precipitation", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			w.Write([]byte(`{
				"name": "Detroit",
				"main": {"temp": 38.1},
				"wind": {"speed": 17.3},
				"rain": {"1h": 0.4},
				"weather": [{"main": "Rain"}]
			}`))
		}))
		defer server.Close()

		client := New("test-key")
		client.BaseUrl = server.URL

		conditions, err := client.GetCurrentConditions("Detroit")
		require.NoError(t, err)

		require.Equal(t, "Detroit", gotQuery)
		require.Equal(t, 17.3, conditions.Wind.Speed)
		require.Equal(t, 38.1, conditions.Main.Temp)
		require.True(t, conditions.Precipitating())
	})

	t.Run("clear skies", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"name": "Arlington",
				"main": {"temp": 72.0},
				"wind": {"speed": 4.0},
				"weather": [{"main": "Clear"}]
			}`))
		}))
		defer server.Close()

		client := New("test-key")
		client.BaseUrl = server.URL

		conditions, err := client.GetCurrentConditions("Arlington")
		require.NoError(t, err)
		require.False(t, conditions.Precipitating())
	})

	t.Run("bad city surfaces the provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
		}))
		defer server.Close()

		client := New("test-key")
		client.BaseUrl = server.URL

		_, err := client.GetCurrentConditions("Nowheresville")
		require.Error(t, err)
		require.Contains(t, err.Error(), "city not found")
	})
}
