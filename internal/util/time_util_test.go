package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentSeason(t *testing.T) {
	// a january playoff date still belongs to the prior season
	require.Equal(t, 2025, CurrentSeason(NewDate(2026, 1, 12)))
	require.Equal(t, 2025, CurrentSeason(NewDate(2026, 2, 8)))
	require.Equal(t, 2026, CurrentSeason(NewDate(2026, 9, 10)))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate(" 2025-11-27 ")
	require.NoError(t, err)
	require.Equal(t, NewDate(2025, 11, 27), parsed)

	_, err = ParseDate("11/27/2025")
	require.Error(t, err)
}

func TestFormatArticleDate(t *testing.T) {
	require.Equal(t, "2025-11-27", FormatArticleDate(NewDate(2025, 11, 27)))
}
