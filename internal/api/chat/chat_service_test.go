package chat

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelwiz/travelwiz/internal/types"
)

func newTestService() *ServiceImpl {
	return NewService(NewDiceMatcher(), slog.Default())
}

func TestReply(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	t.Run("EmptyMessage", func(t *testing.T) {
		_, err := service.Reply(ctx, "   ")
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("CityAndIntent", func(t *testing.T) {
		reply, err := service.Reply(ctx, "where to eat in jaipur?")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(reply, "Here you go — Jaipur:"))
		assert.Contains(t, reply, "Dal Baati Churma")
	})

	t.Run("DayKeyedItinerary", func(t *testing.T) {
		reply, err := service.Reply(ctx, "plan 2 days in Jaipur")

		require.NoError(t, err)
		assert.Contains(t, reply, "2-day Jaipur")
	})

	t.Run("UnknownDayCountFallsBackToBestPlaces", func(t *testing.T) {
		reply, err := service.Reply(ctx, "plan 7 days in Jaipur")

		require.NoError(t, err)
		assert.Contains(t, reply, "Top Jaipur")
	})

	t.Run("DayCountAloneImpliesItinerary", func(t *testing.T) {
		reply, err := service.Reply(ctx, "3 days in goa")

		require.NoError(t, err)
		assert.Contains(t, reply, "3-day Goa")
	})

	t.Run("NoCityUsesDefaults", func(t *testing.T) {
		reply, err := service.Reply(ctx, "best time to visit?")

		require.NoError(t, err)
		assert.Contains(t, reply, "Best time depends on the destination")
		assert.False(t, strings.HasPrefix(reply, "Here you go"))
	})

	t.Run("NoIntentNoCityGenericFallback", func(t *testing.T) {
		reply, err := service.Reply(ctx, "hello there")

		require.NoError(t, err)
		assert.Contains(t, reply, "Tell me the city")
	})

	t.Run("MisspelledCityFuzzyMatch", func(t *testing.T) {
		reply, err := service.Reply(ctx, "goaa highlights")

		require.NoError(t, err)
		assert.Contains(t, reply, "Top Goa")
	})
}

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		intent  string
	}{
		{"what to see around here", intentBestPlaces},
		{"good restaurants nearby", intentFood},
		{"help me plan a trip", intentItinerary},
		{"when to visit the mountains", intentBestTime},
		{"2 days somewhere", intentItinerary},
		{"hello", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.intent, detectIntent(tc.message), tc.message)
	}
}

func TestDiceMatcher(t *testing.T) {
	matcher := NewDiceMatcher()

	t.Run("ExactSubstringWins", func(t *testing.T) {
		city, ok := matcher.Match("trip to jaipur next month", knownCities)
		assert.True(t, ok)
		assert.Equal(t, "jaipur", city)
	})

	t.Run("CloseMisspelling", func(t *testing.T) {
		city, ok := matcher.Match("jaipr", knownCities)
		assert.True(t, ok)
		assert.Equal(t, "jaipur", city)
	})

	t.Run("NoMatchBelowThreshold", func(t *testing.T) {
		_, ok := matcher.Match("reykjavik", knownCities)
		assert.False(t, ok)
	})
}

func TestDiceSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, diceSimilarity("goa", "goa"))
	assert.Equal(t, 0.0, diceSimilarity("goa", "xyz"))
	assert.Greater(t, diceSimilarity("jaipur", "jaipr"), 0.4)
}
