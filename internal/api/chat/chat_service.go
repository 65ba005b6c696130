package chat

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/travelwiz/travelwiz/internal/types"
)

// Service answers traveller questions from the canned reply dataset.
type Service interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ServiceImpl runs the rule engine: detect an intent from keywords, detect a
// city via the injected matcher, then select the most specific reply
// available.
type ServiceImpl struct {
	logger  *slog.Logger
	matcher CityMatcher
}

func NewService(matcher CityMatcher, logger *slog.Logger) *ServiceImpl {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &ServiceImpl{logger: logger, matcher: matcher}
}

var daysPattern = regexp.MustCompile(`\b(\d+)\s*days?\b`)

func (s *ServiceImpl) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message is required", types.ErrValidation)
	}

	intent := detectIntent(message)
	if intent == "" {
		intent = intentBestPlaces
	}
	city, found := s.matcher.Match(strings.ToLower(message), knownCities)

	reply := selectReply(city, intent, message)

	// Personalize when a city was recognised.
	if found {
		reply = fmt.Sprintf("Here you go — %s:\n\n%s", titleCase(city), reply)
	}

	s.logger.DebugContext(ctx, "Chat reply selected",
		slog.String("intent", intent),
		slog.String("city", city))

	return reply, nil
}

// detectIntent scans the keyword lists in fixed order, falling back to the
// itinerary intent when the message mentions a day count.
func detectIntent(message string) string {
	t := strings.ToLower(message)
	for _, intent := range intentOrder {
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(t, kw) {
				return intent
			}
		}
	}
	if daysPattern.MatchString(t) {
		return intentItinerary
	}
	return ""
}

// selectReply picks the most specific canned answer: city+intent, then a
// day-keyed itinerary, then the city's best_places, then the default set.
func selectReply(city, intent, message string) string {
	if cityData, ok := cannedReplies[city]; ok {
		if reply, ok := cityData[intent]; ok {
			return reply
		}
		if intent == intentItinerary {
			if m := daysPattern.FindStringSubmatch(strings.ToLower(message)); m != nil {
				if reply, ok := cityData["itinerary_"+m[1]+"days"]; ok {
					return reply
				}
			}
		}
		if reply, ok := cityData[intentBestPlaces]; ok {
			return reply
		}
	}

	if reply, ok := cannedReplies[defaultCity][intent]; ok {
		return reply
	}
	return cannedReplies[defaultCity][intentBestPlaces]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
