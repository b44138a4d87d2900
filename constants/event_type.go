package constants

import (
	"strings"
)

type EventType string

const (
	Hackathon   EventType = "Hackathon"
	Workshop    EventType = "Workshop"
	Seminar     EventType = "Seminar"
	Competition EventType = "Competition"
	Conference  EventType = "Conference"
	Symposium   EventType = "Symposium"
	Webinar     EventType = "Webinar"
	Lecture     EventType = "Lecture"
	Cultural    EventType = "Cultural"
	Sports      EventType = "Sports"
	Other       EventType = "Other"
)

var allEventTypes = []EventType{
	Hackathon,
	Workshop,
	Seminar,
	Competition,
	Conference,
	Symposium,
	Webinar,
	Lecture,
	Cultural,
	Sports,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allEventTypes))
	for i, et := range allEventTypes {
		result[i] = string(et)
	}
	return result
}

// Canonicalize maps a free-text event type onto the bounded set above.
// Used for metric labels; the circular itself keeps the model's wording.
func Canonicalize(input string) (EventType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" || normalized == strings.ToLower(NotProvided) {
		return Other, false
	}

	synonyms := map[string]EventType{
		"hackathon":          Hackathon,
		"coding competition": Competition,
		"contest":            Competition,
		"quiz":               Competition,
		"guest lecture":      Lecture,
		"talk":               Lecture,
		"expert talk":        Lecture,
		"hands-on workshop":  Workshop,
		"bootcamp":           Workshop,
		"online seminar":     Webinar,
		"fest":               Cultural,
		"cultural fest":      Cultural,
		"tournament":         Sports,
	}
	if et, ok := synonyms[normalized]; ok {
		return et, true
	}

	for _, et := range allEventTypes {
		if normalized == strings.ToLower(string(et)) {
			return et, true
		}
	}

	// "Technical Workshop", "National Level Hackathon", ...
	for _, et := range allEventTypes {
		if et != Other && strings.Contains(normalized, strings.ToLower(string(et))) {
			return et, true
		}
	}

	return Other, false
}
