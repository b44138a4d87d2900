package entity

// CircularInput is the raw, unstructured event text submitted by a user.
type CircularInput struct {
	Text string `json:"text"`
}

// EventCircular is the validated, structured circular. Every field is required;
// unknown details carry constants.NotProvided rather than an empty value.
type EventCircular struct {
	EventTitle           string   `json:"event_title"`
	DateTime             string   `json:"date_time"`
	Venue                string   `json:"venue"`
	EventDescription     string   `json:"event_description"`
	NumberOfParticipants string   `json:"number_of_participants"`
	EventType            string   `json:"event_type"`
	Duration             string   `json:"duration"`
	Rules                []string `json:"rules"`
	JudgingCriteria      []string `json:"judging_criteria"`
	Coordinators         []string `json:"coordinators"`
	Convenor             string   `json:"convenor"`
}

// CircularFields lists the JSON keys of EventCircular in prompt/schema order.
var CircularFields = []string{
	"event_title",
	"date_time",
	"venue",
	"event_description",
	"number_of_participants",
	"event_type",
	"duration",
	"rules",
	"judging_criteria",
	"coordinators",
	"convenor",
}

// ListFields are the CircularFields holding ordered string sequences.
var ListFields = map[string]struct{}{
	"rules":            {},
	"judging_criteria": {},
	"coordinators":     {},
}
