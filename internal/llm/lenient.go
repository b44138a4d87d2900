package llm

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

// dropUnknownFields removes top-level keys that are not circular fields, so
// chatty extras ("notes", "confidence") do not fail strict validation. Values
// of known fields are never touched. Returns the dropped keys, sorted.
func dropUnknownFields(m map[string]any, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	allowed := make(map[string]struct{}, len(entity.CircularFields))
	for _, f := range entity.CircularFields {
		allowed[f] = struct{}{}
	}

	var dropped []string
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k)
		}
	}
	slices.Sort(dropped)

	if len(dropped) > 0 {
		logger.Warn("llm.extract.unknown_fields_dropped", "dropped", dropped)
	}
	return dropped
}
