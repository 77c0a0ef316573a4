// Package events records emitted game events to the structured log.
package events

import (
	"context"
	"log/slog"
	"sort"

	"github.com/nathoo/dragonsquest/types"
)

// Log writes one debug record per event. Event data keys are emitted in
// sorted order so records are stable across runs.
func Log(logger *slog.Logger, turn int, events []types.Event) {
	if logger == nil || !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, event := range events {
		attrs := []slog.Attr{
			slog.String("event", event.Type),
			slog.Int("turn", turn),
		}
		keys := make([]string, 0, len(event.Data))
		for k := range event.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrs = append(attrs, slog.Any(k, event.Data[k]))
		}
		logger.LogAttrs(context.Background(), slog.LevelDebug, "game event", attrs...)
	}
}

// Types returns the event types in emission order.
func Types(events []types.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
