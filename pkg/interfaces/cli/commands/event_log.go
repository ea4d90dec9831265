package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/vsinha/bomforge/pkg/infrastructure/events"
)

// eventLog prints reconciliation events as they are appended
type eventLog struct {
	w io.Writer
}

func (l *eventLog) CanHandle(eventType string) bool {
	return true
}

func (l *eventLog) Handle(event events.Event) error {
	_, err := fmt.Fprintf(l.w, "  %-20s %s\n", event.Type(), describeEvent(event))
	return err
}

func describeEvent(event events.Event) string {
	switch data := event.Data().(type) {
	case events.BOMLoaded:
		return fmt.Sprintf("%d entries", data.Entries)
	case events.PlacementsIndexed:
		return fmt.Sprintf("%d placements, %d values, normalized=%t", data.Placements, data.Values, data.Normalized)
	case events.RowExpanded:
		names := make([]string, len(data.Children))
		for i, child := range data.Children {
			names[i] = child.Name
		}
		return fmt.Sprintf("%q -> %s", data.Parent.Name, strings.Join(names, " | "))
	case events.SubNameUnmatched:
		return data.SubName
	case events.ValueDecoded:
		return fmt.Sprintf("%s = %s", data.Name, data.Value)
	case events.ValueDecodeFailed:
		return fmt.Sprintf("%s: %s", data.Name, data.Reason)
	default:
		return fmt.Sprintf("%v", data)
	}
}
