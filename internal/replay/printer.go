package replay

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dshills/focustrack/internal/event"
	"github.com/dshills/focustrack/internal/event/events"
	"github.com/dshills/focustrack/internal/event/topic"
)

// outbound lists the notifications a tracker publishes.
var outbound = []topic.Topic{
	topic.EditableFocused,
	topic.EditableBlurred,
	topic.EditableScrolled,
	topic.WindowScrolled,
	topic.OrientationChanged,
	topic.SelectionChanged,
}

// printer writes one transcript line per notification or step result,
// prefixed with the replay clock.
type printer struct {
	out     io.Writer
	elapsed func() time.Duration
}

func (p *printer) subscribe(bus event.Bus, counted func()) error {
	for _, tp := range outbound {
		_, err := bus.SubscribeFunc(tp, func(_ context.Context, ev any) error {
			counted()
			p.line(event.TopicOf(ev).String(), describeEvent(ev))
			return nil
		}, event.WithPriority(event.PriorityLow))
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) line(kind, detail string) {
	fmt.Fprintf(p.out, "%8s  %-24s %s\n", formatElapsed(p.elapsed()), kind, detail)
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("+%dms", d.Milliseconds())
}

func describeEvent(ev any) string {
	switch e := ev.(type) {
	case event.Event[events.EditableFocused]:
		return labelOf(e.Payload.Editable)
	case event.Event[events.EditableBlurred]:
		return labelOf(e.Payload.Editable)
	case event.Event[events.EditableScrolled]:
		return fmt.Sprintf("%s top=%g", labelOf(e.Payload.Editable), e.Payload.ScrollTop)
	case event.Event[events.WindowScrolled]:
		return fmt.Sprintf("top=%g previous=%g", e.Payload.ScrollTop, e.Payload.PreviousScrollTop)
	case event.Event[events.OrientationChanged]:
		return "settled"
	case event.Event[events.SelectionChanged]:
		return fmt.Sprintf("%s location=%s collapsed=%t", labelOf(e.Payload.Editable), e.Payload.Location, e.Payload.Collapsed)
	default:
		return fmt.Sprintf("%v", ev)
	}
}
