package focus

import (
	"strconv"
	"strings"

	"github.com/dshills/focustrack/internal/dom"
)

// Position is a boundary point relative to an editable: the child indexes
// leading from the editable to the container, plus the offset.
type Position struct {
	Path   []int
	Offset int

	// Outside is set when the container is not inside the editable.
	Outside bool
}

// String renders the position as "0/2:5". The editable itself is ".".
func (p Position) String() string {
	var b strings.Builder
	switch {
	case p.Outside:
		b.WriteByte('?')
	case len(p.Path) == 0:
		b.WriteByte('.')
	default:
		for i, idx := range p.Path {
			if i > 0 {
				b.WriteByte('/')
			}
			b.WriteString(strconv.Itoa(idx))
		}
	}
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(p.Offset))
	return b.String()
}

// Location is the position of a selection inside an editable.
type Location struct {
	Start Position
	End   Position
}

// Collapsed reports whether start and end are the same position.
func (l Location) Collapsed() bool {
	return l.Start.String() == l.End.String()
}

// String renders the location as "start-end", e.g. "0/2:5-0/3:1".
func (l Location) String() string {
	return l.Start.String() + "-" + l.End.String()
}

// LocationOf computes the location of r inside editable. ok is false when
// r does not start inside editable.
func LocationOf(editable dom.Node, r dom.Range) (loc Location, ok bool) {
	if !IsWithin(r, editable) {
		return Location{}, false
	}
	return Location{
		Start: positionOf(editable, r.Start()),
		End:   positionOf(editable, r.End()),
	}, true
}

func positionOf(editable dom.Node, p dom.Point) Position {
	path, ok := dom.Path(editable, p.Container)
	if !ok {
		return Position{Offset: p.Offset, Outside: true}
	}
	return Position{Path: path, Offset: p.Offset}
}
