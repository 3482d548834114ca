package replay

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/focustrack/internal/config"
)

// ErrInvalidScenario is returned for scenarios that cannot be replayed.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a replayable session.
type Scenario struct {
	Name string `yaml:"name"`

	// Selector overrides the configured editable selector.
	Selector string `yaml:"selector"`

	// SelectionChange sets whether the document emits native
	// selection-change notifications. Defaults to true.
	SelectionChange *bool `yaml:"selection_change"`

	// BuggyMobile, when set, overrides the configured platform probe.
	BuggyMobile *bool `yaml:"buggy_mobile"`

	Document []NodeDef `yaml:"document"`
	Steps    []Step     `yaml:"steps"`
}

// NodeDef describes one node of the scenario document. A definition with only
// Text is a text node; anything else is an element whose Text, when set,
// becomes its first child.
type NodeDef struct {
	Tag      string     `yaml:"tag"`
	ID       string     `yaml:"id"`
	Class    string     `yaml:"class"`
	Text     string     `yaml:"text"`
	Children []NodeDef `yaml:"children"`
}

func (n NodeDef) isText() bool {
	return n.Tag == "" && n.ID == "" && n.Class == "" && len(n.Children) == 0 && n.Text != ""
}

// Step is one scenario action. Exactly one field must be set.
type Step struct {
	Focus          string           `yaml:"focus"`
	Blur           string           `yaml:"blur"`
	Select         *SelectStep      `yaml:"select"`
	ClearSelection bool             `yaml:"clear_selection"`
	Scroll         *ScrollStep      `yaml:"scroll"`
	Publish        *PublishStep     `yaml:"publish"`
	Hit            string           `yaml:"hit"`
	Drift          string           `yaml:"drift"`
	Rotate         bool             `yaml:"rotate"`
	RestoreFocus   bool             `yaml:"restore_focus"`
	CreateFocus    bool             `yaml:"create_focus"`
	RemoveFocus    bool             `yaml:"remove_focus"`
	Advance        *config.Duration `yaml:"advance"`
}

// SelectStep selects from (Node, Start) to (EndNode, End). EndNode
// defaults to Node.
type SelectStep struct {
	Node    string `yaml:"node"`
	Start   int    `yaml:"start"`
	EndNode string `yaml:"end_node"`
	End     int    `yaml:"end"`
}

// ScrollStep scrolls an element, or the page when Target is "body".
type ScrollStep struct {
	Target string  `yaml:"target"`
	Top    float64 `yaml:"top"`
}

// PublishStep publishes an application event on the bus.
type PublishStep struct {
	Topic string `yaml:"topic"`
	Value string `yaml:"value"`
}

// Name returns the action the step performs.
func (s Step) Name() string {
	switch {
	case s.Focus != "":
		return "focus"
	case s.Blur != "":
		return "blur"
	case s.Select != nil:
		return "select"
	case s.ClearSelection:
		return "clear_selection"
	case s.Scroll != nil:
		return "scroll"
	case s.Publish != nil:
		return "publish"
	case s.Hit != "":
		return "hit"
	case s.Drift != "":
		return "drift"
	case s.Rotate:
		return "rotate"
	case s.RestoreFocus:
		return "restore_focus"
	case s.CreateFocus:
		return "create_focus"
	case s.RemoveFocus:
		return "remove_focus"
	case s.Advance != nil:
		return "advance"
	default:
		return ""
	}
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Focus != "", s.Blur != "", s.Select != nil, s.ClearSelection,
		s.Scroll != nil, s.Publish != nil, s.Hit != "", s.Drift != "",
		s.Rotate, s.RestoreFocus, s.CreateFocus, s.RemoveFocus, s.Advance != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Validate checks the scenario's shape. Node references are resolved
// when the scenario runs.
func (sc *Scenario) Validate() error {
	if len(sc.Document) == 0 {
		return fmt.Errorf("%w: empty document", ErrInvalidScenario)
	}
	for i, st := range sc.Steps {
		if n := st.actions(); n != 1 {
			return fmt.Errorf("%w: step %d has %d actions, want 1", ErrInvalidScenario, i+1, n)
		}
		if st.Advance != nil && *st.Advance < 0 {
			return fmt.Errorf("%w: step %d advances by a negative duration", ErrInvalidScenario, i+1)
		}
		if st.Publish != nil && st.Publish.Topic == "" {
			return fmt.Errorf("%w: step %d publishes without a topic", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
