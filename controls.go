package slides3d

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Control names a tunable field of ControlValues; subscriptions are made per Control.
type Control string

const (
	ControlColor        Control = "color"
	ControlBackground   Control = "background"
	ControlDisplacement Control = "displacement"
	ControlDelayFactor  Control = "delayFactor"
	ControlSpiralRadius Control = "spiralRadius"
	ControlTurbulence   Control = "turbulence"
)

// TurbulenceControls tune the waving (noise slides) and fluttering (spiral slides) effects.
type TurbulenceControls struct {
	Speed       float64 `yaml:"speed"`
	Frequency   float64 `yaml:"frequency"`
	Amplitude   float64 `yaml:"amplitude"`
	Attenuation float64 `yaml:"attenuation"`
}

// ControlValues holds every live-tunable value.
type ControlValues struct {
	Color        string             `yaml:"color"`        // Fallback color of the instances, as hex.
	Background   string             `yaml:"background"`   // Clear color, as hex.
	Displacement float64            `yaml:"displacement"` // Radius of the pointer's push.
	DelayFactor  float64            `yaml:"delayFactor"`  // Spread between the first and the last instance to arrive.
	SpiralRadius float64            `yaml:"spiralRadius"` // Radius of the spiral tube.
	Turbulence   TurbulenceControls `yaml:"turbulence"`
}

// DefaultControlValues returns the values slides are tuned for out of the box.
func DefaultControlValues() ControlValues {
	return ControlValues{
		Color:        "#cec298",
		Background:   "#9d7f00",
		Displacement: 0.75,
		DelayFactor:  1.3,
		SpiralRadius: 0.8,
		Turbulence: TurbulenceControls{
			Speed:       1.8,
			Frequency:   0.14,
			Amplitude:   1.3,
			Attenuation: 50,
		},
	}
}

// Changed returns which Controls differ between the two sets of values, in a stable order.
func (cv ControlValues) Changed(other ControlValues) []Control {
	changed := []Control{}
	if cv.Color != other.Color {
		changed = append(changed, ControlColor)
	}
	if cv.Background != other.Background {
		changed = append(changed, ControlBackground)
	}
	if cv.Displacement != other.Displacement {
		changed = append(changed, ControlDisplacement)
	}
	if cv.DelayFactor != other.DelayFactor {
		changed = append(changed, ControlDelayFactor)
	}
	if cv.SpiralRadius != other.SpiralRadius {
		changed = append(changed, ControlSpiralRadius)
	}
	if cv.Turbulence != other.Turbulence {
		changed = append(changed, ControlTurbulence)
	}
	return changed
}

// Controls is the live store of ControlValues. Components read the current values every frame and subscribe to the Controls whose
// changes require recomputation (delays, paths, colors).
//
// Controls isn't safe for concurrent use; values coming from other goroutines (like the file watcher) are queued and applied by Update
// on the frame thread.
type Controls struct {
	values      ControlValues
	subscribers map[Control]map[int]func(ControlValues)
	nextID      int
	pending     chan ControlValues
}

// NewControls creates a new Controls store holding the values given.
func NewControls(values ControlValues) *Controls {
	return &Controls{
		values:      values,
		subscribers: map[Control]map[int]func(ControlValues){},
		pending:     make(chan ControlValues, 1),
	}
}

// Values returns the current values.
func (c *Controls) Values() ControlValues {
	return c.values
}

// Subscribe registers fn to be called with the new values whenever the given Control changes. The returned function removes the subscription.
func (c *Controls) Subscribe(control Control, fn func(ControlValues)) (unsubscribe func()) {

	if c.subscribers[control] == nil {
		c.subscribers[control] = map[int]func(ControlValues){}
	}

	id := c.nextID
	c.nextID++
	c.subscribers[control][id] = fn

	return func() {
		delete(c.subscribers[control], id)
	}

}

// Set replaces the values and notifies the subscribers of each changed Control, in subscription order.
func (c *Controls) Set(values ControlValues) {

	changed := c.values.Changed(values)
	c.values = values

	for _, control := range changed {

		ids := make([]int, 0, len(c.subscribers[control]))
		for id := range c.subscribers[control] {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, id := range ids {
			// A subscriber may have unsubscribed another one in the meantime
			if fn, ok := c.subscribers[control][id]; ok {
				fn(values)
			}
		}

	}

}

// Queue hands values over to be applied on the next Update. It's safe to call from any goroutine; only the latest queued values are kept.
func (c *Controls) Queue(values ControlValues) {
	for {
		select {
		case c.pending <- values:
			return
		default:
			select {
			case <-c.pending:
			default:
			}
		}
	}
}

// Update applies queued values, if any. It should be called once per frame from the frame thread.
func (c *Controls) Update() {
	select {
	case values := <-c.pending:
		c.Set(values)
	default:
	}
}

// LoadControls reads ControlValues from a YAML file. Fields missing from the file keep their default values.
func LoadControls(path string) (ControlValues, error) {

	values := DefaultControlValues()

	data, err := os.ReadFile(path)
	if err != nil {
		return values, fmt.Errorf("reading controls: %w", err)
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return DefaultControlValues(), fmt.Errorf("parsing controls %s: %w", path, err)
	}

	if err := values.Validate(); err != nil {
		return DefaultControlValues(), fmt.Errorf("controls %s: %w", path, err)
	}

	return values, nil

}

// SaveControls writes the values to a YAML file.
func SaveControls(path string, values ControlValues) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding controls: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing controls: %w", err)
	}
	return nil
}

// Validate checks the values are in range and that the colors parse.
func (cv ControlValues) Validate() error {

	var errs []error

	if _, err := NewColorFromHexString(cv.Color); err != nil {
		errs = append(errs, err)
	}
	if _, err := NewColorFromHexString(cv.Background); err != nil {
		errs = append(errs, err)
	}
	if cv.Displacement < 0 {
		errs = append(errs, fmt.Errorf("displacement must not be negative, got %g", cv.Displacement))
	}
	if cv.DelayFactor < 0 {
		errs = append(errs, fmt.Errorf("delayFactor must not be negative, got %g", cv.DelayFactor))
	}
	if cv.SpiralRadius < 0 {
		errs = append(errs, fmt.Errorf("spiralRadius must not be negative, got %g", cv.SpiralRadius))
	}
	if cv.Turbulence.Attenuation <= 0 {
		errs = append(errs, fmt.Errorf("turbulence.attenuation must be positive, got %g", cv.Turbulence.Attenuation))
	}

	return errors.Join(errs...)

}
