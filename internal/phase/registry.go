package phase

import "fmt"

// DefaultPhase is selected when no registered predicate accepts the state.
const DefaultPhase = "default"

// Controller drives one phase of the conversation.
type Controller interface {
	// Connect builds the phase's overlay and wheel changes. animate is false when
	// the phase is resumed at startup and should appear in its final form.
	Connect(animate bool)
}

// Disconnecter is implemented by controllers that hold resources beyond the
// stage timers.
type Disconnecter interface {
	Disconnect()
}

// Definition is one row of the transition table.
type Definition struct {
	Name string
	New  func(stage *Stage) Controller
	// Accepts reports whether a resumed session belongs in this phase. Nil never accepts.
	Accepts func(State) bool
}

// Registry is the ordered transition table. Later registrations take priority
// during selection.
type Registry struct {
	defs  []Definition
	index map[string]int
}

func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, def := range defs {
		r.Register(def)
	}
	return r
}

// Register appends def. Registering a name twice is a programming error.
func (r *Registry) Register(def Definition) {
	if def.Name == "" || def.New == nil {
		panic("phase: definition needs a name and a constructor")
	}
	if _, dup := r.index[def.Name]; dup {
		panic(fmt.Sprintf("phase: %q registered twice", def.Name))
	}
	r.index[def.Name] = len(r.defs)
	r.defs = append(r.defs, def)
}

// Select returns the highest priority phase accepting st, or DefaultPhase.
func (r *Registry) Select(st State) string {
	selected := DefaultPhase
	for _, def := range r.defs {
		if def.Accepts != nil && def.Accepts(st) {
			selected = def.Name
		}
	}
	return selected
}

func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Lookup returns the definition of name and panics when it is not registered.
func (r *Registry) Lookup(name string) Definition {
	i, ok := r.index[name]
	if !ok {
		panic(fmt.Sprintf("phase: %q is not registered", name))
	}
	return r.defs[i]
}

// Names lists the registered phases in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i, def := range r.defs {
		names[i] = def.Name
	}
	return names
}
