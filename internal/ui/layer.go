package ui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FadeMillis is the duration of a full fade in or out.
const FadeMillis = 1300.0

var (
	ErrNoNode   = errors.New("no such overlay node")
	ErrInactive = errors.New("overlay node is inactive")
)

type entry struct {
	node *Node
	// progress runs 0..1 linearly; opacity is its smoothstep.
	progress float64
	leaving  bool
}

func (e *entry) opacity() float64 {
	p := math.Max(0, math.Min(1, e.progress))
	return p * p * (3 - 2*p)
}

func (e *entry) settled() bool {
	if e.leaving {
		return e.progress <= 0
	}
	return e.progress >= 1
}

// View is an attached tree as it should be drawn.
type View struct {
	Node    *Node
	Opacity float64
}

// Layer holds the overlay trees above the wheel. Like the canvas it is driven by
// Tick and used from a single goroutine.
type Layer struct {
	entries []*entry
	focus   string
}

func NewLayer() *Layer { return &Layer{} }

// Attach shows n, fading it in when fade is set.
func (l *Layer) Attach(n *Node, fade bool) {
	e := &entry{node: n, progress: 1}
	if fade {
		e.progress = 0
	}
	l.entries = append(l.entries, e)
}

// FadeOutAll starts fading out every attached tree. Leaving trees no longer take
// events and are detached once invisible.
func (l *Layer) FadeOutAll() {
	for _, e := range l.entries {
		e.leaving = true
	}
	l.focus = ""
}

// Clear detaches everything immediately.
func (l *Layer) Clear() {
	l.entries = nil
	l.focus = ""
}

func (l *Layer) Animating() bool {
	for _, e := range l.entries {
		if !e.settled() {
			return true
		}
	}
	return false
}

// Tick advances the fades and reports whether any is still running.
func (l *Layer) Tick(elapsedMillis float64) bool {
	step := math.Max(0, elapsedMillis) / FadeMillis
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.leaving {
			e.progress -= step
			if e.progress <= 0 {
				continue
			}
		} else {
			e.progress = math.Min(1, e.progress+step)
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = nil
	}
	l.entries = kept
	return l.Animating()
}

func (l *Layer) Len() int { return len(l.entries) }

// Views returns the attached trees in paint order.
func (l *Layer) Views() []View {
	views := make([]View, 0, len(l.entries))
	for _, e := range l.entries {
		views = append(views, View{Node: e.node, Opacity: e.opacity()})
	}
	return views
}

// Find locates a node in a tree that is not fading out.
func (l *Layer) Find(id string) (*Node, error) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.leaving {
			continue
		}
		if n := e.node.Find(id); n != nil {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoNode, id)
}

// FindAny locates a node in any attached tree, leaving ones included.
func (l *Layer) FindAny(id string) (*Node, error) {
	for _, e := range l.entries {
		if n := e.node.Find(id); n != nil {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoNode, id)
}

func (l *Layer) target(id string, kinds ...Kind) (*Node, error) {
	n, err := l.Find(id)
	if err != nil {
		return nil, err
	}
	if !n.Active() {
		return nil, fmt.Errorf("%w: %s", ErrInactive, id)
	}
	for _, k := range kinds {
		if n.Kind == k {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%s node %s does not take this event", n.Kind, id)
}

// Click runs the click handler of the node, or of its nearest ancestor that
// has one.
func (l *Layer) Click(id string) error {
	n, err := l.target(id, KindButton, KindContainer, KindText, KindImage)
	if err != nil {
		return err
	}
	for ; n != nil; n = n.parent {
		if n.OnClick != nil {
			n.OnClick()
			break
		}
	}
	return nil
}

// Input replaces the text of a text input.
func (l *Layer) Input(id, value string) error {
	n, err := l.target(id, KindTextInput)
	if err != nil {
		return err
	}
	n.SetValue(value)
	if n.OnInput != nil {
		n.OnInput(n.Value)
	}
	return nil
}

// Submit is the enter key on a text input.
func (l *Layer) Submit(id string) error {
	n, err := l.target(id, KindTextInput)
	if err != nil {
		return err
	}
	if n.OnSubmit != nil {
		n.OnSubmit(n.Value)
	}
	return nil
}

// Change sets a number input. Text that is not a number becomes NaN.
func (l *Layer) Change(id, value string) error {
	n, err := l.target(id, KindNumberInput)
	if err != nil {
		return err
	}
	v, perr := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if perr != nil {
		v = math.NaN()
	}
	n.SetNumber(v)
	if n.OnChange != nil {
		n.OnChange(n.Number)
	}
	return nil
}

func (l *Layer) focusables() []*Node {
	var nodes []*Node
	for _, e := range l.entries {
		if e.leaving {
			continue
		}
		nodes = appendFocusable(nodes, e.node)
	}
	return nodes
}

// appendFocusable collects focusable nodes in tree order, skipping hidden
// subtrees but not their siblings.
func appendFocusable(nodes []*Node, n *Node) []*Node {
	if n.Hidden {
		return nodes
	}
	if n.focusable() && n.Active() {
		nodes = append(nodes, n)
	}
	for _, c := range n.Children {
		nodes = appendFocusable(nodes, c)
	}
	return nodes
}

// Focused returns the node the physical buttons act on, if any.
func (l *Layer) Focused() *Node {
	nodes := l.focusables()
	for _, n := range nodes {
		if n.ID == l.focus {
			return n
		}
	}
	if len(nodes) == 0 {
		return nil
	}
	l.focus = nodes[0].ID
	return nodes[0]
}

// Focus moves the focus to the node with id.
func (l *Layer) Focus(id string) {
	l.focus = id
}

// MoveFocus steps the focus delta places through the focusable nodes, wrapping.
func (l *Layer) MoveFocus(delta int) *Node {
	nodes := l.focusables()
	if len(nodes) == 0 {
		l.focus = ""
		return nil
	}
	idx := -1
	for i, n := range nodes {
		if n.ID == l.focus {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+delta)%len(nodes) + len(nodes)) % len(nodes)
	}
	l.focus = nodes[idx].ID
	return nodes[idx]
}

// Activate clicks the focused button or submits the focused text input.
func (l *Layer) Activate() error {
	n := l.Focused()
	if n == nil {
		return ErrNoNode
	}
	if n.Kind == KindTextInput {
		return l.Submit(n.ID)
	}
	return l.Click(n.ID)
}

// Adjust steps the focused number input by delta.
func (l *Layer) Adjust(delta float64) error {
	n := l.Focused()
	if n == nil || n.Kind != KindNumberInput {
		return ErrNoNode
	}
	next := n.Number + delta
	if math.IsNaN(next) {
		next = n.Min
	}
	return l.Change(n.ID, strconv.FormatFloat(next, 'f', -1, 64))
}
