// Package ui is the overlay toolkit drawn above the wheel: a small node tree
// with event handlers, and a Layer that fades attached trees in and out.
package ui

import (
	"image"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Kind string

const (
	KindText        Kind = "text"
	KindButton      Kind = "button"
	KindTextInput   Kind = "textInput"
	KindNumberInput Kind = "numberInput"
	KindImage       Kind = "image"
	KindContainer   Kind = "container"
)

// DefaultMaxLength bounds text inputs.
const DefaultMaxLength = 20

type Node struct {
	ID    string
	Kind  Kind
	Class string

	Text        string
	Placeholder string
	Value       string
	MaxLength   int

	Number   float64
	Min, Max float64

	Image image.Image
	// Height is the minimum height of a container in pixels.
	Height int

	Hidden   bool
	Disabled bool

	Children []*Node
	parent   *Node

	OnClick  func()
	OnInput  func(value string)
	OnSubmit func(value string)
	OnChange func(value float64)
}

func newNode(kind Kind, class string) *Node {
	return &Node{ID: uuid.NewString(), Kind: kind, Class: class}
}

func Text(class, text string) *Node {
	n := newNode(KindText, class)
	n.Text = text
	return n
}

func Button(class, label string, onClick func()) *Node {
	n := newNode(KindButton, class)
	n.Text = label
	n.OnClick = onClick
	return n
}

func TextInput(class, placeholder string, onInput func(string)) *Node {
	n := newNode(KindTextInput, class)
	n.Placeholder = placeholder
	n.MaxLength = DefaultMaxLength
	n.OnInput = onInput
	return n
}

func NumberInput(class string, min, max float64, onChange func(float64)) *Node {
	n := newNode(KindNumberInput, class)
	n.Min, n.Max = min, max
	n.Number = min
	n.OnChange = onChange
	return n
}

func Image(class string, img image.Image) *Node {
	n := newNode(KindImage, class)
	n.Image = img
	return n
}

func Container(class string, children ...*Node) *Node {
	n := newNode(KindContainer, class)
	for _, child := range children {
		n.Append(child)
	}
	return n
}

// HasClass reports whether class is one of the space separated classes of n.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Append(child *Node) {
	if child == nil {
		return
	}
	child.Remove()
	child.parent = n
	n.Children = append(n.Children, child)
}

// InsertBefore adds child in front of ref, or at the end when ref is not a child of n.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil {
		return
	}
	child.Remove()
	child.parent = n
	for i, c := range n.Children {
		if c == ref {
			n.Children = append(n.Children[:i], append([]*Node{child}, n.Children[i:]...)...)
			return
		}
	}
	n.Children = append(n.Children, child)
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Walk visits n and its descendants depth first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given id in the tree rooted at n.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Active reports whether n and all of its ancestors are shown and enabled.
func (n *Node) Active() bool {
	for c := n; c != nil; c = c.parent {
		if c.Hidden || c.Disabled {
			return false
		}
	}
	return true
}

// SetValue updates a text input, truncating to its maximum length.
func (n *Node) SetValue(value string) {
	if n.MaxLength > 0 && utf8.RuneCountInString(value) > n.MaxLength {
		value = string([]rune(value)[:n.MaxLength])
	}
	n.Value = value
}

// SetNumber updates a number input, clamping finite numbers into [Min, Max].
func (n *Node) SetNumber(v float64) {
	if !math.IsNaN(v) {
		v = math.Max(n.Min, math.Min(n.Max, v))
	}
	n.Number = v
}

// FormatNumber renders a number input value; NaN shows as empty.
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (n *Node) focusable() bool {
	switch n.Kind {
	case KindButton, KindTextInput, KindNumberInput:
		return true
	case KindContainer:
		return n.OnClick != nil
	}
	return false
}
