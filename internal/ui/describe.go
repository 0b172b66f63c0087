package ui

import "math"

// Description is the JSON form of a node for the browser UI.
type Description struct {
	ID          string        `json:"id"`
	Kind        Kind          `json:"kind"`
	Class       string        `json:"class,omitempty"`
	Text        string        `json:"text,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Value       string        `json:"value,omitempty"`
	MaxLength   int           `json:"maxLength,omitempty"`
	Number      *float64      `json:"number,omitempty"`
	Min         float64       `json:"min,omitempty"`
	Max         float64       `json:"max,omitempty"`
	HasImage    bool          `json:"hasImage,omitempty"`
	Hidden      bool          `json:"hidden,omitempty"`
	Disabled    bool          `json:"disabled,omitempty"`
	Clickable   bool          `json:"clickable,omitempty"`
	Focused     bool          `json:"focused,omitempty"`
	Children    []Description `json:"children,omitempty"`
}

// LayerDescription is one attached tree with its current opacity.
type LayerDescription struct {
	Opacity float64     `json:"opacity"`
	Leaving bool        `json:"leaving,omitempty"`
	Root    Description `json:"root"`
}

func describe(n *Node, focus string) Description {
	d := Description{
		ID:          n.ID,
		Kind:        n.Kind,
		Class:       n.Class,
		Text:        n.Text,
		Placeholder: n.Placeholder,
		Value:       n.Value,
		MaxLength:   n.MaxLength,
		HasImage:    n.Image != nil,
		Hidden:      n.Hidden,
		Disabled:    n.Disabled,
		Clickable:   n.OnClick != nil,
		Focused:     focus != "" && n.ID == focus,
	}
	if n.Kind == KindNumberInput {
		d.Min, d.Max = n.Min, n.Max
		if !math.IsNaN(n.Number) {
			number := n.Number
			d.Number = &number
		}
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, describe(c, focus))
	}
	return d
}

// Describe returns the JSON form of n.
func Describe(n *Node) Description { return describe(n, "") }

// Describe returns every attached tree in paint order.
func (l *Layer) Describe() []LayerDescription {
	out := make([]LayerDescription, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, LayerDescription{
			Opacity: e.opacity(),
			Leaving: e.leaving,
			Root:    describe(e.node, l.focus),
		})
	}
	return out
}
