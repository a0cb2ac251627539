// Package scene defines the declarative node tree produced by composition.
//
// A scene is a tree of frames, text and image nodes. Geometry is relative
// to the parent node and colours are normalised RGB. Sinks walk the tree to
// produce bytes; a host document API would walk it to create its own
// nodes. Nothing in this package mutates anything outside the tree.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/thumbkit/pkg/color"
)

// Kind is the node type.
type Kind string

const (
	KindFrame Kind = "frame"
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Well-known node names. Sinks and tests locate nodes by name.
const (
	NameCanvas       = "Thumbnail"
	NameBackground   = "Background Image"
	NameGradient     = "Gradient Overlay"
	NameHeading      = "Heading"
	NameDescription  = "Description"
	NameTagGroup     = "Tags"
	NameTag          = "Tag"
	NameContributors = "Contributors"
	NameChip         = "Contributor"
	NameAvatar       = "Avatar"
	NameName         = "Name"
)

// =============================================================================
// Node Types
// =============================================================================

// Gradient is a vertical linear gradient of a single colour whose alpha
// goes from FromAlpha at the top to ToAlpha at the bottom.
type Gradient struct {
	Color     color.RGB `json:"color"`
	FromAlpha float64   `json:"from_alpha"`
	ToAlpha   float64   `json:"to_alpha"`
}

// Text is the content of a text node.
type Text struct {
	Content    string    `json:"content"`
	Lines      []string  `json:"lines"`
	Family     string    `json:"family"`
	Weight     string    `json:"weight"`
	Size       float64   `json:"size"`
	Color      color.RGB `json:"color"`
	LineHeight float64   `json:"line_height"`
	Ascent     float64   `json:"ascent"`
}

// Image is the content of an image node.
type Image struct {
	// URL is a remote URL or data URI. Empty means a placeholder swatch.
	URL      string    `json:"url,omitempty"`
	Circle   bool      `json:"circle,omitempty"`
	Fallback color.RGB `json:"fallback"`
}

// Node is one element of the scene tree.
type Node struct {
	ID           string     `json:"id,omitempty"`
	Kind         Kind       `json:"kind"`
	Name         string     `json:"name"`
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	Width        float64    `json:"width"`
	Height       float64    `json:"height"`
	Fill         *color.RGB `json:"fill,omitempty"`
	Gradient     *Gradient  `json:"gradient,omitempty"`
	CornerRadius float64    `json:"corner_radius,omitempty"`
	Text         *Text      `json:"text,omitempty"`
	Image        *Image     `json:"image,omitempty"`
	Children     []*Node    `json:"children,omitempty"`
}

// NewCanvas returns a root frame with a fresh ID.
func NewCanvas(width, height float64, fill color.RGB) *Node {
	return &Node{
		ID:     uuid.NewString(),
		Kind:   KindFrame,
		Name:   NameCanvas,
		Width:  width,
		Height: height,
		Fill:   &fill,
	}
}

// Frame returns a frame node.
func Frame(name string, x, y, w, h float64) *Node {
	return &Node{Kind: KindFrame, Name: name, X: x, Y: y, Width: w, Height: h}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// =============================================================================
// Traversal
// =============================================================================

// Visit is called for every node with its absolute offset (the absolute
// position of the node is ox+n.X, oy+n.Y). Returning false skips the
// node's children.
type Visit func(n *Node, ox, oy float64) bool

// Walk visits n and its descendants depth-first in paint order.
func Walk(n *Node, fn Visit) {
	walk(n, 0, 0, fn)
}

func walk(n *Node, ox, oy float64, fn Visit) {
	if n == nil || !fn(n, ox, oy) {
		return
	}
	for _, c := range n.Children {
		walk(c, ox+n.X, oy+n.Y, fn)
	}
}

// Find returns all nodes with the given name in paint order.
func Find(root *Node, name string) []*Node {
	var out []*Node
	Walk(root, func(n *Node, _, _ float64) bool {
		if n.Name == name {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Rect is an absolute rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Bounds returns the absolute rectangle of target within root, and false
// if target is not in the tree.
func Bounds(root, target *Node) (Rect, bool) {
	var r Rect
	found := false
	Walk(root, func(n *Node, ox, oy float64) bool {
		if found {
			return false
		}
		if n == target {
			r = Rect{ox + n.X, oy + n.Y, n.Width, n.Height}
			found = true
			return false
		}
		return true
	})
	return r, found
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	n := 0
	Walk(root, func(*Node, float64, float64) bool { n++; return true })
	return n
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes a scene to pretty-printed JSON bytes.
func Marshal(root *Node) ([]byte, error) {
	return json.MarshalIndent(root, "", "  ")
}

// Unmarshal deserializes a scene and checks that the root is a frame.
func Unmarshal(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	if n.Kind != KindFrame {
		return nil, fmt.Errorf("unmarshal scene: root is %q, want frame", n.Kind)
	}
	return &n, nil
}
