package render

import "image/color"

// Node is an element of a Scene: *GroupNode, RectNode or TextNode.
type Node interface {
	isNode()
}

// GroupNode is a grouping element holding primitives in append order.
type GroupNode struct {
	Class    string
	Children []Node
}

type RectNode struct{ Rect }

type TextNode struct{ Text }

func (*GroupNode) isNode() {}
func (RectNode) isNode()   {}
func (TextNode) isNode()   {}

func (g *GroupNode) AppendRect(r Rect) { g.Children = append(g.Children, RectNode{r}) }
func (g *GroupNode) AppendText(t Text) { g.Children = append(g.Children, TextNode{t}) }

// Rects returns the rectangles of the group in append order.
func (g *GroupNode) Rects() []Rect {
	var out []Rect
	for _, child := range g.Children {
		if r, ok := child.(RectNode); ok {
			out = append(out, r.Rect)
		}
	}
	return out
}

// Texts returns the text primitives of the group in append order.
func (g *GroupNode) Texts() []Text {
	var out []Text
	for _, child := range g.Children {
		if t, ok := child.(TextNode); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

// Scene is an in-memory scene graph implementing Surface.
// It is not safe for concurrent mutation.
type Scene struct {
	Width, Height float64
	// Background, when non-nil, is painted behind all nodes by the encoders.
	Background color.Color
	Nodes      []Node
}

func NewScene(width, height float64) *Scene {
	return &Scene{Width: width, Height: height}
}

// AppendGroup appends a new top-level group. Existing nodes are left untouched.
func (s *Scene) AppendGroup(class string) Group {
	group := &GroupNode{Class: class}
	s.Nodes = append(s.Nodes, group)
	return group
}

// Groups returns the top-level groups in append order.
func (s *Scene) Groups() []*GroupNode {
	var out []*GroupNode
	for _, n := range s.Nodes {
		if g, ok := n.(*GroupNode); ok {
			out = append(out, g)
		}
	}
	return out
}

// NodeCount returns the number of nodes in the scene, groups included.
func (s *Scene) NodeCount() int {
	return countNodes(s.Nodes)
}

func countNodes(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total++
		if g, ok := n.(*GroupNode); ok {
			total += countNodes(g.Children)
		}
	}
	return total
}
