package domain

// Input is the value accepted at the render entry point.
// It is sealed: only Node (or *Node) and Nodes implement it.
// A nil Input means the document is absent.
type Input interface {
	isInput()
}

// Nodes is an ordered sequence of top-level document content.
type Nodes []Node

func (Node) isInput()  {}
func (Nodes) isInput() {}

// Shape names the concrete form of an Input, for logs and metrics.
func Shape(in Input) string {
	switch v := in.(type) {
	case Node:
		return "node"
	case *Node:
		if v == nil {
			return "empty"
		}
		return "node"
	case Nodes:
		return "sequence"
	default:
		return "empty"
	}
}
