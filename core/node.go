package core

// Node is a plain identifier-bearing value holder.
type Node struct {
	value float64
	id    Identifier
}

// NewNode creates a Node with value 0 and an id from the process-wide allocator.
func NewNode() *Node {
	return NewNodeFrom(&defaultAllocator)
}

// NewNodeFrom creates a Node whose id comes from a.
func NewNodeFrom(a *Allocator) *Node {
	return &Node{id: a.Next()}
}

// ID returns the node identifier
func (n *Node) ID() Identifier {
	return n.id
}

// Value returns the stored value
func (n *Node) Value() float64 {
	return n.value
}

// Update overwrites the stored value. No range is enforced.
func (n *Node) Update(x float64) {
	n.value = x
}
