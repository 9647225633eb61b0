package astargrid

const noParent = -1

// searchNode is the per-cell bookkeeping of one search. Nodes live in an
// arena owned by searchState and refer to their predecessor by arena index.
type searchNode struct {
	point  Point
	g      int
	h      int
	parent int
	// seq is the order in which the node entered the open set.
	seq int
	// index is the node's position in the open-set heap, or -1 once closed.
	index int
}

func (n *searchNode) f() int {
	return n.g + n.h
}

// nodeArena owns every node discovered during a single search.
type nodeArena struct {
	nodes   []searchNode
	byPoint map[Point]int
}

func newNodeArena() *nodeArena {
	return &nodeArena{byPoint: make(map[Point]int)}
}

// add stores a node and returns its arena index.
func (a *nodeArena) add(node searchNode) int {
	id := len(a.nodes)
	a.nodes = append(a.nodes, node)
	a.byPoint[node.point] = id
	return id
}

func (a *nodeArena) lookup(p Point) (int, bool) {
	id, ok := a.byPoint[p]
	return id, ok
}

func (a *nodeArena) get(id int) *searchNode {
	return &a.nodes[id]
}

func (a *nodeArena) parentOf(id int) int {
	return a.nodes[id].parent
}
