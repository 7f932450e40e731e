package sgf

// GameTree is one SGF game tree: a run of nodes followed by its variations.
type GameTree struct {
	Nodes    []Node      // main line of this tree
	Children []*GameTree // variations branching after the last node
}

// Node is a single SGF node, e.g. B[pd] C[...] TR[aa][bb].
type Node struct {
	Properties map[string][]string // properties may repeat values, e.g. AB[aa][bb]
}

// SGF is the root of an SGF collection holding a single game.
type SGF struct {
	Root *GameTree
}

func NewNode() *Node {
	return &Node{Properties: make(map[string][]string)}
}

// Add appends values to the property key.
func (n *Node) Add(key string, values ...string) {
	if n.Properties == nil {
		n.Properties = make(map[string][]string)
	}
	n.Properties[key] = append(n.Properties[key], values...)
}

func (n *Node) Get(key string) ([]string, bool) {
	if n == nil || n.Properties == nil {
		return nil, false
	}
	v, ok := n.Properties[key]
	return v, ok
}
