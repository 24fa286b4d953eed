package search

import "github.com/vanshika/degrees/internal/domain"

const noParent = -1

// node is one entry of the search tree. Parents are referenced by index into
// the owning tree, so the whole tree is released with the traversal.
type node struct {
	state  string
	parent int
	action string
	depth  int
}

type tree struct {
	nodes []node
}

func (t *tree) root(state string) int {
	t.nodes = append(t.nodes, node{state: state, parent: noParent})
	return len(t.nodes) - 1
}

func (t *tree) child(parent int, state, action string) int {
	t.nodes = append(t.nodes, node{
		state:  state,
		parent: parent,
		action: action,
		depth:  t.nodes[parent].depth + 1,
	})
	return len(t.nodes) - 1
}

// path walks parent links from idx back to the root and returns the hops in
// root-to-idx order.
func (t *tree) path(idx int) []domain.Hop {
	hops := make([]domain.Hop, t.nodes[idx].depth)
	for i := idx; t.nodes[i].parent != noParent; i = t.nodes[i].parent {
		n := t.nodes[i]
		hops[n.depth-1] = domain.Hop{MovieID: n.action, PersonID: n.state}
	}
	return hops
}
