// Package domtree builds immediate-dominator trees and dominance
// frontiers using the Cooper/Harvey/Kennedy iterative algorithm.
package domtree

import "github.com/eval1749/elang-sub001/hir/cfg"

// Node is a mirror of cfg.Node's pointer-equality-comparable element
// type.
type Node = cfg.Node

// treeNode holds one CFG node's position in the tree: its parent,
// depth, children, and dominance frontier.
type treeNode[N Node] struct {
	value     N
	parent    *treeNode[N]
	depth     int
	children  []N
	frontiers []N
}

// Tree is the built dominator tree: a map from every value reachable
// from entry to its tree node.
type Tree[N Node] struct {
	nodes map[N]*treeNode[N]
	entry N
}

// IDom returns v's immediate dominator, and false if v is the entry
// (whose parent is always null) or unreachable.
func (t *Tree[N]) IDom(v N) (N, bool) {
	n, ok := t.nodes[v]
	if !ok || n.parent == nil {
		var zero N
		return zero, false
	}
	return n.parent.value, true
}

// Depth returns v's depth in the tree (1 for entry), and false if v is
// unreachable.
func (t *Tree[N]) Depth(v N) (int, bool) {
	n, ok := t.nodes[v]
	if !ok {
		return 0, false
	}
	return n.depth, true
}

// Children returns v's immediate children in the dominator tree, in
// RPO-derived insertion order.
func (t *Tree[N]) Children(v N) []N {
	n, ok := t.nodes[v]
	if !ok {
		return nil
	}
	return n.children
}

// Frontiers returns v's dominance frontier DF(v) in insertion order.
func (t *Tree[N]) Frontiers(v N) []N {
	n, ok := t.nodes[v]
	if !ok {
		return nil
	}
	return n.frontiers
}

// Dominates reports whether a dominates b (reflexively: a dominates
// a), by walking b's parent chain.
func (t *Tree[N]) Dominates(a, b N) bool {
	n, ok := t.nodes[b]
	if !ok {
		return false
	}
	for {
		if n.value == a {
			return true
		}
		if n.parent == nil {
			return n.value == a
		}
		n = n.parent
	}
}

// StrictlyDominates reports whether a strictly dominates b (a != b and
// a dominates b).
func (t *Tree[N]) StrictlyDominates(a, b N) bool {
	return a != b && t.Dominates(a, b)
}

// Build computes the dominator tree of g.
func Build[N Node](g cfg.Graph[N]) *Tree[N] {
	rpo := cfg.ReversePostOrder(g)
	rpoPos := make(map[N]int, len(rpo))
	for i, n := range rpo {
		rpoPos[n] = i
	}

	nodes := make(map[N]*treeNode[N], len(rpo))
	for _, n := range rpo {
		nodes[n] = &treeNode[N]{value: n}
	}

	entry := g.Entry()
	entryNode := nodes[entry]
	entryNode.parent = entryNode // sentinel so computeParent never mistakes entry for unvisited
	entryNode.depth = 1

	// Step 3: fixed-point loop.
	for {
		changed := false
		for _, n := range rpo {
			if n == entry {
				continue
			}
			if computeParent(g, nodes, rpoPos, n) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Step 4: clear the sentinel.
	entryNode.parent = nil

	// Step 5: compute children.
	for _, n := range rpo {
		tn := nodes[n]
		if tn.parent != nil {
			tn.parent.children = append(tn.parent.children, n)
		}
	}

	computeFrontiers(g, nodes, rpo)

	return &Tree[N]{nodes: nodes, entry: entry}
}

func computeParent[N Node](g cfg.Graph[N], nodes map[N]*treeNode[N], rpoPos map[N]int, n N) bool {
	tn := nodes[n]
	var candidate *treeNode[N]
	for _, p := range g.Predecessors(n) {
		pn, ok := nodes[p]
		if !ok || pn.parent == nil {
			continue
		}
		if candidate == nil {
			candidate = pn
			continue
		}
		candidate = intersect(candidate, pn, rpoPos)
	}
	if candidate == nil {
		return false
	}
	if tn.parent == candidate {
		return false
	}
	tn.parent = candidate
	tn.depth = candidate.depth + 1
	return true
}

// intersect walks up whichever finger has the larger RPO position
// until they meet.
func intersect[N Node](a, b *treeNode[N], rpoPos map[N]int) *treeNode[N] {
	for a != b {
		for rpoPos[a.value] > rpoPos[b.value] {
			a = a.parent
		}
		for rpoPos[b.value] > rpoPos[a.value] {
			b = b.parent
		}
	}
	return a
}

// computeFrontiers computes each node's dominance frontier: for each
// join point J (>= 2 predecessors), for each predecessor P, walk up
// the dominator chain from P, adding J to every ancestor distinct from
// J's immediate dominator, stopping there.
func computeFrontiers[N Node](g cfg.Graph[N], nodes map[N]*treeNode[N], rpo []N) {
	for _, j := range rpo {
		preds := g.Predecessors(j)
		if len(preds) < 2 {
			continue
		}
		jn := nodes[j]
		for _, p := range preds {
			pn, ok := nodes[p]
			if !ok {
				continue
			}
			for runner := pn; runner != jn.parent && runner != nil; runner = runner.parent {
				if !containsNode(runner.frontiers, j) {
					runner.frontiers = append(runner.frontiers, j)
				}
			}
		}
	}
}

func containsNode[N Node](xs []N, n N) bool {
	for _, x := range xs {
		if x == n {
			return true
		}
	}
	return false
}
