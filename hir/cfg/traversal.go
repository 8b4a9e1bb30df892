package cfg

// Traversal orders are computed by a DFS from Entry; unreachable nodes
// are never emitted. RPO is the canonical deterministic order used by
// the dataflow passes in hir/domtree and hir/ssa.

// PostOrder returns g's nodes in DFS post-order (each node recorded
// after all its successors have been fully visited).
func PostOrder[N Node](g Graph[N]) []N {
	var order []N
	visited := make(map[N]bool)
	var visit func(N)
	visit = func(n N) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, s := range g.Successors(n) {
			visit(s)
		}
		order = append(order, n)
	}
	visit(g.Entry())
	return order
}

// ReversePostOrder returns g's nodes in reverse post-order: the
// canonical iteration order for forward dataflow problems.
func ReversePostOrder[N Node](g Graph[N]) []N {
	po := PostOrder(g)
	rpo := make([]N, len(po))
	for i, n := range po {
		rpo[len(po)-1-i] = n
	}
	return rpo
}

// PreOrder returns g's nodes in DFS pre-order (each node recorded on
// first visit, before its successors).
func PreOrder[N Node](g Graph[N]) []N {
	var order []N
	visited := make(map[N]bool)
	var visit func(N)
	visit = func(n N) {
		if visited[n] {
			return
		}
		visited[n] = true
		order = append(order, n)
		for _, s := range g.Successors(n) {
			visit(s)
		}
	}
	visit(g.Entry())
	return order
}

// ReversePreOrder returns g's nodes in reverse pre-order.
func ReversePreOrder[N Node](g Graph[N]) []N {
	pre := PreOrder(g)
	rev := make([]N, len(pre))
	for i, n := range pre {
		rev[len(pre)-1-i] = n
	}
	return rev
}
