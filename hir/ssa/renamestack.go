package ssa

import "github.com/eval1749/elang-sub001/hir"

// renameStack is the per-home value stack used during rename: LIFO,
// seeded with the home's default value so a read with no reaching
// store renames to a well-defined zero value instead of panicking.
type renameStack struct {
	values []hir.Value
}

func (s *renameStack) push(v hir.Value) { s.values = append(s.values, v) }

func (s *renameStack) pop() { s.values = s.values[:len(s.values)-1] }

func (s *renameStack) top() hir.Value { return s.values[len(s.values)-1] }
