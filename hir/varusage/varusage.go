// Package varusage classifies each variable "home" by how widely it is
// used, so hir/ssa knows which homes are worth promoting to SSA form
// and which are already effectively local (pruned SSA: no phi work
// needed for single-block homes).
package varusage

import "github.com/eval1749/elang-sub001/hir"

// Usage classifies where a home is referenced.
type Usage int

const (
	SingleBlock Usage = iota
	MultiBlock
	NonLocal
)

// Data is the per-home usage record.
type Data struct {
	Home  *hir.Instruction
	Block *hir.BasicBlock // the block the home itself lives in
	Usage Usage
}

// IsLocal reports whether the home is confined to a single block and
// therefore needs no phi placement at all: phi insertion bails
// immediately for single-block homes.
func (d *Data) IsLocal() bool { return d.Usage == SingleBlock }

// Result is the per-function analysis output: sets of homes read
// non-locally and written non-locally, plus an ordered list of
// local-to-function homes.
type Result struct {
	ByHome        map[*hir.Instruction]*Data
	Locals        []*Data // ordered list of local-to-function homes
	NonLocalReads map[*hir.Instruction]bool
	NonLocalWrites map[*hir.Instruction]bool
}

// Analyze visits every block of fn, classifying each home instruction
// found among homes. The front-end lowering layer is responsible for
// tagging which instructions are homes; see hir.Editor.NewHomeCall.
func Analyze(fn *hir.Function, homes []*hir.Instruction) *Result {
	r := &Result{
		ByHome:         make(map[*hir.Instruction]*Data, len(homes)),
		NonLocalReads:  make(map[*hir.Instruction]bool),
		NonLocalWrites: make(map[*hir.Instruction]bool),
	}
	for _, h := range homes {
		r.ByHome[h] = &Data{Home: h, Block: h.BasicBlock(), Usage: SingleBlock}
	}

	fn.Blocks().Each(func(b *hir.BasicBlock) {
		b.Instructions().Each(func(instr *hir.Instruction) {
			switch instr.Opcode() {
			case hir.OpStore:
				home, ok := instr.Operand(0).(*hir.Instruction)
				if !ok {
					return
				}
				if d, tracked := r.ByHome[home]; tracked {
					didSet(r, d, b)
				}
			case hir.OpLoad:
				home, ok := instr.Operand(0).(*hir.Instruction)
				if !ok {
					return
				}
				if d, tracked := r.ByHome[home]; tracked {
					didUse(r, d, b)
				}
			}
		})
	})

	for _, h := range homes {
		d := r.ByHome[h]
		// Locals holds every home not escaping to another function.
		// This includes both SingleBlock and MultiBlock homes; both are
		// SSA-promotion candidates, only their phi-placement treatment
		// differs (phi insertion skips SingleBlock homes).
		if d.Usage != NonLocal {
			r.Locals = append(r.Locals, d)
		}
	}
	return r
}

// didSet records a write to d's home: marks non-local-write, clears
// non-local-read (a write in a later block is not itself a non-local
// read).
func didSet(r *Result, d *Data, b *hir.BasicBlock) {
	updateUsage(d, b)
	r.NonLocalWrites[d.Home] = true
	delete(r.NonLocalReads, d.Home)
}

// didUse records a read of d's home, unless it's already known to be
// written non-locally.
func didUse(r *Result, d *Data, b *hir.BasicBlock) {
	updateUsage(d, b)
	if !r.NonLocalWrites[d.Home] {
		r.NonLocalReads[d.Home] = true
	}
}

// updateUsage promotes d's usage tier: a reference from the home's own
// block is free; a reference from a different block of the same
// function promotes SingleBlock to MultiBlock. This package does not
// model closures, so NonLocal is never reached here; callers wanting
// that third tier can upgrade a Data's Usage to NonLocal directly once
// cross-function reference tracking exists.
func updateUsage(d *Data, b *hir.BasicBlock) {
	if d.Block == b {
		return
	}
	if d.Usage == SingleBlock {
		d.Usage = MultiBlock
	}
}
