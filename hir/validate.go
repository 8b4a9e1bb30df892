package hir

// ValidateBlock runs the cheap structural checks editor.go needs on
// every Edit/Commit: non-zero id, attached to a function, non-empty,
// and exactly one terminator at the tail. It reports only a boolean;
// ValidateBlockDiagnostics below is the rich, never-panicking
// counterpart for external callers.
func ValidateBlock(b *BasicBlock) bool {
	return len(ValidateBlockDiagnostics(b)) == 0
}

// ValidateBlockDiagnostics runs the full set of per-block structural
// checks and returns every violation found. Never panics: errors are
// the only observable failure mode of validation.
func ValidateBlockDiagnostics(b *BasicBlock) []Diagnostic {
	var diags []Diagnostic
	if b.id <= 0 {
		diags = append(diags, Diagnostic{Code: ValidateBasicBlockId, Primary: b})
	}
	if b.fn == nil {
		diags = append(diags, Diagnostic{Code: ValidateBasicBlockOrphan, Primary: b})
	}
	if b.instrs.Empty() {
		diags = append(diags, Diagnostic{Code: ValidateBasicBlockEmpty, Primary: b})
		return diags
	}
	foundTerminator := false
	b.instrs.Each(func(instr *Instruction) {
		if instr.id == 0 {
			diags = append(diags, Diagnostic{Code: ValidateInstructionId, Primary: instr})
		}
		if instr.IsTerminator() {
			if foundTerminator {
				diags = append(diags, Diagnostic{Code: ValidateBasicBlockMultipleTerminators, Primary: b, Detail: []Value{instr}})
			}
			foundTerminator = true
		}
	})
	if !foundTerminator {
		diags = append(diags, Diagnostic{Code: ValidateBasicBlockNoTerminator, Primary: b})
	}
	if first := b.FirstInstruction(); first != nil {
		if first.opcode == OpEntry && !b.IsEntry() {
			diags = append(diags, Diagnostic{Code: ValidateBasicBlockEntry, Primary: b})
		}
		if first.opcode == OpExit && !b.IsExit() {
			diags = append(diags, Diagnostic{Code: ValidateBasicBlockExit, Primary: b})
		}
	}
	diags = append(diags, validateInstructionOperands(b)...)
	return diags
}

// ValidateFunction runs the whole-function checks together with every
// block's checks, and returns the complete diagnostic list.
func ValidateFunction(fn *Function) []Diagnostic {
	var diags []Diagnostic
	if fn.blocks.Empty() {
		return append(diags, Diagnostic{Code: ValidateFunctionNoEntry, Primary: fn})
	}
	entry := fn.EntryBlock()
	if first := entry.FirstInstruction(); first == nil || first.opcode != OpEntry {
		diags = append(diags, Diagnostic{Code: ValidateFunctionNoEntry, Primary: fn})
	} else if first.Type() != fn.ParametersType() {
		diags = append(diags, Diagnostic{
			Code:    ValidateInstructionOperand,
			Primary: first,
			Detail:  []Value{newIntDetail(-1)},
		})
	}

	exitCount := 0
	fn.blocks.Each(func(b *BasicBlock) {
		diags = append(diags, ValidateBlockDiagnostics(b)...)
		if last := b.LastInstruction(); last != nil && last.opcode == OpExit {
			exitCount++
		}
	})
	if exitCount == 0 {
		diags = append(diags, Diagnostic{Code: ValidateFunctionNoExit, Primary: fn})
	} else if exitCount > 1 {
		diags = append(diags, Diagnostic{Code: ValidateFunctionMultipleExit, Primary: fn})
	}
	return diags
}

// validateInstructionOperands runs the per-instruction shape/typing
// contracts: operand kinds, counts, and types match each opcode's
// signature.
func validateInstructionOperands(b *BasicBlock) []Diagnostic {
	var diags []Diagnostic
	b.instrs.Each(func(instr *Instruction) {
		switch instr.opcode {
		case OpBranch:
			if instr.IsConditionalBranch() {
				cond := instr.Operand(0)
				if cond == nil || !isBoolType(cond.Type()) {
					diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(0)}})
				}
				if _, ok := instr.Operand(1).(*BasicBlock); !ok {
					diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(1)}})
				}
				if _, ok := instr.Operand(2).(*BasicBlock); !ok {
					diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(2)}})
				}
			} else {
				if _, ok := instr.Operand(0).(*BasicBlock); !ok {
					diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(0)}})
				}
			}
		case OpCall:
			callee := instr.Operand(0)
			if callee == nil || callee.Type().Kind() != KindFunction {
				diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(0)}})
				break
			}
			ft := callee.Type()
			if instr.Type() != ft.ReturnType() {
				diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(-1)}})
			}
			if args := instr.Operand(1); args == nil || args.Type() != ft.ParametersType() {
				diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(1)}})
			}
		case OpLoad:
			ptr := instr.Operand(0)
			if ptr == nil || ptr.Type().Kind() != KindPointer {
				diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(0)}})
				break
			}
			if instr.Type() != ptr.Type().Pointee() {
				diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(-1)}})
			}
		case OpStore:
			ptr := instr.Operand(0)
			if ptr == nil || ptr.Type().Kind() != KindPointer {
				diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(0)}})
				break
			}
			if val := instr.Operand(1); val == nil || val.Type() != ptr.Type().Pointee() {
				diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(1)}})
			}
		case OpReturn:
			fn := instr.Function()
			if fn != nil {
				if val := instr.Operand(0); val == nil || val.Type() != fn.ReturnType() {
					diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{newIntDetail(0)}})
				}
				if eb, ok := instr.Operand(1).(*BasicBlock); !ok || eb != fn.ExitBlock() {
					diags = append(diags, Diagnostic{
						Code: ValidateInstructionOperand, Primary: instr,
						Detail: []Value{newIntDetail(1)},
					})
				}
			}
		case OpPhi:
			preds := b.Predecessors()
			count := instr.phiInputs.Len()
			if count != len(preds) {
				diags = append(diags, Diagnostic{Code: ValidatePhiNotFound, Primary: instr})
			}
			if count == 1 {
				diags = append(diags, Diagnostic{Code: ValidatePhiOne, Primary: instr})
			}
			instr.phiInputs.Each(func(p *PhiInput) {
				if v := p.Value(); v != nil && v.Type() != instr.Type() {
					diags = append(diags, Diagnostic{Code: ValidateInstructionOperand, Primary: instr, Detail: []Value{p.Value()}})
				}
			})
		}
	})
	return diags
}

func isBoolType(t *Type) bool { return t.Kind() == KindBool }
