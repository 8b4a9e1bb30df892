package hir

import (
	"bytes"
	"fmt"
	"strings"
)

// FormatFunction renders fn as a block-structured text listing: a
// header line naming the function's (return, parameters) type,
// followed by each block's label, its In:/Out: predecessor and
// successor comment, and its instructions in order.
func FormatFunction(fn *Function) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Function %s(%s)\n", fn.ReturnType(), fn.ParametersType())
	fn.Blocks().Each(func(block *BasicBlock) {
		writeBlock(&b, block)
	})
	return b.String()
}

func writeBlock(b *bytes.Buffer, block *BasicBlock) {
	fmt.Fprintf(b, "block%d:\n", block.ID())
	fmt.Fprintf(b, "  // In:%s\n", joinBlockIDs(block.Predecessors()))
	fmt.Fprintf(b, "  // Out:%s\n", joinBlockIDs(block.Successors()))
	block.Instructions().Each(func(instr *Instruction) {
		fmt.Fprintf(b, "  %s\n", formatInstruction(instr))
	})
}

// joinBlockIDs renders a leading-space-prefixed, comma-separated list
// of block ids ("" if empty, " block2" if one, " block2, block3" if
// more); no trailing space when the list is empty.
func joinBlockIDs(blocks []*BasicBlock) string {
	if len(blocks) == 0 {
		return ""
	}
	parts := make([]string, len(blocks))
	for i, blk := range blocks {
		parts[i] = fmt.Sprintf("block%d", blk.ID())
	}
	return " " + strings.Join(parts, ", ")
}

func formatInstruction(instr *Instruction) string {
	var out string
	switch instr.opcode {
	case OpEntry:
		out = "entry"
	case OpExit:
		out = "exit"
	case OpBranch:
		if instr.IsUnconditionalBranch() {
			out = fmt.Sprintf("br %s", formatOperand(instr.Operand(0)))
		} else {
			out = fmt.Sprintf("br %s, %s, %s",
				formatOperand(instr.Operand(0)),
				formatOperand(instr.Operand(1)),
				formatOperand(instr.Operand(2)))
		}
	case OpCall:
		out = fmt.Sprintf("call %s, %s", formatOperand(instr.Operand(0)), formatOperand(instr.Operand(1)))
	case OpLoad:
		out = fmt.Sprintf("load %s", formatOperand(instr.Operand(0)))
	case OpStore:
		out = fmt.Sprintf("store %s, %s", formatOperand(instr.Operand(0)), formatOperand(instr.Operand(1)))
	case OpReturn:
		out = fmt.Sprintf("ret %s, %s", formatOperand(instr.Operand(0)), formatOperand(instr.Operand(1)))
	case OpPhi:
		var parts []string
		instr.Inputs().Each(func(p *PhiInput) {
			parts = append(parts, fmt.Sprintf("block%d: %s", p.Block().ID(), formatOperand(p.Value())))
		})
		out = fmt.Sprintf("phi %s", strings.Join(parts, ", "))
	default:
		out = "<invalid instruction>"
	}
	if !instr.Type().IsVoid() {
		mnemonic, rest, _ := strings.Cut(out, " ")
		s := fmt.Sprintf("%s %s %%%d =", mnemonic, instr.Type(), instr.ID())
		if rest != "" {
			s += " " + rest
		}
		return s
	}
	return out
}

// formatOperand renders a single operand: blocks as "block<id>",
// instruction results as "%<id>", literals via their own String(),
// references as `name`.
func formatOperand(v Value) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case *BasicBlock:
		return fmt.Sprintf("block%d", x.ID())
	case *Instruction:
		return fmt.Sprintf("%%%d", x.ID())
	case *Reference:
		return fmt.Sprintf("`%s`", x.Name)
	case *BoolLit:
		return x.String()
	case *IntLit:
		return x.String()
	case *FloatLit:
		return x.String()
	case *StringLit:
		return x.String()
	case *NullLit:
		return x.String()
	case *VoidLit:
		return x.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
