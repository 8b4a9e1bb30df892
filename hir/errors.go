package hir

import "fmt"

// DiagnosticCode enumerates the Validator's fixed vocabulary of
// failure modes. The enumeration is part of the interface; printers
// outside this package format codes as "hir.<Name>".
type DiagnosticCode int

const (
	ValidateBasicBlockEmpty DiagnosticCode = iota
	ValidateBasicBlockId
	ValidateBasicBlockOrphan
	ValidateBasicBlockMultipleTerminators
	ValidateBasicBlockNoTerminator
	ValidateBasicBlockEntry
	ValidateBasicBlockExit
	ValidateFunctionNoEntry
	ValidateFunctionNoExit
	ValidateFunctionMultipleExit
	ValidateInstructionId
	ValidateInstructionOperand
	ValidatePhiNotFound
	ValidatePhiOne
)

var diagnosticNames = map[DiagnosticCode]string{
	ValidateBasicBlockEmpty:               "ValidateBasicBlockEmpty",
	ValidateBasicBlockId:                  "ValidateBasicBlockId",
	ValidateBasicBlockOrphan:              "ValidateBasicBlockOrphan",
	ValidateBasicBlockMultipleTerminators: "ValidateBasicBlockMultipleTerminators",
	ValidateBasicBlockNoTerminator:        "ValidateBasicBlockNoTerminator",
	ValidateBasicBlockEntry:               "ValidateBasicBlockEntry",
	ValidateBasicBlockExit:                "ValidateBasicBlockExit",
	ValidateFunctionNoEntry:               "ValidateFunctionNoEntry",
	ValidateFunctionNoExit:                "ValidateFunctionNoExit",
	ValidateFunctionMultipleExit:          "ValidateFunctionMultipleExit",
	ValidateInstructionId:                 "ValidateInstructionId",
	ValidateInstructionOperand:            "ValidateInstructionOperand",
	ValidatePhiNotFound:                   "ValidatePhiNotFound",
	ValidatePhiOne:                        "ValidatePhiOne",
}

func (c DiagnosticCode) String() string {
	if n, ok := diagnosticNames[c]; ok {
		return "hir." + n
	}
	return "hir.<unknown diagnostic>"
}

// Diagnostic is the sole observable failure mode of a validation check:
// checks report diagnostics rather than panicking or returning plain
// errors. Primary names the value the check was about; Detail carries
// whatever else is relevant (an expected type, an operand index
// wrapped as a value, etc.).
type Diagnostic struct {
	Code    DiagnosticCode
	Primary Value
	Detail  []Value
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v %v", d.Code, d.Primary, d.Detail)
}

// intDetail wraps a plain int (e.g. an operand index) as a Value so it
// can travel in Diagnostic.Detail without widening that field's type.
// It is never attached to any instruction and never appears in the
// printed IR.
type intDetail struct {
	ValueBase
	N int
}

func newIntDetail(n int) *intDetail {
	d := &intDetail{N: n}
	return d
}

func (d *intDetail) String() string { return fmt.Sprintf("%d", d.N) }
