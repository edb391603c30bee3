package mir

import "fmt"

// Opcode enumerates every instruction kind the IR supports.
type Opcode int

const (
	OpAlloca Opcode = iota
	OpLoad
	OpStore
	OpBinOp
	OpUnOp
	OpCmp
	OpCall
	OpGlobalStringPtr
	OpRet
	OpRetVoid
	OpBr
	OpCondBr
)

// BinOpKind is the integer binary arithmetic/logic operation set.
type BinOpKind int

const (
	BinAdd BinOpKind = iota
	BinSub
	BinMul
	BinSDiv
	BinSRem
	BinAnd
	BinOr
	BinXor
	BinShl
	BinAShr
)

var binOpMnemonic = map[BinOpKind]string{
	BinAdd: "add", BinSub: "sub", BinMul: "mul", BinSDiv: "sdiv", BinSRem: "srem",
	BinAnd: "and", BinOr: "or", BinXor: "xor", BinShl: "shl", BinAShr: "ashr",
}

func (k BinOpKind) String() string { return binOpMnemonic[k] }

// CmpPred is the signed integer comparison predicate set; a Cmp instruction
// always produces an i1.
type CmpPred int

const (
	CmpEq CmpPred = iota
	CmpNe
	CmpSlt
	CmpSle
	CmpSgt
	CmpSge
)

var cmpMnemonic = map[CmpPred]string{
	CmpEq: "eq", CmpNe: "ne", CmpSlt: "slt", CmpSle: "sle", CmpSgt: "sgt", CmpSge: "sge",
}

func (p CmpPred) String() string { return cmpMnemonic[p] }

// UnOpKind is the unary operation set.
type UnOpKind int

const (
	UnNeg  UnOpKind = iota // arithmetic negate, int -> int
	UnNot                  // bitwise not, int -> int
	UnLNot                 // logical not, bool -> bool
)

var unOpMnemonic = map[UnOpKind]string{
	UnNeg: "neg", UnNot: "not", UnLNot: "lnot",
}

func (k UnOpKind) String() string { return unOpMnemonic[k] }

// Instruction is one IR instruction. Not every field is meaningful for
// every Opcode; see builder.go's emit methods for which fields each
// opcode populates.
type Instruction struct {
	Op    Opcode
	Name  string // SSA result name, e.g. "3" printed as %3; empty if void
	Typ   IRType
	Block *BasicBlock

	// Alloca
	AllocaName string // source identifier, for readability only
	AllocaType IRType

	// Load / Store
	Addr Value
	Val  Value

	// BinOp (Bin) / Cmp (Pred)
	Bin      BinOpKind
	Pred     CmpPred
	LHS, RHS Value

	// UnOp
	UnKind  UnOpKind
	Operand Value

	// Call
	Callee *Function
	Args   []Value

	// GlobalStringPtr
	Str *GlobalString

	// Ret
	RetVal Value // nil for a bare "return expr"-less Ret is never used; OpRetVoid covers that case

	// Br / CondBr
	Cond        Value
	TargetTrue  *BasicBlock
	TargetFalse *BasicBlock // nil for unconditional Br; TargetTrue is then the sole target
}

func (i *Instruction) Type() IRType { return i.Typ }

// String renders the instruction as an operand reference (used when this
// instruction's result is read by another instruction).
func (i *Instruction) String() string {
	if i.Name == "" {
		return "<void>"
	}

	return fmt.Sprintf("%s %%%s", i.Typ, i.Name)
}

// IsTerminator reports whether this instruction ends a basic block.
func (i *Instruction) IsTerminator() bool {
	switch i.Op {
	case OpRet, OpRetVoid, OpBr, OpCondBr:
		return true
	default:
		return false
	}
}
