package mir

import (
	"fmt"
	"strings"
)

// String renders the whole module as LLVM-flavoured textual IR. This is the
// repository's own stand-in for the "external" IR printer spec.md assumes;
// it is deliberately close to the syntax the original lab emitted straight
// out of LLVM's own IR printer.
func (m *Module) String() string {
	var sb strings.Builder

	for _, g := range m.Strings() {
		fmt.Fprintf(&sb, "@%s = constant [%d x i8] %q\n", g.Name, len(g.Value)+1, string(g.Value))
	}

	for _, g := range m.Globals {
		fmt.Fprintf(&sb, "@%s = global %s\n", g.Name, g.Typ)
	}

	if len(m.strings) > 0 || len(m.Globals) > 0 {
		sb.WriteString("\n")
	}

	for i, f := range m.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}

		sb.WriteString(f.String())
	}

	return sb.String()
}

// String renders one function definition or declaration.
func (f *Function) String() string {
	var sb strings.Builder

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s %%%s", p.Typ, p.Name)
	}

	variadic := ""
	if f.Variadic {
		if len(params) > 0 {
			variadic = ", "
		}

		variadic += "..."
	}

	sig := fmt.Sprintf("%s @%s(%s%s)", f.RetType, f.Name, strings.Join(params, ", "), variadic)

	if f.Blocks == nil {
		fmt.Fprintf(&sb, "declare %s\n", sig)

		return sb.String()
	}

	fmt.Fprintf(&sb, "define %s {\n", sig)

	for _, bb := range f.Blocks {
		sb.WriteString(bb.String())
	}

	sb.WriteString("}\n")

	return sb.String()
}

// String renders one basic block.
func (b *BasicBlock) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s:\n", b.Name)

	for _, instr := range b.Instr {
		sb.WriteString("  ")
		sb.WriteString(instr.Def())
		sb.WriteString("\n")
	}

	return sb.String()
}

// Def renders the full instruction line (as opposed to String, which
// renders a typed reference to its result for use as another instruction's
// operand).
func (i *Instruction) Def() string {
	lhs := ""
	if i.Name != "" {
		lhs = fmt.Sprintf("%%%s = ", i.Name)
	}

	switch i.Op {
	case OpAlloca:
		return fmt.Sprintf("%salloca %s ; %s", lhs, i.AllocaType, i.AllocaName)
	case OpLoad:
		return fmt.Sprintf("%sload %s, %s", lhs, i.Typ, i.Addr)
	case OpStore:
		return fmt.Sprintf("store %s, %s", i.Val, i.Addr)
	case OpBinOp:
		return fmt.Sprintf("%s%s %s, %s", lhs, i.Bin, i.LHS, operandNoType(i.RHS))
	case OpCmp:
		return fmt.Sprintf("%sicmp %s %s, %s", lhs, i.Pred, i.LHS, operandNoType(i.RHS))
	case OpUnOp:
		return fmt.Sprintf("%s%s %s", lhs, i.UnKind, i.Operand)
	case OpCall:
		args := make([]string, len(i.Args))
		for j, a := range i.Args {
			args[j] = a.String()
		}

		return fmt.Sprintf("%scall %s @%s(%s)", lhs, i.Typ, i.Callee.Name, strings.Join(args, ", "))
	case OpGlobalStringPtr:
		return fmt.Sprintf("%sglobal-str-ptr @%s", lhs, i.Str.Name)
	case OpRet:
		if i.RetVal == nil {
			return "ret void"
		}

		return fmt.Sprintf("ret %s", i.RetVal)
	case OpRetVoid:
		return "ret void"
	case OpBr:
		return fmt.Sprintf("br label %%%s", i.TargetTrue.Name)
	case OpCondBr:
		return fmt.Sprintf("br %s, label %%%s, label %%%s", i.Cond, i.TargetTrue.Name, i.TargetFalse.Name)
	default:
		return "<unknown instruction>"
	}
}

// operandNoType renders an operand without repeating its type, since the
// left-hand operand of a binary instruction already carries it.
func operandNoType(v Value) string {
	s := v.String()
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		return s[idx+1:]
	}

	return s
}
