package mir

// Builder holds the current insertion point and appends instructions to it.
// Lowering runs one function at a time, so a single Builder is reused for
// every function in the module.
type Builder struct {
	Module *Module
	fn     *Function
	block  *BasicBlock
}

func NewBuilder(m *Module) *Builder {
	return &Builder{Module: m}
}

// SetFunction starts building a new function; it does not set an insertion
// block, which the caller picks with SetInsertPoint once the entry block
// exists.
func (b *Builder) SetFunction(fn *Function) { b.fn = fn }

// Func returns the function currently being built.
func (b *Builder) Func() *Function { return b.fn }

// SetInsertPoint moves the insertion point to bb.
func (b *Builder) SetInsertPoint(bb *BasicBlock) { b.block = bb }

// InsertBlock returns the block instructions are currently appended to.
func (b *Builder) InsertBlock() *BasicBlock { return b.block }

func (b *Builder) emit(instr *Instruction) *Instruction {
	b.block.Append(instr)

	return instr
}

// Alloca allocates a stack slot of type ty, named for readability after the
// source identifier it backs.
func (b *Builder) Alloca(ty IRType, sourceName string) *Instruction {
	name := b.fn.NextValueName()
	i := &Instruction{Op: OpAlloca, Name: name, Typ: PointerTo(ty), AllocaName: sourceName, AllocaType: ty}

	return b.emit(i)
}

// Load reads the value at addr.
func (b *Builder) Load(addr Value) *Instruction {
	elem := *addr.Type().Elem
	name := b.fn.NextValueName()
	i := &Instruction{Op: OpLoad, Name: name, Typ: elem, Addr: addr}

	return b.emit(i)
}

// Store writes val to addr. Store produces no value.
func (b *Builder) Store(val, addr Value) *Instruction {
	i := &Instruction{Op: OpStore, Typ: Primitive(TyVoid), Val: val, Addr: addr}

	return b.emit(i)
}

// BinOp emits an integer arithmetic/logic instruction.
func (b *Builder) BinOp(op BinOpKind, lhs, rhs Value) *Instruction {
	name := b.fn.NextValueName()
	i := &Instruction{Op: OpBinOp, Name: name, Typ: lhs.Type(), Bin: op, LHS: lhs, RHS: rhs}

	return b.emit(i)
}

// Cmp emits a signed integer comparison; the result is always i1.
func (b *Builder) Cmp(pred CmpPred, lhs, rhs Value) *Instruction {
	name := b.fn.NextValueName()
	i := &Instruction{Op: OpCmp, Name: name, Typ: Primitive(TyI1), Pred: pred, LHS: lhs, RHS: rhs}

	return b.emit(i)
}

// UnOp emits a unary instruction.
func (b *Builder) UnOp(op UnOpKind, operand Value) *Instruction {
	name := b.fn.NextValueName()
	i := &Instruction{Op: OpUnOp, Name: name, Typ: operand.Type(), UnKind: op, Operand: operand}

	return b.emit(i)
}

// Call emits a call to callee. If callee's return type is void the
// instruction produces no value.
func (b *Builder) Call(callee *Function, args []Value) *Instruction {
	i := &Instruction{Op: OpCall, Typ: callee.RetType, Callee: callee, Args: args}
	if callee.RetType.Kind != TyVoid {
		i.Name = b.fn.NextValueName()
	}

	return b.emit(i)
}

// GlobalStringPtr materialises a pointer to an interned string literal.
func (b *Builder) GlobalStringPtr(g *GlobalString) *Instruction {
	name := b.fn.NextValueName()
	i := &Instruction{Op: OpGlobalStringPtr, Name: name, Typ: g.Type(), Str: g}

	return b.emit(i)
}

// Ret terminates the block with "return val".
func (b *Builder) Ret(val Value) *Instruction {
	i := &Instruction{Op: OpRet, Typ: Primitive(TyVoid), RetVal: val}

	return b.emit(i)
}

// RetVoid terminates the block with "return void".
func (b *Builder) RetVoid() *Instruction {
	i := &Instruction{Op: OpRetVoid, Typ: Primitive(TyVoid)}

	return b.emit(i)
}

// Br terminates the block with an unconditional jump to target.
func (b *Builder) Br(target *BasicBlock) *Instruction {
	i := &Instruction{Op: OpBr, Typ: Primitive(TyVoid), TargetTrue: target}

	return b.emit(i)
}

// CondBr terminates the block with a conditional branch.
func (b *Builder) CondBr(cond Value, ifTrue, ifFalse *BasicBlock) *Instruction {
	i := &Instruction{Op: OpCondBr, Typ: Primitive(TyVoid), Cond: cond, TargetTrue: ifTrue, TargetFalse: ifFalse}

	return b.emit(i)
}
