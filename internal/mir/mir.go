package mir

import "strconv"

// Module owns every function and every interned global of one compiled
// translation unit.
type Module struct {
	Name      string
	Functions []*Function
	Globals   []*GlobalVar

	strings     map[string]*GlobalString
	stringOrder []string
}

func NewModule(name string) *Module {
	return &Module{Name: name, strings: make(map[string]*GlobalString)}
}

// InternString returns the GlobalString for lit, creating and appending one
// the first time a given literal is seen. Two occurrences of the identical
// string constant always share one global (spec §8 property 7).
func (m *Module) InternString(lit string) *GlobalString {
	if g, ok := m.strings[lit]; ok {
		return g
	}

	g := &GlobalString{Name: nameForString(len(m.stringOrder)), Value: []byte(lit)}
	m.strings[lit] = g
	m.stringOrder = append(m.stringOrder, lit)

	return g
}

// Strings returns the interned globals in the order they were first seen.
func (m *Module) Strings() []*GlobalString {
	out := make([]*GlobalString, len(m.stringOrder))
	for i, lit := range m.stringOrder {
		out[i] = m.strings[lit]
	}

	return out
}

func nameForString(i int) string {
	return ".str." + strconv.Itoa(i)
}

// FindFunction returns the function named name, if any.
func (m *Module) FindFunction(name string) (*Function, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}

	return nil, false
}

// Function is a declared or defined function. Declare-only functions
// (forward declarations that are never given a body, as in "int f();")
// have Blocks == nil.
type Function struct {
	Name       string
	Line       int // source line of the definition or declaration, for diagnostics
	Params     []*Param
	RetType    IRType
	Variadic   bool
	Blocks     []*BasicBlock
	valCounter int
	blkCounter int
}

func NewFunction(name string, params []*Param, ret IRType, variadic bool) *Function {
	return &Function{Name: name, Params: params, RetType: ret, Variadic: variadic}
}

// NewBlock creates and appends a fresh basic block with a unique name
// derived from label.
func (f *Function) NewBlock(label string) *BasicBlock {
	bb := &BasicBlock{Name: f.uniqueBlockName(label), Func: f}
	f.Blocks = append(f.Blocks, bb)

	return bb
}

func (f *Function) uniqueBlockName(label string) string {
	f.blkCounter++
	if f.blkCounter == 1 {
		return label
	}

	return label + "." + strconv.Itoa(f.blkCounter)
}

// NextValueName returns a fresh, function-unique SSA value name.
func (f *Function) NextValueName() string {
	f.valCounter++

	return strconv.Itoa(f.valCounter)
}

// RemoveBlock deletes bb from the function's block list.
func (f *Function) RemoveBlock(bb *BasicBlock) {
	out := f.Blocks[:0]

	for _, b := range f.Blocks {
		if b != bb {
			out = append(out, b)
		}
	}

	f.Blocks = out
}

// BasicBlock is an ordered sequence of instructions ending with exactly one
// terminator.
type BasicBlock struct {
	Name  string
	Func  *Function
	Instr []*Instruction
}

// Append adds instr to the end of the block and records its parent.
func (b *BasicBlock) Append(instr *Instruction) {
	instr.Block = b
	b.Instr = append(b.Instr, instr)
}

// Terminator returns the block's terminating instruction, or nil if the
// block is empty or (transiently, mid-construction) not yet terminated.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instr) == 0 {
		return nil
	}

	last := b.Instr[len(b.Instr)-1]
	if last.IsTerminator() {
		return last
	}

	return nil
}

// Canonicalize deletes every instruction after the block's first
// terminator, matching the invariant that a well-formed block has exactly
// one terminator and it is the last instruction.
func (b *BasicBlock) Canonicalize() {
	for i, instr := range b.Instr {
		if instr.IsTerminator() {
			b.Instr = b.Instr[:i+1]

			return
		}
	}
}
