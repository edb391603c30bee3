package mir

import "fmt"

// Value is anything that can appear as an instruction operand: a constant,
// a global, a function parameter, or the result of another instruction.
type Value interface {
	Type() IRType
	String() string
}

// ConstInt is a 32-bit (or narrower, for i1/i8) signed integer constant.
type ConstInt struct {
	Val int64
	Typ IRType
}

func (c *ConstInt) Type() IRType { return c.Typ }
func (c *ConstInt) String() string {
	return fmt.Sprintf("%s %d", c.Typ, c.Val)
}

// ConstFloat is a 32-bit IEEE float constant.
type ConstFloat struct {
	Val float32
}

func (c *ConstFloat) Type() IRType { return Primitive(TyF32) }
func (c *ConstFloat) String() string {
	return fmt.Sprintf("f32 %g", c.Val)
}

// Param is a formal parameter of a function: the incoming argument value.
// Codegen's prologue stores it into an alloca, and the function body reads
// the parameter by loading that alloca.
type Param struct {
	Name string
	Typ  IRType
	Idx  int
}

func (p *Param) Type() IRType   { return p.Typ }
func (p *Param) String() string { return fmt.Sprintf("%s %%%s", p.Typ, p.Name) }

// GlobalString is one interned string literal, materialised as a module
// global. Two occurrences of the identical literal share one GlobalString.
type GlobalString struct {
	Name  string // e.g. ".str.0"
	Value []byte
}

func (g *GlobalString) Type() IRType { return PointerTo(Primitive(TyI8)) }
func (g *GlobalString) String() string {
	return fmt.Sprintf("%s* @%s", Primitive(TyI8), g.Name)
}

// GlobalVar is a module-scope variable.
type GlobalVar struct {
	Name string
	Typ  IRType
}

func (g *GlobalVar) Type() IRType   { return PointerTo(g.Typ) }
func (g *GlobalVar) String() string { return fmt.Sprintf("%s* @%s", g.Typ, g.Name) }
