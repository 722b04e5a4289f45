package term

import "fmt"

// VariableKind tags the variant of a Variable.
type VariableKind int

const (
	// VarFree is a free variable identified by name (used before a
	// binder or state-variable instance has been assigned).
	VarFree VariableKind = iota
	// VarBound is a de-Bruijn-indexed bound variable under a quantifier
	// or let-binding.
	VarBound
	// VarStateInstance is a state variable sampled at a given integer
	// offset (the instant relative to the current one: 0 = current,
	// -1 = previous instant under a pre, etc).
	VarStateInstance
	// VarConstState is a constant (non-stepping) state variable.
	VarConstState
)

// StateVarRef is the opaque handle a Variable of kind VarStateInstance
// or VarConstState carries. It is a plain pair of strings: the owning
// state variable record lives in package nodegen, which this package
// must not import (nodegen depends on term, not vice-versa). Two refs
// are equal when both Name and Scope are equal.
type StateVarRef struct {
	Name  string
	Scope string // scope segments, joined; see nodegen.StateVariable.Identity
}

// Variable is a hash-consed variable reference.
type Variable struct {
	tag  Tag
	kind VariableKind
	typ  *Type

	name   string // VarFree
	index  int    // VarBound: de Bruijn index
	svar   StateVarRef
	offset int // VarStateInstance: instant offset relative to current
}

func (v *Variable) Tag() Tag             { return v.tag }
func (v *Variable) Kind() VariableKind   { return v.kind }
func (v *Variable) Type() *Type          { return v.typ }
func (v *Variable) Name() string         { return v.name }
func (v *Variable) DeBruijnIndex() int   { return v.index }
func (v *Variable) StateVar() StateVarRef { return v.svar }
func (v *Variable) Offset() int          { return v.offset }

func variableKey(k VariableKind, name string, index int, svar StateVarRef, offset int, typeTag Tag) string {
	return fmt.Sprintf("%d|%s|%d|%s|%s|%d|%d", k, name, index, svar.Name, svar.Scope, offset, typeTag)
}

func (s *Store) internVariable(k VariableKind, name string, index int, svar StateVarRef, offset int, typ *Type) *Variable {
	s.mu.Lock()
	defer s.mu.Unlock()
	var typeTag Tag
	if typ != nil {
		typeTag = typ.tag
	}
	key := variableKey(k, name, index, svar, offset, typeTag)
	if existing, ok := s.variables[key]; ok {
		return existing
	}
	v := &Variable{tag: s.allocTag(), kind: k, typ: typ, name: name, index: index, svar: svar, offset: offset}
	s.variables[key] = v
	s.bumpPeak()
	return v
}

// FreeVar interns a free variable.
func (s *Store) FreeVar(name string, typ *Type) *Variable {
	return s.internVariable(VarFree, name, 0, StateVarRef{}, 0, typ)
}

// BoundVar interns a de-Bruijn-indexed bound variable.
func (s *Store) BoundVar(index int, typ *Type) *Variable {
	return s.internVariable(VarBound, "", index, StateVarRef{}, 0, typ)
}

// StateInstanceVar interns a reference to a state variable sampled at
// the given instant offset (0 = current instant, -1 = one step back).
func (s *Store) StateInstanceVar(svar StateVarRef, offset int, typ *Type) *Variable {
	return s.internVariable(VarStateInstance, "", 0, svar, offset, typ)
}

// ConstStateVar interns a reference to a constant (non-stepping) state
// variable.
func (s *Store) ConstStateVar(svar StateVarRef, typ *Type) *Variable {
	return s.internVariable(VarConstState, "", 0, svar, 0, typ)
}
