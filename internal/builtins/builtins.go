// Package builtins registers the handful of uninterpreted/native
// operators the term layer needs pre-declared before any node is
// compiled. Grounded on
// internal/ethereum/function_managers/{exponent,keccak}_function_manager.go
// and init.go: the teacher exposes one process-global manager per
// native EVM function (exponentiation, keccak) behind a package-level
// Init(), constructed once alongside the solver context. Here the same
// shape holds a registry of uninterpreted term.Functions, constructed
// once alongside the term store.
package builtins

import (
	"lustrecore/internal/term"
)

// Registry holds the uninterpreted operators declared over a single
// term.Store. A program's abstract (non-native-int) subrange and
// enum-backed types route integer division and modulo through these
// rather than through term's native SymIntDiv/SymMod, which are
// type-checked to operands of kind TyInt/TyReal/TyIntRange only.
type Registry struct {
	store *term.Store

	// IntDiv and Mod are declared lazily per abstract operand type,
	// since term.NewFunction's domain must name a concrete *term.Type.
	intDiv map[term.Tag]*term.Function
	mod    map[term.Tag]*term.Function
}

// B is the process-wide registry, mirroring the teacher's package-level
// Efm/Kfm managers. It is nil until Init is called.
var B *Registry

// Init constructs the registry over s. Called once at process start
// alongside the term store's construction (cmd/compile.go).
func Init(s *term.Store) {
	B = &Registry{
		store:  s,
		intDiv: make(map[term.Tag]*term.Function),
		mod:    make(map[term.Tag]*term.Function),
	}
}

func (r *Registry) intDivFunc(abstractTy *term.Type) *term.Function {
	if f, ok := r.intDiv[abstractTy.Tag()]; ok {
		return f
	}
	f := term.NewFunction(r.store, "abstract-div-"+abstractTy.Name(), []*term.Type{abstractTy, abstractTy}, abstractTy)
	r.intDiv[abstractTy.Tag()] = f
	return f
}

func (r *Registry) modFunc(abstractTy *term.Type) *term.Function {
	if f, ok := r.mod[abstractTy.Tag()]; ok {
		return f
	}
	f := term.NewFunction(r.store, "abstract-mod-"+abstractTy.Name(), []*term.Type{abstractTy, abstractTy}, abstractTy)
	r.mod[abstractTy.Tag()] = f
	return f
}

// AbstractIntDiv applies integer division over an abstract-typed
// encoding (a and b must share an abstract type), via an uninterpreted
// function declared once per such type.
func (r *Registry) AbstractIntDiv(a, b *term.Node) (*term.Node, error) {
	ty := a.Type()
	f := r.intDivFunc(ty)
	return f.Call(r.store, a, b)
}

// AbstractMod applies modulo over an abstract-typed encoding, via an
// uninterpreted function declared once per such type.
func (r *Registry) AbstractMod(a, b *term.Node) (*term.Node, error) {
	ty := a.Type()
	f := r.modFunc(ty)
	return f.Call(r.store, a, b)
}

// ArrayLiteral builds a concrete array term holding elems[i] at index
// i, by folding MkStore over a freshly named uninterpreted base array
// (term.MkArrayConst). name seeds the base array's printed name only;
// it carries no identity.
func ArrayLiteral(s *term.Store, name string, arrTy *term.Type, indexOf func(i int) *term.Node, elems []*term.Node) (*term.Node, error) {
	arr := s.MkArrayConst(name, arrTy)
	for i, elem := range elems {
		var err error
		arr, err = s.MkStore(arr, indexOf(i), elem)
		if err != nil {
			return nil, err
		}
	}
	return arr, nil
}
