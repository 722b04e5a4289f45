package nodegen

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"lustrecore/internal/ast"
	"lustrecore/internal/diagnostic"
	"lustrecore/internal/normalize"
	"lustrecore/internal/term"
	"lustrecore/internal/trie"
)

// Generator drives the per-node compilation of steps 1 to 8 of spec.md
// §4.5 (see CompileNode), grounded on internal/gscanner/analyzer.go's Analyzer: there, a
// top-level driver walking a contract's instructions, invoking
// registered detection modules, and accumulating issues; here, the
// same walk-and-accumulate shape generalized to walking declarations,
// consulting the normalizer's generated-identifier table, and
// accumulating node records onto a CompilerState.
type Generator struct {
	Store  *term.Store
	Vars   *Table
	State  *CompilerState
	Typing TypingContext
	Norm   *normalize.Manager

	// declsByName retains the raw declaration of every node compiled so
	// far in this run, keyed by name. CompilerState's Nodes hold the
	// compiled NodeRecord, which has already discarded the information
	// (ordered input/output declarations, type parameters, the contract
	// AST) that step 4's contract-import instantiation and step 6's
	// call compilation need from a previously compiled callee.
	declsByName map[string]*ast.NodeDecl
}

// NewGenerator wires a fresh generator sharing one term store, one
// state-variable table, and one compiler state across an entire
// program compilation. The standard rule set is assembled by hand,
// rather than via normalize.NewStandardManager, so that
// CallsAsExpressionsRule's ArityOf can close over this generator's own
// compiler state: a call's arity is the callee's real output count,
// not the rule's unary default.
func NewGenerator(s *term.Store) *Generator {
	g := &Generator{
		Store:       s,
		Vars:        NewTable(),
		State:       NewCompilerState(),
		Typing:      &DefaultTypingContext{Store: s},
		declsByName: make(map[string]*ast.NodeDecl),
	}
	norm := normalize.NewManager()
	norm.AddRule(&normalize.PreGuardRule{})
	norm.AddRule(&normalize.CallArgumentRule{})
	norm.AddRule(&normalize.CallsAsExpressionsRule{ArityOf: func(callee string) int {
		if rec, ok := g.State.LookupNode(callee); ok {
			if n := rec.Outputs.Len(); n > 0 {
				return n
			}
		}
		return 1
	}})
	norm.AddRule(&normalize.UniquenessRule{})
	g.Norm = norm
	return g
}

// CompileProgram normalizes and compiles every node declaration in
// program order, pushing one node record per declaration onto the
// generator's CompilerState.
func (g *Generator) CompileProgram(program *ast.Program) error {
	for _, node := range program.Nodes {
		log.Infof("compiling node %s", node.Name)
		if err := g.CompileNode(node); err != nil {
			return errors.Wrapf(err, "compiling node %s", node.Name)
		}
	}
	return nil
}

// CompileNode runs one declaration through steps 1 to 8 of spec.md
// §4.5 and appends the resulting record to the compiler state.
// Subrange and refinement constraints are not turned into contract
// items or properties, and no definitions are emitted for frame or if
// blocks.
func (g *Generator) CompileNode(node ast.NodeDecl) error {
	rec := NewNodeRecord(node.Name)
	rec.Extern = node.Extern
	rec.Opacity = node.Opacity
	rec.IsMain = node.IsMain
	rec.IsFunction = node.IsFunction

	g.declsByName[node.Name] = &node

	cc := NewCompileContext(g.Store, g.Vars, g.Typing, g.State.TypeAliases, node.Name)

	// Normalize this node's equation/assert/property operands (spec.md
	// §4.4) before any state variable is created, so calls-as-
	// expressions and pre-guarding have already run by the time step 2
	// starts allocating scalar leaves.
	nctx := normalize.NewContext(node.Name)
	for i, eq := range node.Equations {
		normalized, err := g.Norm.Normalize(nctx, eq.RHS)
		if err != nil {
			return errors.Wrapf(err, "normalizing equation at %s", eq.Pos)
		}
		node.Equations[i].RHS = normalized
	}
	for i, a := range node.Asserts {
		normalized, err := g.Norm.Normalize(nctx, a.Expr)
		if err != nil {
			return errors.Wrapf(err, "normalizing assert at %s", a.Pos)
		}
		node.Asserts[i].Expr = normalized
	}
	for i, p := range node.Properties {
		normalized, err := g.Norm.Normalize(nctx, p.Expr)
		if err != nil {
			return errors.Wrapf(err, "normalizing property %s", p.Name)
		}
		node.Properties[i].Expr = normalized
	}
	if node.Contract != nil {
		for i, it := range node.Contract.Assumes {
			normalized, err := g.Norm.Normalize(nctx, it.Expr)
			if err != nil {
				return errors.Wrapf(err, "normalizing assume at %s", it.Pos)
			}
			node.Contract.Assumes[i].Expr = normalized
		}
		for i, it := range node.Contract.Guarantees {
			normalized, err := g.Norm.Normalize(nctx, it.Expr)
			if err != nil {
				return errors.Wrapf(err, "normalizing guarantee at %s", it.Pos)
			}
			node.Contract.Guarantees[i].Expr = normalized
		}
		for i, gv := range node.Contract.GhostVars {
			normalized, err := g.Norm.Normalize(nctx, gv.RHS)
			if err != nil {
				return errors.Wrapf(err, "normalizing ghost var at %s", gv.Pos)
			}
			node.Contract.GhostVars[i].RHS = normalized
		}
		for mi, m := range node.Contract.Modes {
			for i, it := range m.Requires {
				normalized, err := g.Norm.Normalize(nctx, it.Expr)
				if err != nil {
					return errors.Wrapf(err, "normalizing mode %s require at %s", m.Name, it.Pos)
				}
				node.Contract.Modes[mi].Requires[i].Expr = normalized
			}
			for i, it := range m.Ensures {
				normalized, err := g.Norm.Normalize(nctx, it.Expr)
				if err != nil {
					return errors.Wrapf(err, "normalizing mode %s ensure at %s", m.Name, it.Pos)
				}
				node.Contract.Modes[mi].Ensures[i].Expr = normalized
			}
		}
		normalize.CollectContractCalls([]string{node.Name}, node.Contract, nctx.Generated)
	}
	cc.Generated = nctx.Generated

	// Step 1: bind type parameters as abstract types in a node-local
	// alias map copy so sibling nodes are unaffected.
	aliases := make(map[string]*term.Type, len(g.State.TypeAliases)+len(node.TypeParams))
	for k, v := range g.State.TypeAliases {
		aliases[k] = v
	}
	for _, p := range node.TypeParams {
		aliases[p] = g.Store.AbstractType(p)
	}
	cc.Aliases = aliases

	// Step 2: flatten inputs/outputs/locals into scalar state variables.
	var err error
	rec.Inputs, err = g.compileVarGroup(cc, node.Inputs, rec, SourceInput, []string{node.Name}, true)
	if err != nil {
		return err
	}
	rec.Outputs, err = g.compileVarGroup(cc, node.Outputs, rec, SourceOutput, []string{node.Name}, false)
	if err != nil {
		return err
	}
	rec.Locals, err = g.compileVarGroup(cc, node.Locals, rec, SourceLocal, []string{node.Name, "impl"}, false)
	if err != nil {
		return err
	}

	// The node record's init-flag state variable (spec.md §3 "Node
	// Record"): true at the first instant, false thereafter, consulted
	// by every Arrow site this node's expressions compile (equation.go's
	// *ast.Arrow case). Allocated once here, before any expression is
	// compiled, so it is in place for the generated-locals pass below.
	rec.InitFlag = g.Vars.GetOrCreate("init_flag", []string{node.Name, "reserved"}, g.Store.BoolType(), false, false, false)
	rec.RecordSource(rec.InitFlag, SourceGenerated)
	cc.InitFlag = rec.InitFlag

	// Step 3: generated locals from the normalizer's side table.
	if cc.Generated != nil {
		for name, defining := range cc.Generated.Locals {
			sub, err := CompileExprToTrie(cc, defining)
			if err != nil {
				return err
			}
			svs := trie.Map(sub, func(_ trie.Path, n *term.Node) *StateVariable {
				sv := g.Vars.GetOrCreate(name, []string{node.Name, "reserved"}, n.Type(), false, false, false)
				rec.RecordSource(sv, SourceGenerated)
				rec.DefiningExpr[sv.Identity()] = n
				return sv
			})
			cc.Idents.Bind(name, svs)
		}
	}

	// Step 5: oracles.
	for _, o := range cc.Generated.Oracles {
		scalarTy, terr := g.Typing.ResolveScalarType(o.Type, cc.Aliases)
		if terr != nil {
			return errors.Wrapf(terr, "oracle %s", o.Name)
		}
		sv := g.Vars.GetOrCreate(o.Name, []string{node.Name, "reserved"}, scalarTy, false, false, false)
		rec.RecordSource(sv, SourceOracle)
		rec.Oracles = append(rec.Oracles, sv)
		if o.SeedExpr != nil {
			if seedTrie, err := CompileExprToTrie(cc, o.SeedExpr); err == nil {
				if leaf, ok := seedTrie.Find(trie.Path{}); ok {
					if closes := g.svFromInstanceVar(leaf, node.Name); closes != nil {
						rec.OracleCloses[sv.Identity()] = closes
					}
				}
			}
		}
		cc.Idents.Bind(o.Name, trie.Singleton[*StateVariable](trie.Path{}, sv))
	}

	// Step 6: node calls lifted to expressions by the normalizer.
	for _, call := range cc.Generated.Calls {
		if err := g.compileCall(cc, rec, call); err != nil {
			return errors.Wrapf(err, "call to %s at %s", call.Callee, call.Pos)
		}
	}

	// Step 7: equations, asserts, properties.
	for _, eq := range node.Equations {
		lhsTrie, err := CompileLHSToTrie(cc, eq.LHS)
		if err != nil {
			return errors.Wrapf(err, "equation at %s", eq.Pos)
		}
		rhsTrie, err := CompileExprToTrie(cc, eq.RHS)
		if err != nil {
			return errors.Wrapf(err, "equation at %s", eq.Pos)
		}
		expanded, err := ExpandEquation(lhsTrie, rhsTrie)
		if err != nil {
			return errors.Wrapf(err, "equation at %s", eq.Pos)
		}
		for _, e := range expanded {
			rec.DefiningExpr[e.LHS.StateVar.Identity()] = e.RHS
		}
		rec.Equations = append(rec.Equations, expanded...)
	}

	for _, a := range node.Asserts {
		svTrie, err := CompileExprToTrie(cc, a.Expr)
		if err != nil {
			return errors.Wrapf(err, "assert at %s", a.Pos)
		}
		leaf, ok := svTrie.Find(trie.Path{})
		if !ok || !leaf.IsVariable() {
			return errors.Errorf("assert at %s: operand did not resolve to a state variable", a.Pos)
		}
		sv := g.svFromInstanceVar(leaf, node.Name)
		if sv != nil {
			rec.Asserts = append(rec.Asserts, AssertRecord{Pos: a.Pos, StateVar: sv})
		}
	}

	for _, p := range node.Properties {
		svTrie, err := CompileExprToTrie(cc, p.Expr)
		if err != nil {
			return errors.Wrapf(err, "property %s at %s", p.Name, p.Pos)
		}
		leaf, ok := svTrie.Find(trie.Path{})
		if !ok || !leaf.IsVariable() {
			continue
		}
		sv := g.svFromInstanceVar(leaf, node.Name)
		if sv == nil {
			continue
		}
		src := PropertyOriginal
		rec.Properties = append(rec.Properties, PropertyRecord{StateVar: sv, Name: p.Name, Source: src, Kind: p.Kind})
	}

	// Step 8: contract (assumes/guarantees/modes, sofar accumulator).
	if node.Contract != nil {
		contract, err := g.compileContract(cc, rec, node.Contract)
		if err != nil {
			return errors.Wrapf(err, "contract of %s", node.Name)
		}
		rec.Contract = contract
	}

	g.State.PushNode(rec)
	return nil
}

// compileCall implements spec.md §4.5 step 6: lower one call-as-
// expression entry the normalizer lifted out of the node's equations
// into a CallRecord, binding fresh instance state variables for the
// callee's inputs (defined by equations forwarding the caller's
// argument terms), propagated oracles, activation/restart conditions,
// and outputs (bound into cc.Idents under the fresh names
// CallsAsExpressionsRule minted, so later equations referencing
// call.Outputs[i] resolve exactly like any other identifier).
func (g *Generator) compileCall(cc *CompileContext, rec *NodeRecord, call normalize.CallEntry) error {
	calleeDecl, ok := g.declsByName[call.Callee]
	if !ok {
		return &diagnostic.UnboundIdentifier{Pos: call.Pos, Name: call.Callee}
	}
	calleeRec, ok := g.State.LookupNode(call.Callee)
	if !ok {
		return &diagnostic.UnboundIdentifier{Pos: call.Pos, Name: call.Callee}
	}
	if len(call.Args) != len(calleeDecl.Inputs) {
		return errors.Errorf("call to %s at %s: %d arguments for %d declared inputs", call.Callee, call.Pos, len(call.Args), len(calleeDecl.Inputs))
	}

	callScope := append(append([]string(nil), cc.Scope...), "call", call.Outputs[0])

	inputs := trie.Empty[*StateVariable]()
	for i, d := range calleeDecl.Inputs {
		leafTypes, err := CompileTypeToTrie(g.Typing, d.Type, cc.Aliases)
		if err != nil {
			return errors.Wrapf(err, "input %s", d.Name)
		}
		argTrie, err := CompileExprToTrie(cc, call.Args[i])
		if err != nil {
			return errors.Wrapf(err, "argument %d", i)
		}
		instTrie, err := trie.Map2(leafTypes, argTrie, func(path trie.Path, ty *term.Type, argTerm *term.Node) *StateVariable {
			leafScope := append(append([]string(nil), callScope...), d.Name)
			leafScope = append(leafScope, trie.MkScopeForIndex(path)...)
			sv := g.Vars.GetOrCreate(d.Name, leafScope, ty, false, false, false)
			rec.RecordSource(sv, SourceCall)
			rec.DefiningExpr[sv.Identity()] = argTerm
			rec.Equations = append(rec.Equations, EquationRecord{LHS: EquationBound{StateVar: sv}, RHS: argTerm})
			return sv
		})
		if err != nil {
			return errors.Wrapf(err, "input %s", d.Name)
		}
		for _, b := range instTrie.Bindings() {
			inputs = inputs.Add(append(trie.Path{trie.RecordIndex(d.Name)}, b.Path...), b.Value)
		}
	}

	oracles := make([]*StateVariable, len(calleeRec.Oracles))
	for i, o := range calleeRec.Oracles {
		name := normalize.Fresh(normalize.KindPOracle)
		sv := g.Vars.GetOrCreate(name, callScope, o.Type, false, false, false)
		rec.RecordSource(sv, SourceOracle)
		oracles[i] = sv
	}

	var conditions []*StateVariable
	if call.Activation != nil {
		sv, err := g.resolveConditionVar(cc, rec, call.Activation, callScope, "activate")
		if err != nil {
			return errors.Wrap(err, "activation condition")
		}
		conditions = append(conditions, sv)
	}
	if call.Restart != nil {
		sv, err := g.resolveConditionVar(cc, rec, call.Restart, callScope, "restart")
		if err != nil {
			return errors.Wrap(err, "restart condition")
		}
		conditions = append(conditions, sv)
	}

	outputs := trie.Empty[*StateVariable]()
	flatIdx := 0
	for _, d := range calleeDecl.Outputs {
		leafTypes, err := CompileTypeToTrie(g.Typing, d.Type, cc.Aliases)
		if err != nil {
			return errors.Wrapf(err, "output %s", d.Name)
		}
		perVar := trie.Map(leafTypes, func(path trie.Path, ty *term.Type) *StateVariable {
			leafScope := append(append([]string(nil), callScope...), d.Name)
			leafScope = append(leafScope, trie.MkScopeForIndex(path)...)
			sv := g.Vars.GetOrCreate(d.Name, leafScope, ty, false, false, false)
			rec.RecordSource(sv, SourceCall)
			return sv
		})
		for _, b := range perVar.Bindings() {
			if flatIdx >= len(call.Outputs) {
				return errors.Errorf("fewer fresh output names than callee scalar outputs")
			}
			outputs = outputs.Add(append(trie.Path{trie.RecordIndex(d.Name)}, b.Path...), b.Value)
			cc.Idents.Bind(call.Outputs[flatIdx], trie.Singleton[*StateVariable](trie.Path{}, b.Value))
			flatIdx++
		}
	}
	if flatIdx != len(call.Outputs) {
		return errors.Errorf("call to %s at %s: %d fresh outputs for %d callee scalar outputs", call.Callee, call.Pos, len(call.Outputs), flatIdx)
	}

	callRec := NewCallRecord(call.Pos, call.Callee, conditions, inputs, oracles, outputs, call.Defaults)
	rec.Calls = append(rec.Calls, callRec)
	return nil
}

// resolveConditionVar compiles a call's activation or restart
// expression and binds it to a state variable the CallRecord can hold
// (spec.md §4.5 step 6's conditions list), resolving directly to an
// existing state variable when the compiled term already is one and
// otherwise synthesizing a fresh generated local for it, mirroring
// step 3's generated-locals treatment.
func (g *Generator) resolveConditionVar(cc *CompileContext, rec *NodeRecord, e ast.Expr, scope []string, label string) (*StateVariable, error) {
	leafTrie, err := CompileExprToTrie(cc, e)
	if err != nil {
		return nil, err
	}
	leaf, ok := leafTrie.Find(trie.Path{})
	if !ok {
		return nil, errors.Errorf("condition at %s did not resolve to a scalar", e.Pos())
	}
	if sv := g.svFromInstanceVar(leaf, cc.NodeName); sv != nil {
		return sv, nil
	}
	sv := g.Vars.GetOrCreate(label, scope, leaf.Type(), false, false, false)
	rec.RecordSource(sv, SourceGenerated)
	rec.DefiningExpr[sv.Identity()] = leaf
	rec.Equations = append(rec.Equations, EquationRecord{LHS: EquationBound{StateVar: sv}, RHS: leaf})
	return sv, nil
}

// compileContractBody lowers one contract declaration's ghost
// constants/variables, assume/guarantee items, and modes into their
// backing state variables (spec.md §4.5 step 8, minus the sofar
// accumulator). Shared by compileContract for the node's own contract
// and by instantiateContractImport for an imported contract's body, so
// that neither caller re-reads the top-level node's ContractCalls side
// table when instantiating a nested import.
func (g *Generator) compileContractBody(cc *CompileContext, rec *NodeRecord, decl *ast.ContractDecl) (*Contract, error) {
	for _, gc := range decl.GhostConsts {
		leafTypes, err := CompileTypeToTrie(g.Typing, gc.Type, cc.Aliases)
		if err != nil {
			return nil, errors.Wrapf(err, "ghost const %s", gc.Name)
		}
		perVar := trie.Map(leafTypes, func(path trie.Path, ty *term.Type) *StateVariable {
			leafScope := append(append([]string(nil), cc.Scope...), "contract", gc.Name)
			leafScope = append(leafScope, trie.MkScopeForIndex(path)...)
			sv := g.Vars.GetOrCreate(gc.Name, leafScope, ty, false, true, false)
			rec.RecordSource(sv, SourceGhostConst)
			return sv
		})
		cc.Idents.Bind(gc.Name, perVar)
		rec.AssumptionVars = append(rec.AssumptionVars, perVar.Values()...)
	}

	for _, eq := range decl.GhostVars {
		lhsTrie, err := CompileLHSToTrie(cc, eq.LHS)
		if err != nil {
			return nil, errors.Wrapf(err, "ghost var at %s", eq.Pos)
		}
		rhsTrie, err := CompileExprToTrie(cc, eq.RHS)
		if err != nil {
			return nil, errors.Wrapf(err, "ghost var at %s", eq.Pos)
		}
		expanded, err := ExpandEquation(lhsTrie, rhsTrie)
		if err != nil {
			return nil, errors.Wrapf(err, "ghost var at %s", eq.Pos)
		}
		for _, e := range expanded {
			rec.RecordSource(e.LHS.StateVar, SourceGhostVar)
			rec.DefiningExpr[e.LHS.StateVar.Identity()] = e.RHS
		}
		rec.Equations = append(rec.Equations, expanded...)
	}

	contract := &Contract{}
	compileItems := func(items []ast.ContractItem, kind ContractSVarKind, scope []string) ([]ContractSVar, error) {
		out := make([]ContractSVar, 0, len(items))
		for i, item := range items {
			svTrie, err := CompileExprToTrie(cc, item.Expr)
			if err != nil {
				return nil, errors.Wrapf(err, "contract item at %s", item.Pos)
			}
			leaf, ok := svTrie.Find(trie.Path{})
			if !ok || !leaf.IsVariable() {
				return nil, errors.Errorf("contract item at %s did not resolve to a state variable", item.Pos)
			}
			sv := g.svFromInstanceVar(leaf, cc.NodeName)
			if sv == nil {
				return nil, errors.Errorf("contract item at %s did not resolve to a state variable", item.Pos)
			}
			out = append(out, ContractSVar{Pos: item.Pos, Index: i, Name: item.Name, StateVar: sv, Scope: scope, Kind: kind, Soft: item.Soft})
		}
		return out, nil
	}

	var err error
	contract.Assumes, err = compileItems(decl.Assumes, KindAssumption, cc.Scope)
	if err != nil {
		return nil, err
	}
	contract.Guarantees, err = compileItems(decl.Guarantees, KindGuarantee, cc.Scope)
	if err != nil {
		return nil, err
	}

	for _, m := range decl.Modes {
		modeScope := append(append([]string(nil), cc.Scope...), m.Name)
		requires, err := compileItems(m.Requires, KindRequire, modeScope)
		if err != nil {
			return nil, err
		}
		ensures, err := compileItems(m.Ensures, KindEnsure, modeScope)
		if err != nil {
			return nil, err
		}
		contract.Modes = append(contract.Modes, Mode{Name: m.Name, Pos: m.Pos, Path: modeScope, Requires: requires, Ensures: ensures})
	}

	return contract, nil
}

// compileContract lowers a node's own contract (spec.md §4.5 step 8)
// and, for step 4, every contract it imports via `(import ...)`
// clauses: each entry the normalizer recorded in cc.Generated.
// ContractCalls is instantiated and merged into this node's contract
// kind for kind: the imported assumes are appended to this node's
// assumes, the imported guarantees to its guarantees, and the imported
// modes to its modes. Import instantiation is bounded to one level: an
// imported contract's own Imports are not re-walked, since
// cc.Generated.ContractCalls is this node's top-level side table, not
// the nested import's — true nested contract-import resolution belongs
// to the external typing-context collaborator (spec.md §1), not this
// core.
func (g *Generator) compileContract(cc *CompileContext, rec *NodeRecord, decl *ast.ContractDecl) (*Contract, error) {
	contract, err := g.compileContractBody(cc, rec, decl)
	if err != nil {
		return nil, err
	}

	for _, inst := range cc.Generated.ContractCalls {
		imported, err := g.instantiateContractImport(cc, rec, inst)
		if err != nil {
			return nil, errors.Wrapf(err, "contract import %s", inst.Name)
		}
		contract.Guarantees = append(contract.Guarantees, imported.Guarantees...)
		contract.Assumes = append(contract.Assumes, imported.Assumes...)
		contract.Modes = append(contract.Modes, imported.Modes...)
	}

	assumesConj := g.Store.MkBoolVal(true)
	for _, a := range contract.Assumes {
		assumesConj, err = g.Store.MkAnd(assumesConj, a.StateVar.Term(g.Store, 0))
		if err != nil {
			return nil, err
		}
	}
	sofar, def, err := CompileSofar(g.Store, g.Vars, cc.Scope, rec.InitFlag, assumesConj)
	if err != nil {
		return nil, err
	}
	rec.RecordSource(sofar, SourceGenerated)
	rec.DefiningExpr[sofar.Identity()] = def
	contract.Sofar = sofar

	return contract, nil
}

// instantiateContractImport lowers one `(import callee(args) returns
// (outs))` contract-import site (spec.md §4.5 step 4): the callee's
// own contract is compiled under the import's scope, with its formal
// parameters bound to the importer's instantiation arguments exactly
// as compileCall binds a node call's inputs. The returned contract's
// items keep their kinds; compileContract merges them into the
// importer's contract.
func (g *Generator) instantiateContractImport(cc *CompileContext, rec *NodeRecord, inst normalize.ContractCallInstantiation) (*Contract, error) {
	calleeDecl, ok := g.declsByName[inst.Callee]
	if !ok || calleeDecl.Contract == nil {
		return nil, errors.Errorf("contract import %s: %q declares no contract", inst.Name, inst.Callee)
	}
	if len(inst.Args) != len(calleeDecl.Inputs) {
		return nil, errors.Errorf("contract import %s: %d arguments for %d declared inputs", inst.Name, len(inst.Args), len(calleeDecl.Inputs))
	}

	importCC := cc.WithScope(inst.Name)
	importCC.Scope = append([]string(nil), inst.Scope...)
	importCC.InitFlag = cc.InitFlag

	for i, d := range calleeDecl.Inputs {
		leafTypes, err := CompileTypeToTrie(g.Typing, d.Type, cc.Aliases)
		if err != nil {
			return nil, errors.Wrapf(err, "import input %s", d.Name)
		}
		argTrie, err := CompileExprToTrie(cc, inst.Args[i])
		if err != nil {
			return nil, errors.Wrapf(err, "import argument %d", i)
		}
		bound, err := trie.Map2(leafTypes, argTrie, func(path trie.Path, ty *term.Type, argTerm *term.Node) *StateVariable {
			leafScope := append(append([]string(nil), importCC.Scope...), d.Name)
			leafScope = append(leafScope, trie.MkScopeForIndex(path)...)
			sv := g.Vars.GetOrCreate(d.Name, leafScope, ty, false, false, false)
			rec.RecordSource(sv, SourceGenerated)
			rec.DefiningExpr[sv.Identity()] = argTerm
			rec.Equations = append(rec.Equations, EquationRecord{LHS: EquationBound{StateVar: sv}, RHS: argTerm})
			return sv
		})
		if err != nil {
			return nil, errors.Wrapf(err, "import input %s", d.Name)
		}
		importCC.Idents.Bind(d.Name, bound)
	}

	imported, err := g.compileContractBody(importCC, rec, calleeDecl.Contract)
	if err != nil {
		return nil, errors.Wrapf(err, "callee %s", inst.Callee)
	}

	for i, name := range inst.Returns {
		if i >= len(calleeDecl.Outputs) {
			break
		}
		sub, ok := importCC.Idents.Lookup(calleeDecl.Outputs[i].Name)
		if !ok {
			leafTypes, err := CompileTypeToTrie(g.Typing, calleeDecl.Outputs[i].Type, cc.Aliases)
			if err != nil {
				return nil, errors.Wrapf(err, "import output %s", name)
			}
			sub = trie.Map(leafTypes, func(path trie.Path, ty *term.Type) *StateVariable {
				leafScope := append(append([]string(nil), importCC.Scope...), calleeDecl.Outputs[i].Name)
				leafScope = append(leafScope, trie.MkScopeForIndex(path)...)
				sv := g.Vars.GetOrCreate(calleeDecl.Outputs[i].Name, leafScope, ty, false, false, false)
				rec.RecordSource(sv, SourceGenerated)
				return sv
			})
		}
		cc.Idents.Bind(name, sub)
	}

	return imported, nil
}

// compileVarGroup implements step 2's "compile its type into an index
// trie of scalar types, then for each leaf create a state variable"
// for one declaration group (inputs, outputs, or locals), returning
// the combined by-identifier trie and binding each name into the
// node's identifier map.
func (g *Generator) compileVarGroup(cc *CompileContext, decls []ast.VarDecl, rec *NodeRecord, kind SourceKind, scope []string, isInput bool) (*trie.Trie[*StateVariable], error) {
	out := trie.Empty[*StateVariable]()
	for _, d := range decls {
		leafTypes, err := CompileTypeToTrie(g.Typing, d.Type, cc.Aliases)
		if err != nil {
			return nil, errors.Wrapf(err, "variable %s", d.Name)
		}
		perVar := trie.Map(leafTypes, func(path trie.Path, ty *term.Type) *StateVariable {
			leafScope := append(append([]string(nil), scope...), d.Name)
			leafScope = append(leafScope, trie.MkScopeForIndex(path)...)
			sv := g.Vars.GetOrCreate(d.Name, leafScope, ty, isInput, d.Const, false)
			rec.RecordSource(sv, kind)
			return sv
		})
		cc.Idents.Bind(d.Name, perVar)
		for _, b := range perVar.Bindings() {
			out = out.Add(append(trie.Path{trie.RecordIndex(d.Name)}, b.Path...), b.Value)
		}
	}
	return out, nil
}

// svFromInstanceVar recovers the StateVariable backing a term-level
// instance-var reference, used when an already-normalized expression
// (an assert or property operand) resolves to a bare identifier
// reference and the record needs the StateVariable, not just the term.
func (g *Generator) svFromInstanceVar(n *term.Node, nodeName string) *StateVariable {
	v := n.Variable()
	if v == nil || (v.Kind() != term.VarStateInstance && v.Kind() != term.VarConstState) {
		return nil
	}
	ref := v.StateVar()
	isConst := v.Kind() == term.VarConstState
	return g.Vars.GetOrCreate(ref.Name, []string{ref.Scope}, v.Type(), false, isConst, false)
}
