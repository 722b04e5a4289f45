package normalize

import "lustrecore/internal/ast"

// Manager dispatches Rules by AST node kind, mirroring
// internal/module's ModuleManager: AddRule fans a Rule out to every
// kind it declares interest in, and Normalize walks an expression
// tree bottom-up, running each kind's registered rules in registration
// order once that node's children have themselves been normalized.
type Manager struct {
	rules map[string][]Rule
	all   []Rule
}

// NewManager returns a Manager with no rules registered.
func NewManager() *Manager {
	return &Manager{rules: make(map[string][]Rule)}
}

// AddRule registers r against every kind it names.
func (m *Manager) AddRule(r Rule) {
	m.all = append(m.all, r)
	for _, k := range r.Kinds() {
		m.rules[k] = append(m.rules[k], r)
	}
}

// NewStandardManager returns a Manager with spec.md §4.4's four rules
// registered in their specified order: pre-guarding and call-argument
// lifting must both run before calls-as-expressions replaces the call
// site entirely.
func NewStandardManager() *Manager {
	m := NewManager()
	m.AddRule(&PreGuardRule{})
	m.AddRule(&CallArgumentRule{})
	m.AddRule(&CallsAsExpressionsRule{})
	m.AddRule(&UniquenessRule{})
	return m
}

// Normalize rewrites e and every subexpression, accumulating fresh
// locals/oracles/calls into ctx.Generated.
func (m *Manager) Normalize(ctx *Context, e ast.Expr) (ast.Expr, error) {
	if f, ok := e.(*ast.Fby); ok {
		e = &ast.Arrow{
			Base: ast.Base{P: f.Pos()},
			Init: f.First,
			Step: &ast.Pre{Base: ast.Base{P: f.Pos()}, Operand: f.Rest},
		}
	}

	walked, err := m.walkChildren(ctx, e)
	if err != nil {
		return nil, err
	}

	out := walked
	for _, r := range m.rules[KindOf(walked)] {
		out, err = r.Apply(ctx, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *Manager) normalizeAll(ctx *Context, exprs []ast.Expr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		n, err := m.Normalize(ctx, e)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// walkChildren normalizes e's immediate children (but not e itself),
// returning a copy of e with normalized children. Arrow is the one
// case that changes ctx: its step branch is normalized under the
// normalized init branch as guard (spec.md §4.4 rule 1).
func (m *Manager) walkChildren(ctx *Context, e ast.Expr) (ast.Expr, error) {
	switch v := e.(type) {
	case *ast.Ident, *ast.IntConst, *ast.RealConst, *ast.BoolConst, *ast.EnumConst:
		return e, nil

	case *ast.Pre:
		operand, err := m.Normalize(ctx, v.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Pre{Base: v.Base, Operand: operand}, nil

	case *ast.Arrow:
		init, err := m.Normalize(ctx, v.Init)
		if err != nil {
			return nil, err
		}
		step, err := m.Normalize(ctx.WithGuard(init), v.Step)
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{Base: v.Base, Init: init, Step: step}, nil

	case *ast.BinOp:
		left, err := m.Normalize(ctx, v.Left)
		if err != nil {
			return nil, err
		}
		right, err := m.Normalize(ctx, v.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Base: v.Base, Op: v.Op, Left: left, Right: right}, nil

	case *ast.UnOp:
		operand, err := m.Normalize(ctx, v.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Base: v.Base, Op: v.Op, Operand: operand}, nil

	case *ast.Ite:
		cond, err := m.Normalize(ctx, v.Cond)
		if err != nil {
			return nil, err
		}
		then, err := m.Normalize(ctx, v.Then)
		if err != nil {
			return nil, err
		}
		els, err := m.Normalize(ctx, v.Else)
		if err != nil {
			return nil, err
		}
		return &ast.Ite{Base: v.Base, Cond: cond, Then: then, Else: els}, nil

	case *ast.Call:
		args, err := m.normalizeAll(ctx, v.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Base: v.Base, Callee: v.Callee, Args: args}, nil

	case *ast.Condact:
		activate, err := m.Normalize(ctx, v.Activate)
		if err != nil {
			return nil, err
		}
		args, err := m.normalizeAll(ctx, v.Args)
		if err != nil {
			return nil, err
		}
		defaults, err := m.normalizeAll(ctx, v.Defaults)
		if err != nil {
			return nil, err
		}
		return &ast.Condact{Base: v.Base, Activate: activate, Callee: v.Callee, Args: args, Defaults: defaults}, nil

	case *ast.RestartEvery:
		args, err := m.normalizeAll(ctx, v.Args)
		if err != nil {
			return nil, err
		}
		restartC, err := m.Normalize(ctx, v.RestartC)
		if err != nil {
			return nil, err
		}
		return &ast.RestartEvery{Base: v.Base, Callee: v.Callee, Args: args, RestartC: restartC}, nil

	case *ast.GroupExpr:
		items, err := m.normalizeAll(ctx, v.Items)
		if err != nil {
			return nil, err
		}
		return &ast.GroupExpr{Base: v.Base, Items: items}, nil

	case *ast.StructLit:
		fields := make([]ast.StructLitField, len(v.Fields))
		for i, f := range v.Fields {
			nv, err := m.Normalize(ctx, f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.StructLitField{Name: f.Name, Value: nv}
		}
		return &ast.StructLit{Base: v.Base, TypeName: v.TypeName, Fields: fields}, nil

	case *ast.ArrayDef:
		body, err := m.Normalize(ctx, v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayDef{Base: v.Base, Binder: v.Binder, Size: v.Size, Body: body}, nil

	case *ast.ArrayIndex:
		arr, err := m.Normalize(ctx, v.Array)
		if err != nil {
			return nil, err
		}
		idx, err := m.Normalize(ctx, v.Index)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayIndex{Base: v.Base, Array: arr, Index: idx}, nil

	case *ast.RecordProject:
		rec, err := m.Normalize(ctx, v.Record)
		if err != nil {
			return nil, err
		}
		return &ast.RecordProject{Base: v.Base, Record: rec, Field: v.Field}, nil

	case *ast.TupleProject:
		tup, err := m.Normalize(ctx, v.Tuple)
		if err != nil {
			return nil, err
		}
		return &ast.TupleProject{Base: v.Base, Tuple: tup, Index: v.Index}, nil

	case *ast.Quantified:
		body, err := m.Normalize(ctx, v.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Quantified{Base: v.Base, Universal: v.Universal, Binders: v.Binders, Body: body}, nil

	default:
		return e, nil
	}
}
