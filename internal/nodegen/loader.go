package nodegen

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"

	"lustrecore/internal/ast"
)

// Package-level fixture format for loading a Program from an external
// representation, grounded on internal/gscanner/disassembler.go's
// "load a contract from bytecode/source before analysis" responsibility
// (the surface parser and type checker that normally produce this
// core's input AST are out-of-scope external collaborators; this loader
// stands in for them in tests and example fixtures).

// exprDTO is the tagged-union wire shape for one ast.Expr.
type exprDTO struct {
	Kind string `json:"kind"`

	Name string `json:"name,omitempty"` // ident

	Int  string `json:"int,omitempty"`  // int_const (decimal string)
	Real string `json:"real,omitempty"` // real_const (rational string, e.g. "3/2")
	Bool bool   `json:"bool,omitempty"` // bool_const

	Op      string     `json:"op,omitempty"` // bin_op / un_op
	Left    *exprDTO   `json:"left,omitempty"`
	Right   *exprDTO   `json:"right,omitempty"`
	Operand *exprDTO   `json:"operand,omitempty"`
	Cond    *exprDTO   `json:"cond,omitempty"`
	Then    *exprDTO   `json:"then,omitempty"`
	Else    *exprDTO   `json:"else,omitempty"`
	Init    *exprDTO   `json:"init,omitempty"`
	Step    *exprDTO   `json:"step,omitempty"`
	Callee  string     `json:"callee,omitempty"`
	Args    []*exprDTO `json:"args,omitempty"`
	Items   []*exprDTO `json:"items,omitempty"`
}

func decodeExpr(d *exprDTO) (ast.Expr, error) {
	if d == nil {
		return nil, nil
	}
	switch d.Kind {
	case "ident":
		return &ast.Ident{Name: d.Name}, nil
	case "int_const":
		v, ok := new(big.Int).SetString(d.Int, 10)
		if !ok {
			return nil, errors.Errorf("invalid integer literal %q", d.Int)
		}
		return &ast.IntConst{Value: v}, nil
	case "real_const":
		v, ok := new(big.Rat).SetString(d.Real)
		if !ok {
			return nil, errors.Errorf("invalid rational literal %q", d.Real)
		}
		return &ast.RealConst{Value: v}, nil
	case "bool_const":
		return &ast.BoolConst{Value: d.Bool}, nil
	case "pre":
		operand, err := decodeExpr(d.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Pre{Operand: operand}, nil
	case "arrow":
		init, err := decodeExpr(d.Init)
		if err != nil {
			return nil, err
		}
		step, err := decodeExpr(d.Step)
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{Init: init, Step: step}, nil
	case "bin_op":
		l, err := decodeExpr(d.Left)
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(d.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: d.Op, Left: l, Right: r}, nil
	case "un_op":
		operand, err := decodeExpr(d.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Op: d.Op, Operand: operand}, nil
	case "ite":
		c, err := decodeExpr(d.Cond)
		if err != nil {
			return nil, err
		}
		a, err := decodeExpr(d.Then)
		if err != nil {
			return nil, err
		}
		b, err := decodeExpr(d.Else)
		if err != nil {
			return nil, err
		}
		return &ast.Ite{Cond: c, Then: a, Else: b}, nil
	case "call":
		args, err := decodeExprs(d.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Callee: d.Callee, Args: args}, nil
	case "group":
		items, err := decodeExprs(d.Items)
		if err != nil {
			return nil, err
		}
		return &ast.GroupExpr{Items: items}, nil
	default:
		return nil, errors.Errorf("unknown fixture expression kind %q", d.Kind)
	}
}

func decodeExprs(ds []*exprDTO) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(ds))
	for i, d := range ds {
		e, err := decodeExpr(d)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

type typeDTO struct {
	Kind string   `json:"kind"`
	Name string   `json:"name,omitempty"`
	Elem *typeDTO `json:"elem,omitempty"`
	Size int64    `json:"size,omitempty"`
}

func decodeType(d *typeDTO) *ast.TypeExpr {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "bool":
		return &ast.TypeExpr{Kind: ast.TyBool}
	case "int":
		return &ast.TypeExpr{Kind: ast.TyInt}
	case "real":
		return &ast.TypeExpr{Kind: ast.TyReal}
	case "array":
		return &ast.TypeExpr{Kind: ast.TyArray, Elem: decodeType(d.Elem), Size: &ast.IntConst{Value: big.NewInt(d.Size)}}
	default:
		return &ast.TypeExpr{Kind: ast.TyNamed, Name: d.Name}
	}
}

type varDTO struct {
	Name  string   `json:"name"`
	Type  *typeDTO `json:"type"`
	Const bool     `json:"const,omitempty"`
}

type equationDTO struct {
	LHS string   `json:"lhs"`
	RHS *exprDTO `json:"rhs"`
}

type nodeDTO struct {
	Name       string        `json:"name"`
	IsMain     bool          `json:"is_main,omitempty"`
	IsFunction bool          `json:"is_function,omitempty"`
	Inputs     []varDTO      `json:"inputs"`
	Outputs    []varDTO      `json:"outputs"`
	Locals     []varDTO      `json:"locals"`
	Equations  []equationDTO `json:"equations"`
}

type programDTO struct {
	Nodes []nodeDTO `json:"nodes"`
}

func decodeVars(vs []varDTO) []ast.VarDecl {
	out := make([]ast.VarDecl, len(vs))
	for i, v := range vs {
		out[i] = ast.VarDecl{Name: v.Name, Type: decodeType(v.Type), Const: v.Const}
	}
	return out
}

// LoadProgram decodes a fixture program from JSON bytes (see the DTO
// types above for the accepted shape). Equation left-hand sides are
// restricted to a bare identifier in this fixture format; structured
// LHS shapes (tuples, record/array defs) are exercised directly via
// the ast package in hand-written tests instead.
func LoadProgram(data []byte) (*ast.Program, error) {
	var dto programDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, errors.Wrap(err, "decoding fixture program")
	}
	prog := &ast.Program{}
	for _, n := range dto.Nodes {
		decl := ast.NodeDecl{
			Name:       n.Name,
			IsMain:     n.IsMain,
			IsFunction: n.IsFunction,
			Inputs:     decodeVars(n.Inputs),
			Outputs:    decodeVars(n.Outputs),
			Locals:     decodeVars(n.Locals),
		}
		for _, eq := range n.Equations {
			rhs, err := decodeExpr(eq.RHS)
			if err != nil {
				return nil, errors.Wrapf(err, "node %s equation", n.Name)
			}
			decl.Equations = append(decl.Equations, ast.Equation{
				LHS: &ast.LHSIdent{Name: eq.LHS},
				RHS: rhs,
			})
		}
		prog.Nodes = append(prog.Nodes, decl)
	}
	return prog, nil
}
