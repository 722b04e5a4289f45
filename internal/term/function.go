package term

// Function wraps an uninterpreted function symbol: a fixed domain of
// types mapping to a range type. Grounded on internal/smt/function.go's
// Function{name, domain, valueRange}, which wraps a yices2 uninterpreted
// term of function type; Call there applies the raw yices2 term, Call
// here builds an ordinary SymUF-headed applied Node.
type Function struct {
	name   string
	domain []*Type
	rng    *Type
	sym    *Symbol
}

// NewFunction declares an uninterpreted function over the given domain
// and range types, interning its reference symbol in s.
func NewFunction(s *Store, name string, domain []*Type, rng *Type) *Function {
	return &Function{
		name:   name,
		domain: append([]*Type(nil), domain...),
		rng:    rng,
		sym:    s.MkUFSymbol(name),
	}
}

func (f *Function) Name() string    { return f.name }
func (f *Function) Domain() []*Type { return f.domain }
func (f *Function) Range() *Type    { return f.rng }

// Call applies f to args, type-checking arity and per-argument types
// against the declared domain.
func (f *Function) Call(s *Store, args ...*Node) (*Node, error) {
	if len(args) != len(f.domain) {
		return nil, &TypeError{Symbol: f.name, Detail: "argument count does not match declared domain"}
	}
	for i, a := range args {
		if a.typ == nil || a.typ.tag != f.domain[i].tag {
			return nil, &TypeError{Symbol: f.name, Detail: "argument type does not match declared domain"}
		}
	}
	return s.Apply(f.sym, args, f.rng)
}
