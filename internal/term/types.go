package term

import "fmt"

// TypeKind tags the variant of a Type. Grounded on internal/smt/type.go's
// StorableType interface (Type() string, Size() uint32): generalized
// here from a string tag into a real closed sum type.
type TypeKind int

const (
	TyBool TypeKind = iota
	TyInt
	TyIntRange
	TyReal
	TyBV
	TyUBV
	TyArray
	TyEnum
	TyAbstract
)

func (k TypeKind) String() string {
	switch k {
	case TyBool:
		return "bool"
	case TyInt:
		return "int"
	case TyIntRange:
		return "int_range"
	case TyReal:
		return "real"
	case TyBV:
		return "bv"
	case TyUBV:
		return "ubv"
	case TyArray:
		return "array"
	case TyEnum:
		return "enum"
	case TyAbstract:
		return "abstract"
	default:
		return fmt.Sprintf("type-kind(%d)", int(k))
	}
}

// Type is a hash-consed type. Two Types describing the same variant and
// payload are the same pointer.
type Type struct {
	tag  Tag
	kind TypeKind

	// TyIntRange.
	hasLo, hasHi bool
	lo, hi       int64

	// TyBV / TyUBV.
	width uint32

	// TyArray.
	index, elem *Type

	// TyEnum / TyAbstract.
	name  string
	ctors []string
}

func (t *Type) Tag() Tag          { return t.tag }
func (t *Type) Kind() TypeKind    { return t.kind }
func (t *Type) Width() uint32     { return t.width }
func (t *Type) Name() string      { return t.name }
func (t *Type) Ctors() []string   { return t.ctors }
func (t *Type) IndexType() *Type  { return t.index }
func (t *Type) ElemType() *Type   { return t.elem }
func (t *Type) RangeLo() (int64, bool) { return t.lo, t.hasLo }
func (t *Type) RangeHi() (int64, bool) { return t.hi, t.hasHi }

func (t *Type) String() string {
	switch t.kind {
	case TyIntRange:
		lo, hi := "?", "?"
		if t.hasLo {
			lo = fmt.Sprintf("%d", t.lo)
		}
		if t.hasHi {
			hi = fmt.Sprintf("%d", t.hi)
		}
		return fmt.Sprintf("int_range(%s,%s)", lo, hi)
	case TyBV:
		return fmt.Sprintf("bv(%d)", t.width)
	case TyUBV:
		return fmt.Sprintf("ubv(%d)", t.width)
	case TyArray:
		return fmt.Sprintf("array(%s,%s)", t.index, t.elem)
	case TyEnum:
		return fmt.Sprintf("enum(%s)", t.name)
	case TyAbstract:
		return fmt.Sprintf("abstract(%s)", t.name)
	default:
		return t.kind.String()
	}
}

func typeKey(k TypeKind, hasLo, hasHi bool, lo, hi int64, width uint32, indexTag, elemTag Tag, name string, ctors []string) string {
	return fmt.Sprintf("%d|%v|%v|%d|%d|%d|%d|%d|%s|%v", k, hasLo, hasHi, lo, hi, width, indexTag, elemTag, name, ctors)
}

func (s *Store) internType(k TypeKind, hasLo, hasHi bool, lo, hi int64, width uint32, index, elem *Type, name string, ctors []string) *Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	var indexTag, elemTag Tag
	if index != nil {
		indexTag = index.tag
	}
	if elem != nil {
		elemTag = elem.tag
	}
	key := typeKey(k, hasLo, hasHi, lo, hi, width, indexTag, elemTag, name, ctors)
	if existing, ok := s.types[key]; ok {
		return existing
	}
	ty := &Type{
		tag: s.allocTag(), kind: k,
		hasLo: hasLo, hasHi: hasHi, lo: lo, hi: hi,
		width: width, index: index, elem: elem,
		name: name, ctors: ctors,
	}
	s.types[key] = ty
	s.bumpPeak()
	return ty
}

func (s *Store) BoolType() *Type { return s.internType(TyBool, false, false, 0, 0, 0, nil, nil, "", nil) }
func (s *Store) IntType() *Type  { return s.internType(TyInt, false, false, 0, 0, 0, nil, nil, "", nil) }
func (s *Store) RealType() *Type { return s.internType(TyReal, false, false, 0, 0, 0, nil, nil, "", nil) }

// IntRangeType constructs int_range(lo?, hi?); a nil bound is unbounded
// on that side.
func (s *Store) IntRangeType(lo, hi *int64) *Type {
	var l, h int64
	hasLo, hasHi := lo != nil, hi != nil
	if hasLo {
		l = *lo
	}
	if hasHi {
		h = *hi
	}
	return s.internType(TyIntRange, hasLo, hasHi, l, h, 0, nil, nil, "", nil)
}

func (s *Store) BVType(width uint32) *Type {
	return s.internType(TyBV, false, false, 0, 0, width, nil, nil, "", nil)
}

func (s *Store) UBVType(width uint32) *Type {
	return s.internType(TyUBV, false, false, 0, 0, width, nil, nil, "", nil)
}

// ArrayType constructs array(index, elem). Per spec.md §4.5's tie-break
// note, the zero-sized array case is the caller's responsibility to
// clamp via ClampArraySize before using an int_range index type here.
func (s *Store) ArrayType(index, elem *Type) *Type {
	return s.internType(TyArray, false, false, 0, 0, 0, index, elem, "", nil)
}

func (s *Store) EnumType(name string, ctors []string) *Type {
	cp := append([]string(nil), ctors...)
	return s.internType(TyEnum, false, false, 0, 0, 0, nil, nil, name, cp)
}

func (s *Store) AbstractType(name string) *Type {
	return s.internType(TyAbstract, false, false, 0, 0, 0, nil, nil, name, nil)
}

// ClampArraySize implements spec.md §4.5's tie-break: "The 0-valued
// array size is clamped to 0 (array types use [0, max(0, n)) as their
// index range)."
func ClampArraySize(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
