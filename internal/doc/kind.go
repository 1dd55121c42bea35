package doc

// Kind is the closed set of primary entity kinds used for classification.
type Kind int

const (
	KindMisc Kind = iota
	KindClass
	KindModule
	KindFunction
	KindConstant
	KindEnum
)

var kindNames = map[Kind]string{
	KindMisc:     "misc",
	KindClass:    "class",
	KindModule:   "module",
	KindFunction: "function",
	KindConstant: "constant",
	KindEnum:     "enum",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "misc"
}

// ParseKind maps a kind name back to its Kind. Unknown names map to
// KindMisc with ok=false.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindMisc, false
}

// Kind computes the entity's primary kind. Priority matters only because
// the flags are not mutually exclusive in representation: class, then
// module, then function, then constant, then enum.
func (e *Entity) Kind() Kind {
	switch {
	case e.IsClass:
		return KindClass
	case e.IsModule:
		return KindModule
	case e.IsFunction:
		return KindFunction
	case e.IsConstant:
		return KindConstant
	case e.IsEnum:
		return KindEnum
	default:
		return KindMisc
	}
}
