// Package types defines the closed type universe of the language.
package types

// Type is one of the three value types of the language.  The universe is
// closed: there are no user-defined or composite types.
type Type int

// Enumeration of types.  Invalid is the zero value and marks a node that has
// not been type checked yet.
const (
	Invalid Type = iota
	Int
	Bool
	None
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case None:
		return "None"
	}

	return "<invalid>"
}

// Parse converts a type annotation into a type.  The lowercase spelling
// `none` is accepted alongside `None`.
func Parse(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "bool":
		return Bool, true
	case "None", "none":
		return None, true
	}

	return Invalid, false
}

// IsValid returns whether t is one of the three real types.
func (t Type) IsValid() bool {
	return t == Int || t == Bool || t == None
}
