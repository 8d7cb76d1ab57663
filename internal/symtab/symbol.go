package symtab

import "github.com/hassan/gibberishc/internal/types"

// StorageClass identifies where a variable symbol lives at runtime.
type StorageClass int

const (
	// Global is a sentinel storage class; global offsets are never read by
	// codegen, which addresses globals by label instead.
	Global StorageClass = iota
	Local
	Formal
)

func (s StorageClass) String() string {
	switch s {
	case Global:
		return "global"
	case Local:
		return "local"
	case Formal:
		return "formal"
	default:
		return "unknown"
	}
}

// globalOffsetSentinel is the unprincipled-but-harmless marker the source
// material uses for global offsets; codegen never reads it.
const globalOffsetSentinel = 1

// Symbol is the metadata attached to one declared name: a variable, a
// formal, a function, or a struct definition.
type Symbol struct {
	Name    string
	Type    types.Type
	Storage StorageClass

	// Offset is the frame displacement from FP for Local/Formal symbols, or
	// globalOffsetSentinel for Global. For a function symbol it is unused;
	// ParamSize/LocalSize below carry the function's frame sizes instead.
	Offset int

	// ParamSize and LocalSize are populated on function symbols only, once
	// name analysis finishes processing the function body.
	ParamSize int
	LocalSize int

	// Fields is populated on struct-definition symbols: the nested scope
	// mapping field names to field symbols.
	Fields *Scope
}

// NewGlobalSymbol creates a symbol with Global storage and the sentinel
// offset.
func NewGlobalSymbol(name string, t types.Type) *Symbol {
	return &Symbol{Name: name, Type: t, Storage: Global, Offset: globalOffsetSentinel}
}

// NewLocalSymbol creates a symbol with Local storage at the given offset.
func NewLocalSymbol(name string, t types.Type, offset int) *Symbol {
	return &Symbol{Name: name, Type: t, Storage: Local, Offset: offset}
}

// NewFormalSymbol creates a symbol with Formal storage at the given offset.
func NewFormalSymbol(name string, t types.Type, offset int) *Symbol {
	return &Symbol{Name: name, Type: t, Storage: Formal, Offset: offset}
}

// NewFnSymbol creates a function symbol. Params/Ret/ParamSize/LocalSize are
// filled in as name analysis finishes processing the declaration and body.
func NewFnSymbol(name string, ret types.Type) *Symbol {
	return &Symbol{Name: name, Type: &types.FnType{Ret: ret}, Storage: Global, Offset: globalOffsetSentinel}
}

// NewStructDefSymbol creates a struct-definition symbol owning fields.
func NewStructDefSymbol(name string, fields *Scope) *Symbol {
	return &Symbol{
		Name:    name,
		Type:    &types.StructDefType{Name: name, Scope: fields},
		Storage: Global,
		Offset:  globalOffsetSentinel,
		Fields:  fields,
	}
}

// FnType returns the symbol's function type, panicking if it isn't one —
// callers only call this after confirming the symbol denotes a function.
func (s *Symbol) FnType() *types.FnType {
	return s.Type.(*types.FnType)
}
