package css

// Position represents a position in a source document. Line and
// Character are zero-based; Character counts bytes.
type Position struct {
	Line      uint32
	Character uint32
}

// Range represents a range in a source document
type Range struct {
	Start Position
	End   Position
}

// Declaration is one `property: value` pair found in a style sheet.
// Range covers the value text only, which is what diagnostics point at.
type Declaration struct {
	Property  string
	Value     string
	Important bool
	Range     Range
}

// ParseResult contains the declarations found in a source document, in
// source order
type ParseResult struct {
	Declarations []*Declaration
}
