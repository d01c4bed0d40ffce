package templates

// JSONStyle is the strict template: standard JSON, no omission markers
// at all. Truncation is invisible structurally (fewer elements/keys)
// except for string truncation, which still uses the universal "…".
type JSONStyle struct{}

func (JSONStyle) Name() string                    { return "json" }
func (JSONStyle) EmptyArray() string              { return "[]" }
func (JSONStyle) EmptyObject() string             { return "{}" }
func (JSONStyle) ArrayOmission(int) string        { return "" }
func (JSONStyle) ObjectOmission(int, bool) string { return "" }
func (JSONStyle) InternalGap(int) string          { return "" }
func (JSONStyle) DecorationOnOwnLine() bool       { return false }
