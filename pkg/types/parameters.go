package types

// FileNameParameter is the parameter key carrying the module identifier a
// story was registered from.
const FileNameParameter = "fileName"

// Parameters is a bag of story metadata. Values are either sequences
// (replaced wholesale when merged), nested mappings (merged key by key) or
// scalars (replaced).
type Parameters map[string]any

// Clone returns a shallow copy of p. A nil bag clones to an empty one.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// FileName returns the fileName parameter when it is a non-empty string.
func (p Parameters) FileName() (string, bool) {
	name, ok := p[FileNameParameter].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
