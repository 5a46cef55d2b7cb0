package clientapi

// Addon extends kind builders with a named operation, invoked through
// Builder.Call. Apply may call any Builder method, including Add.
type Addon interface {
	Apply(b *Builder, args ...any)
}

// AddonFunc adapts a function to Addon.
type AddonFunc func(b *Builder, args ...any)

// Apply implements Addon.
func (f AddonFunc) Apply(b *Builder, args ...any) { f(b, args...) }
