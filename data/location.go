package data

// Location is a named, symbolic compilation role such as a source root,
// a library path or a generated-output target. It is abstracted from any
// concrete storage; containers are bound to it separately.
//
// Locations are immutable identity values. Two locations are the same
// location exactly when their names are equal.
type Location struct {
	// Name identifies the location (e.g. "SOURCE_PATH", "CLASS_OUTPUT").
	Name string

	// Output marks locations that accept writes through the output allocator.
	Output bool

	// ModuleOriented marks locations that are subdivided per module.
	ModuleOriented bool
}

// NewLocation returns a non-output, non-module-oriented location.
func NewLocation(name string) Location {
	return Location{Name: name}
}

// NewOutputLocation returns an output location.
func NewOutputLocation(name string) Location {
	return Location{Name: name, Output: true}
}

// NewModuleLocation returns a module-oriented location.
// Output controls whether the per-module groups accept writes.
func NewModuleLocation(name string, output bool) Location {
	return Location{Name: name, Output: output, ModuleOriented: true}
}

func (l Location) String() string {
	return l.Name
}

// Equals reports whether both locations name the same compilation role.
func (l Location) Equals(other Location) bool {
	return l.Name == other.Name
}
