package di

import "fmt"

// Key identifies a registration in the container. The capability names
// what the service provides; the optional qualifier distinguishes several
// providers of the same capability, for example "database[replica]".
type Key struct {
	Capability string
	Qualifier  string
}

// NewKey creates a key for an unqualified capability.
func NewKey(capability string) Key {
	return Key{Capability: capability}
}

// QualifiedKey creates a key for a capability under a qualifier.
func QualifiedKey(capability, qualifier string) Key {
	return Key{Capability: capability, Qualifier: qualifier}
}

// String returns the canonical form: "capability" or "capability[qualifier]".
func (k Key) String() string {
	if k.Qualifier == "" {
		return k.Capability
	}
	return fmt.Sprintf("%s[%s]", k.Capability, k.Qualifier)
}

// keyNames renders keys for error chains and logs.
func keyNames(keys []Key) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return names
}
