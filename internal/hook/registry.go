package hook

import (
	"fmt"
	"slices"
)

// registry lists the wrapped tools in the order hooks are documented.
var registry = []*Tool{
	clangFormat,
	uncrustify,
	clangTidy,
	cppcheck,
	cpplint,
	includeWhatYouUse,
	oclint,
}

// Lookup returns a copy of the tool registered under id.
func Lookup(id string) (*Tool, error) {
	for _, t := range registry {
		if t.ID == id {
			return t.clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, id)
}

// MustLookup is Lookup for ids known at compile time.
func MustLookup(id string) *Tool {
	t, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return t
}

// IDs returns every hook id.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, t := range registry {
		ids[i] = t.ID
	}
	return ids
}

// All returns copies of every registered tool.
func All() []*Tool {
	out := make([]*Tool, len(registry))
	for i, t := range registry {
		out[i] = t.clone()
	}
	return out
}

// Formatters returns the ids of tools of kind KindFormatter.
func Formatters() []string {
	var ids []string
	for _, t := range registry {
		if t.Kind == KindFormatter {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Known reports whether id is registered.
func Known(id string) bool {
	return slices.Contains(IDs(), id)
}
