package scenario

import (
	"errors"
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// ErrUnknownVersion means no output template covers an installed tool
// version. The template table needs a new bucket; there is no fallback.
var ErrUnknownVersion = errors.New("scenario: tool version matches no output template")

// ErrMissingVersion is returned when a scenario needs a tool version that
// was not probed.
var ErrMissingVersion = errors.New("scenario: tool version not known")

// Bucket pairs a version constraint, such as ">= 1.89", with a value.
type Bucket[T any] struct {
	Constraint string
	Value      T
}

// Table is an ordered list of buckets; the first match wins.
type Table[T any] []Bucket[T]

// Select returns the value of the first bucket whose constraint v meets.
func (t Table[T]) Select(tool, v string) (T, error) {
	var zero T
	ver, err := goversion.NewVersion(v)
	if err != nil {
		return zero, fmt.Errorf("%w: %s %q: %v", ErrUnknownVersion, tool, v, err)
	}
	for _, b := range t {
		c, err := goversion.NewConstraint(b.Constraint)
		if err != nil {
			return zero, fmt.Errorf("scenario: bad constraint %q: %w", b.Constraint, err)
		}
		if c.Check(ver) {
			return b.Value, nil
		}
	}
	return zero, fmt.Errorf("%w: %s %s", ErrUnknownVersion, tool, v)
}

// oclintVariant is what changed after oclint 20: double dash options, no
// analytics switch and an https link in the report footer. A bare "20"
// still gets the old variant.
type oclintVariant struct {
	Args   []string
	Scheme string
}

var cppcheckOutput = Table[string]{
	{"<= 1.88", cppcheckLegacy},
	{">= 1.89", cppcheckCurrent},
}

var oclintVariants = Table[oclintVariant]{
	{"<= 20", oclintVariant{
		Args:   []string{"-enable-global-analysis", "-enable-clang-static-analyzer", "-no-analytics"},
		Scheme: "http",
	}},
	{"> 20", oclintVariant{
		Args:   []string{"--enable-global-analysis", "--enable-clang-static-analyzer"},
		Scheme: "https",
	}},
}
