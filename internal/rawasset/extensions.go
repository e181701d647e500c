package rawasset

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
)

// DefaultExtensions is the allow-list used when none is configured.
var DefaultExtensions = []string{".ttf"}

// Extensions is an immutable allow-list of file-extension suffixes.
type Extensions struct {
	list []string
}

// NewExtensions validates and copies list. Every entry must start with '.'
// and have at least one character after it.
func NewExtensions(list []string) (Extensions, error) {
	if len(list) == 0 {
		return Extensions{}, errors.ValidationError("extension allow-list is empty").Build()
	}
	for i, ext := range list {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return Extensions{}, errors.ValidationError("invalid extension").
				WithContext("extension", ext).
				WithContext("index", i).
				Build()
		}
	}
	return Extensions{list: slices.Clone(list)}, nil
}

// MustExtensions is NewExtensions for static lists; it panics on invalid input.
func MustExtensions(list ...string) Extensions {
	exts, err := NewExtensions(list)
	if err != nil {
		panic(err)
	}
	return exts
}

// Match reports whether id ends with any allow-listed suffix and returns the
// first one that matched. Comparison is exact and case-sensitive.
func (e Extensions) Match(id string) (string, bool) {
	for _, ext := range e.list {
		if strings.HasSuffix(id, ext) {
			return ext, true
		}
	}
	return "", false
}

// List returns a copy of the allow-list in configured order.
func (e Extensions) List() []string {
	return slices.Clone(e.list)
}

// Len returns the number of entries.
func (e Extensions) Len() int {
	return len(e.list)
}
