package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// HeaderFieldCount is the number of whitespace separated tokens in a module line:
// record type, platform, architecture, build id and module name.
const HeaderFieldCount = 5

// ModuleHeader identifies the module a debug bundle describes.
type ModuleHeader struct {
	Platform string
	Arch     string
	// BuildID is kept as the dumper printed it; it is not decoded.
	BuildID string
	Name    string
}

// ParseModuleHeader parses a line of the form
// "MODULE <platform> <arch> <build-id> <name>".
// Only the token count is validated, plus that the build id and name are
// usable as single path components.
func ParseModuleHeader(line string) (ModuleHeader, error) {
	fields := strings.Fields(line)
	if len(fields) != HeaderFieldCount {
		return ModuleHeader{}, zerr.With(zerr.Wrap(ErrMalformedHeader, "unexpected field count"), "fields", len(fields))
	}

	h := ModuleHeader{
		Platform: fields[1],
		Arch:     fields[2],
		BuildID:  fields[3],
		Name:     fields[4],
	}

	for _, f := range [...]struct{ key, value string }{{"build_id", h.BuildID}, {"name", h.Name}} {
		if !isPathComponent(f.value) {
			return ModuleHeader{}, zerr.With(
				zerr.Wrap(ErrMalformedHeader, "field is not a single path component"),
				f.key, f.value,
			)
		}
	}

	return h, nil
}

// isPathComponent reports whether s names exactly one entry inside its parent.
func isPathComponent(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

// String renders the header back into its module line form.
func (h ModuleHeader) String() string {
	return strings.Join([]string{"MODULE", h.Platform, h.Arch, h.BuildID, h.Name}, " ")
}
