package corelog

import "io"

// Formatter renders an activated Record into w. Implementations
// (corelog/strfmt.Pattern, corelog/jsonfmt.Formatter) are satisfied
// structurally — this package never imports either.
type Formatter interface {
	Execute(w io.Writer, rec *Record) error
}
