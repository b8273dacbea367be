package strfmt

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/quay/corelog"
)

var processNameOnce = sync.OnceValue(func() string {
	return filepath.Base(os.Args[0])
})

func processName() string { return processNameOnce() }

// SeverityMapper is the user-supplied hook invoked for a {severity[:spec]}
// placeholder whose spec is absent or not "d". The default mapping (used
// when no mapper is configured) just writes the numeric severity.
type SeverityMapper func(sev corelog.Severity, spec string, w io.Writer)
