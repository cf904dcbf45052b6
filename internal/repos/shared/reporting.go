package shared

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter prints the human-readable progress lines of a collection run.
type Reporter interface {
	Printf(format string, args ...any)
}

// WriterReporter writes progress lines to an io.Writer. Write failures are
// ignored because progress output never decides the outcome of a run.
type WriterReporter struct {
	mutex  sync.Mutex
	writer io.Writer
}

// NewWriterReporter constructs a WriterReporter, defaulting to standard output when writer is nil.
func NewWriterReporter(writer io.Writer) *WriterReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &WriterReporter{writer: writer}
}

// Printf formats one progress message.
func (reporter *WriterReporter) Printf(format string, args ...any) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	_, _ = fmt.Fprintf(reporter.writer, format, args...)
}
