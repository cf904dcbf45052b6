package utils

import (
	"io"
	"sync"
)

type errorFlusher interface {
	Flush() error
}

type plainFlusher interface {
	Flush()
}

// flushingWriter forwards each write and flushes the destination so progress
// lines show up while a long clone is still running.
type flushingWriter struct {
	mutex       sync.Mutex
	destination io.Writer
}

// NewFlushingWriter wraps destination so that buffered sinks such as bufio.Writer
// are flushed after every write. Writers without a Flush method are returned as is.
func NewFlushingWriter(destination io.Writer) io.Writer {
	switch destination.(type) {
	case nil, *flushingWriter:
		return destination
	case errorFlusher, plainFlusher:
		return &flushingWriter{destination: destination}
	default:
		return destination
	}
}

func (writer *flushingWriter) Write(data []byte) (int, error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	writtenCount, writeError := writer.destination.Write(data)
	if writeError != nil {
		return writtenCount, writeError
	}

	switch flusher := writer.destination.(type) {
	case errorFlusher:
		return writtenCount, flusher.Flush()
	case plainFlusher:
		flusher.Flush()
	}
	return writtenCount, nil
}
