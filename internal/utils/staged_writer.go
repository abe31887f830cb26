package utils

import (
	"bytes"
	"io"
	"sync"
)

// StagedWriter buffers output until Commit, so a failed run never leaves a partial report behind.
type StagedWriter struct {
	destination io.Writer
	buffer      bytes.Buffer
	mutex       sync.Mutex
}

// NewStagedWriter wraps the destination writer.
func NewStagedWriter(destination io.Writer) *StagedWriter {
	return &StagedWriter{destination: destination}
}

// Write appends data to the staging buffer.
func (stagedWriter *StagedWriter) Write(data []byte) (int, error) {
	stagedWriter.mutex.Lock()
	defer stagedWriter.mutex.Unlock()
	return stagedWriter.buffer.Write(data)
}

// Commit copies staged data to the destination and flushes it when the destination supports flushing.
func (stagedWriter *StagedWriter) Commit() error {
	stagedWriter.mutex.Lock()
	defer stagedWriter.mutex.Unlock()

	if stagedWriter.destination == nil || stagedWriter.buffer.Len() == 0 {
		stagedWriter.buffer.Reset()
		return nil
	}

	if _, writeError := stagedWriter.buffer.WriteTo(stagedWriter.destination); writeError != nil {
		return writeError
	}

	if flushableWriter, implementsFlush := stagedWriter.destination.(interface{ Flush() error }); implementsFlush {
		return flushableWriter.Flush()
	}
	return nil
}

// Discard drops staged data.
func (stagedWriter *StagedWriter) Discard() {
	stagedWriter.mutex.Lock()
	defer stagedWriter.mutex.Unlock()
	stagedWriter.buffer.Reset()
}
