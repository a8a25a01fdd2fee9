package utils_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgebridge/forgebridge/internal/utils"
)

const testFlushingWriterPayloadConstant = "Delete 1 local branch(es)? [y/N]: "

// flushRecordingWriter counts flush invocations so tests can assert flushing behavior.
type flushRecordingWriter struct {
	buffer     bytes.Buffer
	flushCount int
	flushError error
}

func (writer *flushRecordingWriter) Write(data []byte) (int, error) {
	return writer.buffer.Write(data)
}

func (writer *flushRecordingWriter) Flush() error {
	writer.flushCount++
	return writer.flushError
}

func TestFlushingWriterFlushesAfterEachWrite(testInstance *testing.T) {
	underlyingWriter := &flushRecordingWriter{}
	flushingWriter := utils.NewFlushingWriter(underlyingWriter)

	bytesWritten, writeError := flushingWriter.Write([]byte(testFlushingWriterPayloadConstant))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len(testFlushingWriterPayloadConstant), bytesWritten)
	require.Equal(testInstance, testFlushingWriterPayloadConstant, underlyingWriter.buffer.String())
	require.Equal(testInstance, 1, underlyingWriter.flushCount)
}

func TestFlushingWriterReportsFlushFailures(testInstance *testing.T) {
	flushError := errors.New("flush failed")
	underlyingWriter := &flushRecordingWriter{flushError: flushError}
	flushingWriter := utils.NewFlushingWriter(underlyingWriter)

	_, writeError := flushingWriter.Write([]byte(testFlushingWriterPayloadConstant))
	require.ErrorIs(testInstance, writeError, flushError)
}

func TestFlushingWriterPassesThroughPlainWriters(testInstance *testing.T) {
	plainBuffer := &bytes.Buffer{}
	flushingWriter := utils.NewFlushingWriter(plainBuffer)

	_, writeError := flushingWriter.Write([]byte(testFlushingWriterPayloadConstant))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, testFlushingWriterPayloadConstant, plainBuffer.String())
}

func TestFlushingWriterDoesNotRewrapItself(testInstance *testing.T) {
	underlyingWriter := &flushRecordingWriter{}
	wrappedOnce := utils.NewFlushingWriter(underlyingWriter)
	wrappedTwice := utils.NewFlushingWriter(wrappedOnce)
	require.Same(testInstance, wrappedOnce, wrappedTwice)
}
