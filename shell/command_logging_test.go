package shell_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslib/loanledger-go/features/command/removeasset"
	"github.com/campuslib/loanledger-go/shell"
)

func Test_ObserveCommand_Success_LogsStartAndCompletionWithCommandType(t *testing.T) {
	// setup
	spy := newLoggerSpy()
	command := removeasset.BuildCommand(uuid.New(), "staff:catalog", time.Now())

	// act
	err := shell.ObserveCommand(spy, command, func() error {
		return nil
	})

	// assert
	require.NoError(t, err)
	require.Len(t, spy.entries, 2)

	started := spy.entries[0]
	assert.Equal(t, shell.LogMsgCommandStarted, started.msg)
	assert.Equal(t, command.CommandType(), started.attr(shell.LogAttrCommandType))

	completed := spy.entries[1]
	assert.Equal(t, shell.LogMsgCommandCompleted, completed.msg)
	assert.Equal(t, command.CommandType(), completed.attr(shell.LogAttrCommandType))
	assert.Contains(t, completed.keys(), shell.LogAttrDurationMS)
}

func Test_ObserveCommand_Failure_LogsErrorAndReturnsItUnchanged(t *testing.T) {
	// setup
	spy := newLoggerSpy()
	command := removeasset.BuildCommand(uuid.New(), "staff:catalog", time.Now())
	executeErr := errors.New("asset is gone")

	// act
	err := shell.ObserveCommand(spy, command, func() error {
		return executeErr
	})

	// assert
	require.ErrorIs(t, err, executeErr)
	require.Len(t, spy.entries, 2)

	failed := spy.entries[1]
	assert.Equal(t, shell.LogMsgCommandFailed, failed.msg)
	assert.Equal(t, command.CommandType(), failed.attr(shell.LogAttrCommandType))
	assert.Equal(t, executeErr.Error(), failed.attr(shell.LogAttrError))
}

/*** test helpers ***/

type logEntry struct {
	msg  string
	args []any
}

func (e logEntry) attr(key string) any {
	for i := 0; i+1 < len(e.args); i += 2 {
		if e.args[i] == key {
			return e.args[i+1]
		}
	}

	return nil
}

func (e logEntry) keys() []string {
	keys := make([]string, 0, len(e.args)/2)
	for i := 0; i+1 < len(e.args); i += 2 {
		if key, ok := e.args[i].(string); ok {
			keys = append(keys, key)
		}
	}

	return keys
}

// loggerSpy captures log calls for assertions.
type loggerSpy struct {
	entries []logEntry
}

func newLoggerSpy() *loggerSpy {
	return &loggerSpy{}
}

func (s *loggerSpy) Debug(msg string, args ...any) { s.record(msg, args) }
func (s *loggerSpy) Info(msg string, args ...any)  { s.record(msg, args) }
func (s *loggerSpy) Warn(msg string, args ...any)  { s.record(msg, args) }
func (s *loggerSpy) Error(msg string, args ...any) { s.record(msg, args) }

func (s *loggerSpy) record(msg string, args []any) {
	s.entries = append(s.entries, logEntry{msg: msg, args: args})
}
