package shell

import (
	"time"
)

const (
	// LogMsgCommandStarted is logged when command processing begins.
	LogMsgCommandStarted = "command handler started"
	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command handler completed"
	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"
	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"
	// LogAttrError contains error details.
	LogAttrError = "error"
)

// Command is implemented by every command payload and names the operation
// for logs.
type Command interface {
	CommandType() string
}

// ObserveCommand decorates one command execution with start/outcome logging,
// labeled with the command type and duration. The error of execute is
// returned unchanged, failed business rules included.
func ObserveCommand(logger Logger, command Command, execute func() error) error {
	commandType := command.CommandType()
	start := time.Now()

	logger.Info(LogMsgCommandStarted, LogAttrCommandType, commandType)

	err := execute()
	durationMS := float64(time.Since(start)) / float64(time.Millisecond)

	if err != nil {
		logger.Error(LogMsgCommandFailed,
			LogAttrCommandType, commandType,
			LogAttrDurationMS, durationMS,
			LogAttrError, err.Error())

		return err
	}

	logger.Info(LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrDurationMS, durationMS)

	return nil
}
