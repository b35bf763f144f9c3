package types

import "fmt"

// ValidationError reports a malformed or missing batch field. A single
// validation error invalidates the whole batch before anything executes.
type ValidationError struct {
	TxId string
	Msg  string
}

func NewValidationError(txId, msg string) error {
	return &ValidationError{TxId: txId, Msg: msg}
}

func (e *ValidationError) Error() string {
	if e.TxId == "" {
		return e.Msg
	}

	return fmt.Sprintf("transaction %s: %s", e.TxId, e.Msg)
}

// ConversionError reports a failed USD to token-unit conversion, either an
// unsupported chain or an unavailable price.
type ConversionError struct {
	Msg string
}

func NewConversionError(format string, args ...interface{}) error {
	return &ConversionError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConversionError) Error() string {
	return e.Msg
}

// ConnectionError reports a chain whose RPC endpoint is missing or cannot be
// dialed. It is fatal for every transaction on that chain.
type ConnectionError struct {
	ChainId int64
	Msg     string
}

func NewConnectionError(chainId int64, format string, args ...interface{}) error {
	return &ConnectionError{ChainId: chainId, Msg: fmt.Sprintf(format, args...)}
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("chain %d: %s", e.ChainId, e.Msg)
}

// ExecutionError reports a rejected backend call. It is local to one
// transaction but terminal for the batch.
type ExecutionError struct {
	TxId string
	Msg  string
}

func NewExecutionError(txId, msg string) error {
	return &ExecutionError{TxId: txId, Msg: msg}
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.TxId, e.Msg)
}
