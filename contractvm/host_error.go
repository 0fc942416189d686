// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import "fmt"

// ErrorCode classifies the fatal failures that abort an invocation.
type ErrorCode uint32

const (
	// ErrCodeTrap is an unclassified panic that escaped contract code.
	ErrCodeTrap ErrorCode = iota
	// ErrCodeTypeMismatch is raised when a Val or stored entry does not
	// have the statically expected kind.
	ErrCodeTypeMismatch
	// ErrCodeBadSymbol is raised for text that does not intern as a Symbol.
	ErrCodeBadSymbol
	// ErrCodeUnknownContract is raised when an invocation targets an
	// identifier with no registered or deployed contract behind it.
	ErrCodeUnknownContract
	// ErrCodeUnknownFunction is raised when the target contract does not
	// export the named function.
	ErrCodeUnknownFunction
	// ErrCodeMalformedValue is raised when stored or transmitted bytes do
	// not decode to a Val.
	ErrCodeMalformedValue
	// ErrCodeArithmetic is raised by the checked arithmetic helpers on
	// overflow or underflow.
	ErrCodeArithmetic
	// ErrCodeCallDepth is raised when the cross-contract call stack
	// exceeds its limit.
	ErrCodeCallDepth
	// ErrCodeReentry is raised when a contract already on the call stack
	// is invoked again.
	ErrCodeReentry
	// ErrCodeStorage is raised when the backing database fails.
	ErrCodeStorage
	// ErrCodeContract is a contract-defined abort; ContractCode carries
	// the contract's own error code.
	ErrCodeContract
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTrap:
		return "trap"
	case ErrCodeTypeMismatch:
		return "type mismatch"
	case ErrCodeBadSymbol:
		return "bad symbol"
	case ErrCodeUnknownContract:
		return "unknown contract"
	case ErrCodeUnknownFunction:
		return "unknown function"
	case ErrCodeMalformedValue:
		return "malformed value"
	case ErrCodeArithmetic:
		return "arithmetic overflow"
	case ErrCodeCallDepth:
		return "call depth exceeded"
	case ErrCodeReentry:
		return "re-entrant invocation"
	case ErrCodeStorage:
		return "storage failure"
	case ErrCodeContract:
		return "contract error"
	default:
		return fmt.Sprintf("error code %d", uint32(c))
	}
}

// HostError is the fatal failure of an invocation. Inside contract
// execution it travels as a panic value; Runtime.Invoke recovers it at the
// host boundary, rolls the invocation back, and returns it as an error.
type HostError struct {
	Code ErrorCode
	// ContractCode is set for ErrCodeContract aborts.
	ContractCode uint32
	Msg          string
	Wrapped      error
}

func (e *HostError) Error() string {
	switch {
	case e.Code == ErrCodeContract:
		return fmt.Sprintf("host error: %s #%d: %s", e.Code, e.ContractCode, e.Msg)
	case e.Msg == "":
		return fmt.Sprintf("host error: %s", e.Code)
	default:
		return fmt.Sprintf("host error: %s: %s", e.Code, e.Msg)
	}
}

func (e *HostError) Unwrap() error { return e.Wrapped }

// Abort raises a *HostError with [code]. It never returns.
func Abort(code ErrorCode, format string, args ...interface{}) {
	panic(&HostError{Code: code, Msg: fmt.Sprintf(format, args...)})
}

// asHostError converts an arbitrary recovered panic value to a *HostError.
// Anything that is not already a *HostError is treated as a contract trap.
func asHostError(r interface{}) *HostError {
	if hostErr, ok := r.(*HostError); ok {
		return hostErr
	}
	if err, ok := r.(error); ok {
		return &HostError{Code: ErrCodeTrap, Msg: err.Error(), Wrapped: err}
	}
	return &HostError{Code: ErrCodeTrap, Msg: fmt.Sprintf("%v", r)}
}

// IsHostError reports whether [err] is a *HostError with [code].
func IsHostError(err error, code ErrorCode) bool {
	hostErr, ok := err.(*HostError)
	return ok && hostErr.Code == code
}

// CheckedAddUint32 returns a+b, aborting the invocation on wraparound.
func CheckedAddUint32(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		Abort(ErrCodeArithmetic, "u32 add overflow: %d + %d", a, b)
	}
	return sum
}

// CheckedAddUint64 returns a+b, aborting the invocation on wraparound.
func CheckedAddUint64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		Abort(ErrCodeArithmetic, "u64 add overflow: %d + %d", a, b)
	}
	return sum
}

// CheckedSubUint64 returns a-b, aborting the invocation on underflow.
func CheckedSubUint64(a, b uint64) uint64 {
	if b > a {
		Abort(ErrCodeArithmetic, "u64 sub underflow: %d - %d", a, b)
	}
	return a - b
}
