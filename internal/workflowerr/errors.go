package workflowerr

import (
	"errors"
	"fmt"
	"strings"

	"eventkernel/internal/eventmodel"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
	ErrExternal      = errors.New("external collaborator error")
	ErrLockTimeout   = errors.New("lock timeout")
)

// Kind captures the taxonomy of workflow errors.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindNotFound      Kind = "not_found"
	KindTimeout       Kind = "timeout"
	KindTransient     Kind = "transient"
	KindExternal      Kind = "external"
	KindLockTimeout   Kind = "lock_timeout"
)

// WorkflowError provides structured error context for turn/step failures.
type WorkflowError struct {
	Marker    error
	Kind      Kind
	Step      int
	Operation string
	Message   string
	Code      string
	Hint      string
	Cause     error
}

func (e *WorkflowError) Error() string {
	if e == nil {
		return ""
	}
	detail := buildDetail(e.Step, e.Operation, e.Message)
	if detail == "" {
		detail = "workflow failure"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", detail, e.Cause)
	}
	return detail
}

func (e *WorkflowError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *WorkflowError) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	if e.Marker != nil && errors.Is(e.Marker, target) {
		return true
	}
	return errors.Is(e.Cause, target)
}

type wrapOption func(*WorkflowError)

// WithCode attaches a stable error code to the resulting error.
func WithCode(code string) wrapOption {
	return func(err *WorkflowError) {
		if err != nil {
			err.Code = strings.TrimSpace(code)
		}
	}
}

// WithHint attaches a short recovery hint to the resulting error.
func WithHint(hint string) wrapOption {
	return func(err *WorkflowError) {
		if err != nil {
			err.Hint = strings.TrimSpace(hint)
		}
	}
}

// Wrap builds an error tagged with the provided marker and step/operation
// context for later classification via FailureStatus.
func Wrap(marker error, step int, operation, message string, cause error, opts ...wrapOption) error {
	if marker == nil {
		marker = ErrTransient
	}
	kind, code := classifyMarker(marker)
	werr := &WorkflowError{
		Marker:    marker,
		Kind:      kind,
		Step:      step,
		Operation: strings.TrimSpace(operation),
		Message:   strings.TrimSpace(message),
		Code:      code,
		Cause:     cause,
	}
	for _, opt := range opts {
		opt(werr)
	}
	return werr
}

// FailureStatus maps a turn/step error to the thread state the turn runner
// should persist after the failure, per spec §7's error table: unhandled
// step-handler exceptions escalate to manager review; everything else is
// left for the caller to retry on the next message.
func FailureStatus(err error) eventmodel.ThreadState {
	switch {
	case errors.Is(err, ErrLockTimeout), errors.Is(err, ErrTimeout), errors.Is(err, ErrTransient), errors.Is(err, ErrExternal):
		return eventmodel.ThreadInProgress
	default:
		return eventmodel.ThreadAwaitingManagerReview
	}
}

// IsRetryable reports whether the caller may simply retry the turn (lock
// timeouts and other transient conditions) rather than needing manager review.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrTransient)
}

func buildDetail(step int, operation, message string) string {
	parts := make([]string, 0, 3)
	if step > 0 {
		parts = append(parts, fmt.Sprintf("step %d", step))
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "workflow failure"
	}
	return strings.Join(parts, ": ")
}

func classifyMarker(marker error) (Kind, string) {
	switch {
	case errors.Is(marker, ErrValidation):
		return KindValidation, "E_VALIDATION"
	case errors.Is(marker, ErrConfiguration):
		return KindConfiguration, "E_CONFIGURATION"
	case errors.Is(marker, ErrNotFound):
		return KindNotFound, "E_NOT_FOUND"
	case errors.Is(marker, ErrTimeout):
		return KindTimeout, "E_TIMEOUT"
	case errors.Is(marker, ErrExternal):
		return KindExternal, "E_EXTERNAL"
	case errors.Is(marker, ErrLockTimeout):
		return KindLockTimeout, "E_LOCK_TIMEOUT"
	case errors.Is(marker, ErrTransient):
		return KindTransient, "E_TRANSIENT"
	default:
		return KindTransient, "E_TRANSIENT"
	}
}
