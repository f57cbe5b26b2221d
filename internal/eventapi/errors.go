package eventapi

import (
	"errors"

	"eventkernel/internal/workflowerr"
)

var errUnknownTaskAction = errors.New("unknown task action: use approve or reject")

func asWorkflowError(err error) (*workflowerr.WorkflowError, bool) {
	var werr *workflowerr.WorkflowError
	if errors.As(err, &werr) {
		return werr, true
	}
	return nil, false
}
