package eventapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"eventkernel/internal/eventmodel"
	"eventkernel/internal/hil"
	"eventkernel/internal/turn"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"service": "eventkernel", "status": "ok"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"endpoints": []string{
			"POST /api/start-conversation",
			"POST /api/send-message",
			"POST /api/tasks/{task_id}/approve",
			"POST /api/tasks/{task_id}/reject",
			"GET /api/tasks/pending",
			"POST /api/events/{event_id}/pay-deposit",
			"GET /health",
		},
	})
}

type startConversationRequest struct {
	EmailBody string `json:"email_body"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name,omitempty"`
}

func (s *Server) handleStartConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req startConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.FromEmail) == "" || strings.TrimSpace(req.EmailBody) == "" {
		s.writeError(w, http.StatusBadRequest, "from_email and email_body are required")
		return
	}

	outcome, err := s.runner.Handle(r.Context(), turn.Inbound{
		TenantID:    s.tenantID(r),
		ClientEmail: req.FromEmail,
		ThreadID:    "",
		MessageText: req.EmailBody,
	})
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, outcomeResponse(outcome))
}

type sendMessageRequest struct {
	MsgID     string         `json:"msg_id,omitempty"`
	FromEmail string         `json:"from_email"`
	Subject   string         `json:"subject,omitempty"`
	Body      string         `json:"body"`
	TS        string         `json:"ts,omitempty"`
	ThreadID  string         `json:"thread_id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	EventID   string         `json:"event_id,omitempty"`
	Extras    map[string]any `json:"extras,omitempty"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.FromEmail) == "" || strings.TrimSpace(req.Body) == "" {
		s.writeError(w, http.StatusBadRequest, "from_email and body are required")
		return
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = req.SessionID
	}

	outcome, err := s.runner.Handle(r.Context(), turn.Inbound{
		TenantID:    s.tenantID(r),
		ClientEmail: req.FromEmail,
		ThreadID:    threadID,
		MessageText: req.Body,
		UserInfo:    req.Extras,
	})
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, outcomeResponse(outcome))
}

func outcomeResponse(outcome turn.Outcome) map[string]any {
	return map[string]any{
		"event_id":               outcome.EventID,
		"created":                outcome.Created,
		"draft_body":             outcome.DraftBody,
		"topic":                  outcome.Topic,
		"requires_approval":      outcome.RequiresApproval,
		"manual_review_task_id":  outcome.ManualReviewTaskID,
		"thread_state":           outcome.ThreadState,
	}
}

func (s *Server) writeTurnError(w http.ResponseWriter, err error) {
	// A lock timeout is spec §7's one explicitly retryable turn failure;
	// everything else the caller should treat as a hard failure of this turn.
	if werr, ok := asWorkflowError(err); ok && werr.Kind == "lock_timeout" {
		s.writeError(w, http.StatusServiceUnavailable, "lock_timeout: try again shortly")
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

type decisionRequest struct {
	ManagerNotes  string `json:"manager_notes,omitempty"`
	EditedMessage string `json:"edited_message,omitempty"`
}

// handleTaskDecision routes /api/tasks/{task_id}/approve and .../reject.
func (s *Server) handleTaskDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	taskID, action, ok := splitTaskAction(r.URL.Path)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown task route")
		return
	}

	var req decisionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var reply hil.Reply
	var decisionErr error
	err := s.store.WithLock(r.Context(), s.tenantID(r), func(db *eventmodel.Database) (bool, error) {
		now := time.Now().UTC()
		switch action {
		case "approve":
			reply, decisionErr = hil.ApproveTask(db, taskID, now, req.ManagerNotes, req.EditedMessage)
		case "reject":
			reply, decisionErr = hil.RejectTask(db, taskID, now, req.ManagerNotes)
		default:
			decisionErr = errUnknownTaskAction
		}
		if decisionErr != nil {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	if decisionErr != nil {
		s.writeError(w, http.StatusNotFound, decisionErr.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handlePendingTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var pending []eventmodel.Task
	err := s.store.WithLock(r.Context(), s.tenantID(r), func(db *eventmodel.Database) (bool, error) {
		for _, task := range db.Tasks {
			if task.Status == eventmodel.TaskPending {
				pending = append(pending, task)
			}
		}
		return false, nil
	})
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tasks": pending})
}

// handlePayDeposit routes /api/events/{event_id}/pay-deposit, injecting the
// synthetic deposit-paid message spec §6 describes so the normal step
// handler path re-evaluates the confirmation gate.
func (s *Server) handlePayDeposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	eventID, ok := splitEventPayDeposit(r.URL.Path)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown event route")
		return
	}

	tenantID := s.tenantID(r)
	var (
		clientEmail string
		threadID    string
		found       bool
	)
	if err := s.store.WithLock(r.Context(), tenantID, func(db *eventmodel.Database) (bool, error) {
		idx := db.FindEventIndex(eventID)
		if idx < 0 {
			return false, nil
		}
		clientEmail = db.Events[idx].ClientEmail
		threadID = db.Events[idx].ThreadID
		found = true
		return false, nil
	}); err != nil {
		s.writeTurnError(w, err)
		return
	}
	if !found {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}

	outcome, err := s.runner.Handle(r.Context(), turn.Inbound{
		TenantID:    tenantID,
		ClientEmail: clientEmail,
		ThreadID:    threadID,
		MessageText: "I have paid the deposit.",
		UserInfo:    map[string]any{"deposit_just_paid": true, "event_id": eventID},
	})
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, outcomeResponse(outcome))
}

func splitTaskAction(path string) (taskID, action string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/api/tasks/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func splitEventPayDeposit(path string) (eventID string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/api/events/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "pay-deposit" {
		return "", false
	}
	return parts[0], true
}
