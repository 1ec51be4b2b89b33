package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeRecoveryNotice = "auth:recovery_notice"
)

// RecoveryNoticePayload carries a freshly issued password-recovery code to
// whatever delivery channel is plugged into the worker.
type RecoveryNoticePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Code   string    `json:"code"`
}

func NewRecoveryNoticeTask(payload RecoveryNoticePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecoveryNotice, data), nil
}
