package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Notifier delivers a recovery code to a user. Mail transport lives outside
// this service; the default implementation only records the dispatch.
type Notifier interface {
	SendRecoveryCode(ctx context.Context, email, code string) error
}

// LogNotifier writes the dispatch to the log instead of sending anything.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) SendRecoveryCode(ctx context.Context, email, code string) error {
	n.Logger.Info("password recovery code issued", "email", email)
	return nil
}

type Handler struct {
	notifier Notifier
	logger   *slog.Logger
}

func NewHandler(notifier Notifier, logger *slog.Logger) *Handler {
	return &Handler{notifier: notifier, logger: logger}
}

func (h *Handler) HandleRecoveryNotice(ctx context.Context, t *asynq.Task) error {
	var payload RecoveryNoticePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshaling recovery notice payload: %w", err)
	}

	h.logger.Debug("dispatching recovery notice", "user_id", payload.UserID)

	if err := h.notifier.SendRecoveryCode(ctx, payload.Email, payload.Code); err != nil {
		return fmt.Errorf("sending recovery code: %w", err)
	}

	return nil
}
