package core

// Notice levels, mirrored by UI toasts.
const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Notifier is any sink for user-facing notices (toasts, logs, webhooks...).
// It must never block the caller.
type Notifier interface {
	Notify(userID string, notice Notice)
}
