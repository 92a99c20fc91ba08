package notifysvc

import (
	"sync"

	"github.com/labstack/gommon/log"

	"github.com/elimuhq/elimu/core"
)

// consoleNotifier logs notices to stdout. It stands in for a push /
// websocket delivery channel in development and tests.
type consoleNotifier struct {
	mutex      sync.Mutex
	recordSent bool
	sent       map[string][]core.Notice

	disableOutput bool
}

var _ core.Notifier = (*consoleNotifier)(nil)

func NewConsoleNotifier() *consoleNotifier {
	return &consoleNotifier{}
}

// NewConsoleNotifierMock records notices per user instead of printing them.
func NewConsoleNotifierMock() *consoleNotifier {
	return &consoleNotifier{
		recordSent:    true,
		sent:          make(map[string][]core.Notice),
		disableOutput: true,
	}
}

func (svc *consoleNotifier) Notify(userID string, notice core.Notice) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if svc.recordSent {
		svc.sent[userID] = append(svc.sent[userID], notice)
	}
	if !svc.disableOutput {
		log.Printf("notice for %s [%s]: %s", userID, notice.Level, notice.Message)
	}
}

func (svc *consoleNotifier) SentNotices(userID string) []core.Notice {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	return svc.sent[userID]
}
