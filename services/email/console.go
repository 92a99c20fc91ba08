package emailsvc

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/elimuhq/elimu/core"
)

type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool

	// sent messages are recorded when running in test mode
	recordSent bool
	mu         sync.Mutex
	sent       []core.EmailMessage
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) *consoleService {
	return &consoleService{
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

// NewConsoleServiceMock records messages instead of printing them.
func NewConsoleServiceMock(conf *core.Config) *consoleService {
	svc := NewConsoleService(conf)
	svc.recordSent = true
	svc.disableOutput = true
	return svc
}

func (svc *consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if svc.recordSent {
			// synchronous in mock mode so tests can assert SentMessages
			svc.sendMessage(msg)
			continue
		}
		go svc.sendMessage(msg)
	}
}

func (svc *consoleService) sendMessage(msg *core.EmailMessage) {
	if err := msg.Render(); err != nil {
		log.Printf("%+v", errors.Wrap(err, "rendering email"))
		return
	}
	if msg.HasRecipients() && msg.HasContent() {
		svc.send(*msg)
	}
}

func (svc *consoleService) send(msg core.EmailMessage) {
	if svc.recordSent {
		svc.mu.Lock()
		svc.sent = append(svc.sent, msg)
		svc.mu.Unlock()
	}
	if svc.disableOutput {
		return
	}

	var sb strings.Builder
	sb.WriteString("From: " + svc.defaultFromEmail.String() + "\n")
	tos := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		tos = append(tos, to.String())
	}
	sb.WriteString("To: " + strings.Join(tos, ", ") + "\n")
	sb.WriteString("Subject: " + svc.subjPrefix + msg.Subject + "\n")
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\n\n")
	sb.WriteString(msg.TextContent + "\n")
	fmt.Println(sb.String())
}

// SentMessages returns the recorded messages (mock mode only).
func (svc *consoleService) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.EmailMessage(nil), svc.sent...)
}
