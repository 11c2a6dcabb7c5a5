package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"sync"

	"crewhub/internal/logs"
	"crewhub/internal/models"
)

// Notification — письмо "получатель + шаблон + код".
type Notification struct {
	To       string
	Template string // models.PurposeActivate | models.PurposeRecover
	Code     string
}

// Sender умеет доставить одно уведомление.
type Sender interface {
	Send(n Notification) error
}

// SMTPSender шлёт через внутренний релей без аутентификации.
type SMTPSender struct {
	Host    string
	Port    string
	From    string
	BaseURL string
}

func (s *SMTPSender) Send(n Notification) error {
	subject, body := render(n, s.BaseURL)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.From, n.To, subject, body)
	return smtp.SendMail(net.JoinHostPort(s.Host, s.Port), nil, s.From, []string{n.To}, []byte(msg))
}

// LogSender — для dev/test: письмо целиком уходит в лог.
type LogSender struct{}

func (LogSender) Send(n Notification) error {
	logs.Logger.Infof("mail (dry-run): to=%s template=%s code=%s", n.To, n.Template, n.Code)
	return nil
}

func render(n Notification, baseURL string) (subject, body string) {
	switch n.Template {
	case models.PurposeRecover:
		return "CrewHub || Password reset",
			fmt.Sprintf("A password reset was requested for your account.\n"+
				"Follow %s/reset-pass?code=%s to choose a new password.\n"+
				"If this wasn't you, contact a system administrator.", baseURL, n.Code)
	default:
		return "CrewHub || Enable your account",
			fmt.Sprintf("Your account was created.\n"+
				"Open %s/enable-acc?code=%s to activate it.", baseURL, n.Code)
	}
}

// Dispatcher — ограниченная очередь с одним воркером. Запрос никогда не
// ждёт доставку; провал доставки уходит в лог и не становится ошибкой
// запроса.
type Dispatcher struct {
	sender Sender
	queue  chan Notification
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(sender Sender, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{sender: sender, queue: make(chan Notification, buffer)}
	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		if err := d.sender.Send(n); err != nil {
			logs.Logger.Errorf("mail delivery failed: to=%s template=%s: %v", n.To, n.Template, err)
		}
	}
}

// Enqueue не блокируется: при переполненной очереди уведомление
// отбрасывается с записью в лог.
func (d *Dispatcher) Enqueue(n Notification) {
	select {
	case d.queue <- n:
	default:
		logs.Logger.Warnf("mail queue full, dropping: to=%s template=%s", n.To, n.Template)
	}
}

// Close дожидается доставки уже поставленного в очередь.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}
