package mailer

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewhub/internal/models"
)

type captureSender struct {
	mu   sync.Mutex
	sent []Notification
	fail bool
}

func (c *captureSender) Send(n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("relay down")
	}
	c.sent = append(c.sent, n)
	return nil
}

func (c *captureSender) all() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.sent...)
}

func TestDispatcherDeliversQueued(t *testing.T) {
	t.Parallel()
	sender := &captureSender{}
	d := NewDispatcher(sender, 8)

	d.Enqueue(Notification{To: "a@crewhub.local", Template: models.PurposeActivate, Code: "c1"})
	d.Enqueue(Notification{To: "b@crewhub.local", Template: models.PurposeRecover, Code: "c2"})
	d.Close()

	sent := sender.all()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@crewhub.local", sent[0].To)
	assert.Equal(t, models.PurposeRecover, sent[1].Template)
}

func TestDispatcherSwallowsDeliveryFailure(t *testing.T) {
	t.Parallel()
	sender := &captureSender{fail: true}
	d := NewDispatcher(sender, 8)

	// Провал доставки не должен ни паниковать, ни блокировать Close.
	d.Enqueue(Notification{To: "a@crewhub.local", Template: models.PurposeActivate, Code: "c1"})
	d.Close()

	assert.Empty(t, sender.all())
}

func TestRenderTemplates(t *testing.T) {
	t.Parallel()

	subject, body := render(Notification{Template: models.PurposeActivate, Code: "abc"}, "http://hub")
	assert.Contains(t, subject, "Enable")
	assert.Contains(t, body, "http://hub/enable-acc?code=abc")

	subject, body = render(Notification{Template: models.PurposeRecover, Code: "xyz"}, "http://hub")
	assert.Contains(t, subject, "Password reset")
	assert.Contains(t, body, "http://hub/reset-pass?code=xyz")
}
