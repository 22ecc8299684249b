package email

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	failures int
	calls    int
	sent     []*gomail.Message
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection refused")
	}
	f.sent = append(f.sent, m...)
	return nil
}

func testSMTP() config.SMTPConfig {
	return config.SMTPConfig{Host: "smtp.test", Port: 587, From: "ponto@empresa.com.br"}
}

func TestSendAlertDigest_RendersAlerts(t *testing.T) {
	d := &fakeDialer{}
	svc, err := newEmailService(testSMTP(), d)
	require.NoError(t, err)

	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	err = svc.SendAlertDigest([]string{"rh@empresa.com.br"}, date, []AlertLine{
		{FullName: "Maria Souza", Kind: "Jornada acima de 10 horas", Worked: "10:12"},
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	var buf bytes.Buffer
	_, err = d.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "Maria Souza")
	assert.Contains(t, raw, "14/10/2026")
	assert.Equal(t, []string{"rh@empresa.com.br"}, d.sent[0].GetHeader("To"))
}

func TestSendAlertDigest_NothingToSend(t *testing.T) {
	d := &fakeDialer{}
	svc, err := newEmailService(testSMTP(), d)
	require.NoError(t, err)

	require.NoError(t, svc.SendAlertDigest(nil, time.Now(), []AlertLine{{FullName: "x"}}))
	require.NoError(t, svc.SendAlertDigest([]string{"rh@empresa.com.br"}, time.Now(), nil))
	assert.Equal(t, 0, d.calls)
}

func TestSendAlertDigest_RetriesThenFails(t *testing.T) {
	d := &fakeDialer{failures: maxRetries}
	svc, err := newEmailService(testSMTP(), d)
	require.NoError(t, err)
	svc.backoff = time.Millisecond

	err = svc.SendAlertDigest([]string{"rh@empresa.com.br"}, time.Now(), []AlertLine{{FullName: "x"}})
	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Equal(t, maxRetries, d.calls)
}

func TestSendAlertDigest_SkipsWithoutHost(t *testing.T) {
	d := &fakeDialer{}
	svc, err := newEmailService(config.SMTPConfig{}, d)
	require.NoError(t, err)

	require.NoError(t, svc.SendAlertDigest([]string{"rh@empresa.com.br"}, time.Now(), []AlertLine{{FullName: "x"}}))
	assert.Equal(t, 0, d.calls)
}
