package notifications

import (
	"context"
	"mime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/parkops/events-backend/pkg/queue"
)

func TestSMTPMailer_Format(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@parques.example", FromName: "Eventos"})
	assert.Equal(t, "smtp.example.com:587", m.addr)
	assert.Nil(t, m.auth)

	raw := string(m.format(Message{To: "ana@example.com", Subject: "Hola", Body: "Cuerpo"}))
	assert.True(t, strings.HasPrefix(raw, "From: Eventos <no-reply@parques.example>\r\n"))
	assert.Contains(t, raw, "To: ana@example.com\r\n")
	assert.Contains(t, raw, "Subject: Hola\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nCuerpo"))

	withAuth := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, User: "u", Pass: "p"})
	assert.NotNil(t, withAuth.auth)
}

func TestSMTPMailer_FormatKeepsHeadersOnOneLine(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "no-reply@parques.example", FromName: "Parques\r\nX-Evil: 1"})
	msg := confirmationMessage(queue.NotificationPayload{
		EventTitle:     "Feria\r\nBcc: someone@example.com",
		RecipientName:  "Ana",
		RecipientEmail: "ana@example.com\nCc: other@example.com",
		RegistrationID: 9,
		AttendeeCount:  1,
	})
	raw := string(m.format(msg))
	head, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)

	lines := strings.Split(head, "\r\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.NotContains(t, line, "\n")
		assert.NotContains(t, line, "\r")
		assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
		assert.False(t, strings.HasPrefix(line, "Cc:"), line)
		assert.False(t, strings.HasPrefix(line, "X-Evil:"), line)
	}
	assert.Contains(t, body, "Ana")

	subject := strings.TrimPrefix(lines[2], "Subject: ")
	require.NotEqual(t, lines[2], subject)
	assert.True(t, strings.HasPrefix(subject, "=?utf-8?q?"), subject)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject)
	require.NoError(t, err)
	assert.Equal(t, "Inscripción confirmada: Feria Bcc: someone@example.com", decoded)
}

func TestSMTPMailer_FormatLeavesASCIISubjectAlone(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "a@example.com"})
	raw := string(m.format(Message{To: "b@example.com", Subject: "Plain subject", Body: "x"}))
	assert.Contains(t, raw, "Subject: Plain subject\r\n")
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, Message{To: "x@example.com"}), context.Canceled)
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLogMailer(zap.New(core))
	assert.NoError(t, m.Send(context.Background(), Message{To: "ana@example.com", Subject: "Hola"}))
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "ana@example.com", entries[0].ContextMap()["to"])
	}
}
