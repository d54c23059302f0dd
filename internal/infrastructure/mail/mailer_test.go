package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/share"
)

func TestLogMailer_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLogMailer(zap.New(core))

	err := m.Send(context.Background(), share.Message{To: "alex@example.com", Subject: "hi", Body: "Design code: WAAAAAAA"})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "alex@example.com", fields["to"])
	assert.Equal(t, "hi", fields["subject"])
}

func TestNewSMTPMailer_RequiresHost(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{Port: 587}, nil)
	assert.Error(t, err)
}

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "planner",
		Password: "secret",
		From:     "no-reply@example.com",
		TLS:      true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "no-reply@example.com", m.from)
}

func TestBuildMsg(t *testing.T) {
	gm, err := buildMsg("no-reply@example.com", share.Message{
		To:       "alex@example.com",
		Subject:  "Sam shared wardrobe design WAAAAAAA",
		Body:     "Design code: WAAAAAAA",
		HTMLBody: "<p>Design code: <b>WAAAAAAA</b></p>",
	})
	require.NoError(t, err)
	rcpts, err := gm.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"alex@example.com"}, rcpts)

	_, err = buildMsg("no-reply@example.com", share.Message{To: "nope"})
	assert.ErrorIs(t, err, share.ErrInvalidRecipient)

	_, err = buildMsg("", share.Message{To: "alex@example.com"})
	assert.Error(t, err)
}
