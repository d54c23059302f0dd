package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDesignMessage(t *testing.T) {
	msg, err := ComposeDesignMessage("W3K8ZQ12", "https://plan.example/resume/W3K8ZQ12", Request{
		To:         "Alex <alex@example.com>",
		SenderName: "Sam",
		Note:       "What do you think of the oak doors?",
	})
	require.NoError(t, err)

	assert.Equal(t, "alex@example.com", msg.To)
	assert.Equal(t, "Sam shared wardrobe design W3K8ZQ12", msg.Subject)
	assert.Contains(t, msg.Body, "Design code: W3K8ZQ12")
	assert.Contains(t, msg.Body, "https://plan.example/resume/W3K8ZQ12")
	assert.Contains(t, msg.Body, "oak doors")
}

func TestComposeDesignMessage_DefaultSender(t *testing.T) {
	msg, err := ComposeDesignMessage("WAAAAAAA", "http://x/resume/WAAAAAAA", Request{To: "a@b.co"})
	require.NoError(t, err)
	assert.Contains(t, msg.Subject, "Someone")
}

func TestComposeDesignMessage_InvalidRecipient(t *testing.T) {
	_, err := ComposeDesignMessage("WAAAAAAA", "", Request{To: "not an address"})
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}
