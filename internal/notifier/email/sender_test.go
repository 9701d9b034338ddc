package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/dtroode/userkeeper-server/internal/config"
	"github.com/dtroode/userkeeper-server/internal/testutil"
)

type fakeMailClient struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeMailClient) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return f.err
}

func TestSender_Send(t *testing.T) {
	client := &fakeMailClient{}
	s := NewSender(client, "noreply@userkeeper.local", testutil.MakeNoopLogger())

	err := s.Send(context.Background(), "a@x.com", "Welcome!", "Thank you for registering.")
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	rcpts, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, rcpts)
	assert.Equal(t, []string{"Welcome!"}, msg.GetGenHeader(mail.HeaderSubject))
}

func TestSender_Send_PropagatesError(t *testing.T) {
	cause := errors.New("connection refused")
	client := &fakeMailClient{err: cause}
	s := NewSender(client, "noreply@userkeeper.local", testutil.MakeNoopLogger())

	err := s.Send(context.Background(), "a@x.com", "Welcome!", "Thank you for registering.")
	assert.Same(t, cause, err)
}

func TestSender_Send_InvalidRecipient(t *testing.T) {
	client := &fakeMailClient{}
	s := NewSender(client, "noreply@userkeeper.local", testutil.MakeNoopLogger())

	err := s.Send(context.Background(), "not an address", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient address")
	assert.Empty(t, client.sent)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(config.SMTP{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	assert.NotNil(t, client)

	client, err = NewClient(config.SMTP{Host: "smtp.example.com", Port: 587, TLS: true, Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
