package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
)

type fakeSES struct {
	inputs  []*ses.SendEmailInput
	sendErr error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.inputs = append(f.inputs, in)
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestMailerSend(t *testing.T) {
	fake := &fakeSES{}
	m, err := New(fake, "concierge@example.com", logger.NewNoOpLogger())
	require.NoError(t, err)

	require.NoError(t, m.Send(context.Background(), "diner@example.com", "Your restaurant recommendation", "Hello!"))

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "concierge@example.com", aws.ToString(in.Source))
	assert.Equal(t, []string{"diner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Your restaurant recommendation", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "UTF-8", aws.ToString(in.Message.Body.Text.Charset))
}

func TestMailerRejectsBadRecipient(t *testing.T) {
	m, err := New(&fakeSES{}, "concierge@example.com", logger.NewNoOpLogger())
	require.NoError(t, err)

	assert.Error(t, m.Send(context.Background(), "not-an-address", "s", "b"))
}

func TestMailerRejectsBadSender(t *testing.T) {
	_, err := New(&fakeSES{}, "", logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestMailerTransportError(t *testing.T) {
	fake := &fakeSES{sendErr: errors.New("throttled")}
	m, err := New(fake, "concierge@example.com", logger.NewNoOpLogger())
	require.NoError(t, err)

	assert.Error(t, m.Send(context.Background(), "diner@example.com", "s", "b"))
}
