// Package mailer delivers recommendation results as plain-text email.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	cerrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
)

const charsetUTF8 = "UTF-8"

type sesAPI interface {
	SendEmail(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Mailer sends plain-text mail from a fixed configured sender.
type Mailer struct {
	client sesAPI
	sender string
	logger logger.Logger
}

func New(client sesAPI, sender string, log logger.Logger) (*Mailer, error) {
	if client == nil {
		return nil, fmt.Errorf("mailer: SES client is required")
	}
	if !isValidEmail(sender) {
		return nil, fmt.Errorf("mailer: invalid sender address %q", sender)
	}
	return &Mailer{
		client: client,
		sender: sender,
		logger: log.WithFields(map[string]interface{}{"component": "mailer"}),
	}, nil
}

// Send delivers one plain-text message to a single recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !isValidEmail(to) {
		return fmt.Errorf("mailer: invalid recipient address %q", to)
	}

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String(charsetUTF8),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Charset: aws.String(charsetUTF8),
					Data:    aws.String(body),
				},
			},
		},
	})
	if err != nil {
		return cerrors.NewEmailSendFailedError(err)
	}

	m.logger.Info("email sent", map[string]interface{}{
		"to":        to,
		"messageId": aws.ToString(out.MessageId),
	})
	return nil
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}
