package chatgateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
)

// fallbackReply is returned when the dialog engine has nothing to say.
const fallbackReply = "Sorry, I didn't understand that."

type Service struct {
	config *Config
	lex    lexAPI
	logger logger.Logger
}

func NewService(config *Config, lex lexAPI, log logger.Logger) *Service {
	return &Service{
		config: config,
		lex:    lex,
		logger: log.WithFields(map[string]interface{}{"component": "chat-gateway"}),
	}
}

// Reply forwards one utterance to the dialog engine and returns its first
// reply, or the fallback when the engine produced none.
func (s *Service) Reply(ctx context.Context, sessionID, text string) (string, error) {
	out, err := s.lex.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
		BotId:      aws.String(s.config.BotID),
		BotAliasId: aws.String(s.config.BotAliasID),
		LocaleId:   aws.String(s.config.LocaleID),
		SessionId:  aws.String(sessionID),
		Text:       aws.String(text),
	})
	if err != nil {
		return "", errors.NewDialogEngineFailedError(err)
	}

	if len(out.Messages) == 0 || out.Messages[0].Content == nil {
		s.logger.Debug("dialog engine returned no messages", map[string]interface{}{
			"sessionId": sessionID,
		})
		return fallbackReply, nil
	}

	return aws.ToString(out.Messages[0].Content), nil
}
