package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/papergrade/papergrade"
)

// Ensure LoggingChatService implements papergrade.ChatService.
var _ papergrade.ChatService = (*LoggingChatService)(nil)

// LoggingChatService wraps a ChatService with per-request logging.
type LoggingChatService struct {
	next   papergrade.ChatService
	logger *slog.Logger
}

// NewLoggingChatService creates a new LoggingChatService.
func NewLoggingChatService(next papergrade.ChatService, logger *slog.Logger) *LoggingChatService {
	return &LoggingChatService{next: next, logger: logger}
}

// CreateCompletion delegates to the wrapped service and logs the outcome.
func (s *LoggingChatService) CreateCompletion(ctx context.Context, messages []papergrade.Message) (string, error) {
	begin := time.Now()
	reply, err := s.next.CreateCompletion(ctx, messages)
	if err != nil {
		s.logger.Error("chat completion",
			"messages", len(messages),
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}
	s.logger.Info("chat completion",
		"messages", len(messages),
		"reply_bytes", len(reply),
		"duration", time.Since(begin),
	)
	return reply, nil
}
