package mock

import (
	"context"

	"github.com/papergrade/papergrade"
)

var _ papergrade.ChatService = (*ChatService)(nil)

// ChatService is a mock implementation of papergrade.ChatService.
type ChatService struct {
	CreateCompletionFn func(ctx context.Context, messages []papergrade.Message) (string, error)
}

func (c *ChatService) CreateCompletion(ctx context.Context, messages []papergrade.Message) (string, error) {
	return c.CreateCompletionFn(ctx, messages)
}
