package service

import (
	"context"

	"github.com/alexanderramin/haven/internal/domain"
)

type chatService struct {
	api     ChatAPI
	session SessionReader
}

func NewChatService(client ChatAPI, session SessionReader) ChatService {
	return &chatService{api: client, session: session}
}

// Send uses the personalized endpoint when signed in and the public one
// otherwise.
func (s *chatService) Send(ctx context.Context, text string) (*domain.ChatReply, error) {
	userID, err := s.session.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return s.api.ChatPublic(ctx, text)
	}
	return s.api.Chat(ctx, text)
}
