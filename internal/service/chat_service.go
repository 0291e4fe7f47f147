package service

import (
	"context"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
	"github.com/Zuckmantra/dashboard-Camila/internal/repository"
)

const (
	defaultMessageLimit = 100
	defaultSessionLimit = 200
)

// ChatService fronts the chat read surface.
type ChatService struct {
	chats repository.ChatRepository
}

func NewChatService(chats repository.ChatRepository) *ChatService {
	return &ChatService{chats: chats}
}

func (s *ChatService) Messages(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	messages, err := s.chats.Messages(ctx, clampLimit(limit, defaultMessageLimit))
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return messages, nil
}

func (s *ChatService) HistoryBySession(ctx context.Context, sessionID string, limit int) ([]domain.ChatHistoryEntry, error) {
	entries, err := s.chats.HistoryBySession(ctx, sessionID, clampLimit(limit, defaultMessageLimit))
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ChatHistoryEntry{}
	}
	return entries, nil
}

func (s *ChatService) Sessions(ctx context.Context, limit int) ([]domain.ChatSession, error) {
	sessions, err := s.chats.Sessions(ctx, clampLimit(limit, defaultSessionLimit))
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.ChatSession{}
	}
	return sessions, nil
}
