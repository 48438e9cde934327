package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

type MessageService struct {
	messages *repository.MessageRepository
	deletion *DeletionService
}

func NewMessageService(messages *repository.MessageRepository, deletion *DeletionService) *MessageService {
	return &MessageService{messages: messages, deletion: deletion}
}

func (s *MessageService) Create(ctx context.Context, req model.CreateMessageRequest, senderID string) (model.Message, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" || senderID == "" {
		return model.Message{}, model.ErrInvalidInput
	}

	message := model.Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Subject:   strings.TrimSpace(req.Subject),
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return model.Message{}, err
	}
	return message, nil
}

func (s *MessageService) List(ctx context.Context, vis repository.Visibility) ([]model.Message, error) {
	return s.messages.List(ctx, vis)
}

// Delete lets a sender retract their own message; admins may delete any.
func (s *MessageService) Delete(ctx context.Context, id string, actor model.AuthUser, reason string) (bool, error) {
	message, err := s.messages.FindByID(ctx, id)
	if errors.Is(err, model.ErrMessageNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if message.SenderID != actor.ID && actor.Role != model.RoleAdmin && actor.Role != model.RoleSuperAdmin {
		return false, model.ErrForbidden
	}

	return s.deletion.SoftDelete(ctx, repository.TableMessages.Name(), id, actor.ID, reason)
}
