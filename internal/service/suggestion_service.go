package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

type SuggestionService struct {
	suggestions *repository.SuggestionRepository
	deletion    *DeletionService
}

func NewSuggestionService(suggestions *repository.SuggestionRepository, deletion *DeletionService) *SuggestionService {
	return &SuggestionService{suggestions: suggestions, deletion: deletion}
}

func (s *SuggestionService) Create(ctx context.Context, req model.CreateSuggestionRequest, submittedBy string) (model.Suggestion, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Suggestion{}, model.ErrInvalidInput
	}

	now := time.Now().UTC()
	suggestion := model.Suggestion{
		ID:          uuid.NewString(),
		Title:       title,
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		SubmittedBy: submittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return model.Suggestion{}, err
	}
	return suggestion, nil
}

func (s *SuggestionService) List(ctx context.Context, vis repository.Visibility) ([]model.Suggestion, error) {
	return s.suggestions.List(ctx, vis)
}

func (s *SuggestionService) Respond(ctx context.Context, suggestionID string, req model.CreateSuggestionResponseRequest, respondedBy string) (model.SuggestionResponse, error) {
	if _, err := s.suggestions.FindByID(ctx, suggestionID); err != nil {
		return model.SuggestionResponse{}, err
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return model.SuggestionResponse{}, model.ErrInvalidInput
	}

	response := model.SuggestionResponse{
		ID:           uuid.NewString(),
		SuggestionID: suggestionID,
		Message:      message,
		RespondedBy:  respondedBy,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.suggestions.CreateResponse(ctx, response); err != nil {
		return model.SuggestionResponse{}, err
	}
	return response, nil
}

func (s *SuggestionService) ListResponses(ctx context.Context, suggestionID string, vis repository.Visibility) ([]model.SuggestionResponse, error) {
	if _, err := s.suggestions.FindByID(ctx, suggestionID); err != nil {
		return nil, err
	}
	return s.suggestions.ListResponses(ctx, suggestionID, vis)
}

// Delete cascades over the suggestion's live responses first.
func (s *SuggestionService) Delete(ctx context.Context, id string, actorID string, reason string) (bool, error) {
	return s.deletion.SoftDelete(ctx, repository.TableSuggestions.Name(), id, actorID, reason)
}
