package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

type ProjectService struct {
	projects *repository.ProjectRepository
	tasks    *repository.TaskRepository
	deletion *DeletionService
}

func NewProjectService(projects *repository.ProjectRepository, tasks *repository.TaskRepository, deletion *DeletionService) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, deletion: deletion}
}

func (s *ProjectService) Create(ctx context.Context, req model.CreateProjectRequest) (model.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Project{}, model.ErrInvalidInput
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "available"
	}

	now := time.Now().UTC()
	project := model.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: req.Description,
		Status:      status,
		AssigneeIDs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (model.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, vis repository.Visibility) ([]model.Project, error) {
	return s.projects.List(ctx, vis)
}

func (s *ProjectService) Update(ctx context.Context, id string, req model.UpdateProjectRequest) (model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return model.Project{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.Project{}, model.ErrInvalidInput
		}
		project.Title = title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = strings.TrimSpace(*req.Status)
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// Delete cascades over the project's live tasks, then the project itself.
func (s *ProjectService) Delete(ctx context.Context, id string, actorID string, reason string) (bool, error) {
	return s.deletion.SoftDelete(ctx, repository.TableProjects.Name(), id, actorID, reason)
}

func (s *ProjectService) CreateTask(ctx context.Context, projectID string, req model.CreateTaskRequest) (model.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return model.Task{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Task{}, model.ErrInvalidInput
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "pending"
	}

	now := time.Now().UTC()
	task := model.Task{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		Description: req.Description,
		Status:      status,
		AssigneeID:  strings.TrimSpace(req.AssigneeID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *ProjectService) ListTasks(ctx context.Context, projectID string, vis repository.Visibility) ([]model.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID, vis)
}

func (s *ProjectService) UpdateTask(ctx context.Context, id string, req model.UpdateTaskRequest) (model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.Task{}, model.ErrInvalidInput
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = strings.TrimSpace(*req.Status)
	}
	if req.AssigneeID != nil {
		task.AssigneeID = strings.TrimSpace(*req.AssigneeID)
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *ProjectService) DeleteTask(ctx context.Context, id string, actorID string, reason string) (bool, error) {
	return s.deletion.SoftDelete(ctx, repository.TableTasks.Name(), id, actorID, reason)
}
