package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

type HostService struct {
	hosts    *repository.HostRepository
	deletion *DeletionService
}

func NewHostService(hosts *repository.HostRepository, deletion *DeletionService) *HostService {
	return &HostService{hosts: hosts, deletion: deletion}
}

func (s *HostService) Create(ctx context.Context, req model.CreateHostRequest) (model.Host, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Host{}, model.ErrInvalidInput
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "active"
	}

	now := time.Now().UTC()
	host := model.Host{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		Status:    status,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.hosts.Create(ctx, host); err != nil {
		return model.Host{}, err
	}
	return host, nil
}

func (s *HostService) Get(ctx context.Context, id string) (model.Host, error) {
	return s.hosts.FindByID(ctx, id)
}

func (s *HostService) List(ctx context.Context, vis repository.Visibility) ([]model.Host, error) {
	return s.hosts.List(ctx, vis)
}

func (s *HostService) Update(ctx context.Context, id string, req model.UpdateHostRequest) (model.Host, error) {
	host, err := s.hosts.FindByID(ctx, id)
	if err != nil {
		return model.Host{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return model.Host{}, model.ErrInvalidInput
		}
		host.Name = name
	}
	if req.Address != nil {
		host.Address = strings.TrimSpace(*req.Address)
	}
	if req.Status != nil {
		host.Status = strings.TrimSpace(*req.Status)
	}
	if req.Notes != nil {
		host.Notes = *req.Notes
	}
	host.UpdatedAt = time.Now().UTC()

	if err := s.hosts.Update(ctx, host); err != nil {
		return model.Host{}, err
	}
	return host, nil
}

// Delete soft-deletes a host through the deletion service, which cascades
// over its contacts and refuses when live collections still reference it.
func (s *HostService) Delete(ctx context.Context, id string, actorID string, reason string) (bool, error) {
	return s.deletion.SoftDelete(ctx, repository.TableHosts.Name(), id, actorID, reason)
}

func (s *HostService) AddContact(ctx context.Context, hostID string, req model.CreateContactRequest) (model.HostContact, error) {
	if _, err := s.hosts.FindByID(ctx, hostID); err != nil {
		return model.HostContact{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.HostContact{}, model.ErrInvalidInput
	}

	now := time.Now().UTC()
	contact := model.HostContact{
		ID:        uuid.NewString(),
		HostID:    hostID,
		Name:      name,
		Role:      strings.TrimSpace(req.Role),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.hosts.CreateContact(ctx, contact); err != nil {
		return model.HostContact{}, err
	}
	return contact, nil
}

func (s *HostService) ListContacts(ctx context.Context, hostID string, vis repository.Visibility) ([]model.HostContact, error) {
	if _, err := s.hosts.FindByID(ctx, hostID); err != nil {
		return nil, err
	}
	return s.hosts.ListContacts(ctx, hostID, vis)
}

func (s *HostService) DeleteContact(ctx context.Context, id string, actorID string, reason string) (bool, error) {
	return s.deletion.SoftDelete(ctx, repository.TableHostContacts.Name(), id, actorID, reason)
}
