package service

import (
	"context"
	"errors"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

// RegisterDefaultRules wires the cascade graph of the business entities:
//
//	hosts       -> host_contacts cascade; live collections (matched by host
//	               name) block the delete outright
//	projects    -> tasks cascade
//	suggestions -> suggestion_responses cascade
//
// Everything else soft-deletes as a plain single record.
func RegisterDefaultRules(
	s *DeletionService,
	hosts *repository.HostRepository,
	collections *repository.CollectionRepository,
	projects *repository.ProjectRepository,
	suggestions *repository.SuggestionRepository,
) {
	s.RegisterRule(repository.TableHosts, EntityRule{
		Children: []ChildRule{
			{Table: repository.TableHostContacts, LiveIDs: hosts.LiveContactIDs},
		},
		Blockers: []BlockerRule{
			{
				Dependent: "collection",
				Count: func(ctx context.Context, hostID string) (int, error) {
					host, err := hosts.FindByID(ctx, hostID)
					if errors.Is(err, model.ErrHostNotFound) {
						// Nothing to block; the writer will report false.
						return 0, nil
					}
					if err != nil {
						return 0, err
					}
					return collections.CountLiveByHostName(ctx, host.Name)
				},
			},
		},
	})

	s.RegisterRule(repository.TableProjects, EntityRule{
		Children: []ChildRule{
			{Table: repository.TableTasks, LiveIDs: projects.LiveTaskIDs},
		},
	})

	s.RegisterRule(repository.TableSuggestions, EntityRule{
		Children: []ChildRule{
			{Table: repository.TableSuggestionResponses, LiveIDs: suggestions.LiveResponseIDs},
		},
	})
}
