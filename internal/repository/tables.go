package repository

import (
	"strings"

	"nonprofit-ops/internal/model"
)

// Table is a registered soft-deletable relation. Every participating table
// exposes an id primary key plus the deleted_at/deleted_by pair, which is the
// only shape the tombstone writer depends on. Table names reach SQL text only
// through this registry, never from caller input.
type Table struct {
	name string
}

func (t Table) Name() string { return t.name }

var (
	TableUsers               = Table{name: "users"}
	TableHosts               = Table{name: "hosts"}
	TableHostContacts        = Table{name: "host_contacts"}
	TableCollections         = Table{name: "collections"}
	TableProjects            = Table{name: "projects"}
	TableTasks               = Table{name: "tasks"}
	TableSuggestions         = Table{name: "suggestions"}
	TableSuggestionResponses = Table{name: "suggestion_responses"}
	TableMessages            = Table{name: "messages"}
)

var softDeletableTables = map[string]Table{
	TableUsers.name:               TableUsers,
	TableHosts.name:               TableHosts,
	TableHostContacts.name:        TableHostContacts,
	TableCollections.name:         TableCollections,
	TableProjects.name:            TableProjects,
	TableTasks.name:               TableTasks,
	TableSuggestions.name:         TableSuggestions,
	TableSuggestionResponses.name: TableSuggestionResponses,
	TableMessages.name:            TableMessages,
}

// TableByName resolves an externally supplied table name against the
// registry. Unknown names are rejected before any SQL is built.
func TableByName(name string) (Table, error) {
	table, ok := softDeletableTables[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Table{}, model.ErrUnknownTable
	}
	return table, nil
}

// TableNames lists the registered tables, for admin UIs and validation.
func TableNames() []string {
	names := make([]string, 0, len(softDeletableTables))
	for name := range softDeletableTables {
		names = append(names, name)
	}
	return names
}
