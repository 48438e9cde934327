package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

type mockTombstoneWriter struct {
	mock.Mock
}

func (m *mockTombstoneWriter) SoftDelete(ctx context.Context, table repository.Table, id string, actorID string, reason string) (bool, error) {
	args := m.Called(ctx, table, id, actorID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *mockTombstoneWriter) Restore(ctx context.Context, table repository.Table, id string, actorID string) (bool, error) {
	args := m.Called(ctx, table, id, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTombstoneWriter) PermanentlyDelete(ctx context.Context, table repository.Table, id string, actorID string) (bool, error) {
	args := m.Called(ctx, table, id, actorID)
	return args.Bool(0), args.Error(1)
}

type mockHistoryReader struct {
	mock.Mock
}

func (m *mockHistoryReader) History(ctx context.Context, filter model.HistoryFilter) (model.HistoryPage, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(model.HistoryPage), args.Error(1)
}

func TestDeletionService_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("plain delete with explicit actor and reason", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)

		writer.On("SoftDelete", ctx, repository.TableMessages, "m1", "user-1", "spam").Return(true, nil)

		ok, err := svc.SoftDelete(ctx, "messages", "m1", "user-1", "spam")
		assert.NoError(t, err)
		assert.True(t, ok)
		writer.AssertExpectations(t)
	})

	t.Run("missing actor and reason fall back to defaults", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)

		writer.On("SoftDelete", ctx, repository.TableMessages, "m1", "system", "record deleted").Return(true, nil)

		ok, err := svc.SoftDelete(ctx, "messages", "m1", "", "")
		assert.NoError(t, err)
		assert.True(t, ok)
		writer.AssertExpectations(t)
	})

	t.Run("already deleted record reports false without error", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)

		writer.On("SoftDelete", ctx, repository.TableMessages, "gone", "user-1", "record deleted").Return(false, nil)

		ok, err := svc.SoftDelete(ctx, "messages", "gone", "user-1", "")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown table is rejected", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)

		_, err := svc.SoftDelete(ctx, "users; DROP TABLE users", "x", "user-1", "")
		assert.ErrorIs(t, err, model.ErrUnknownTable)
		writer.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blocker aborts with conflict and zero writes", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)
		svc.RegisterRule(repository.TableHosts, EntityRule{
			Blockers: []BlockerRule{{
				Dependent: "collection",
				Count: func(context.Context, string) (int, error) {
					return 3, nil
				},
			}},
		})

		_, err := svc.SoftDelete(ctx, "hosts", "h1", "user-1", "")

		var conflict *model.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 3, conflict.BlockingCount)
		assert.Equal(t, "collection", conflict.Dependent)
		assert.Contains(t, conflict.Error(), "3 associated collection")
		writer.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cascade tombstones children before the parent", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)
		svc.RegisterRule(repository.TableProjects, EntityRule{
			Children: []ChildRule{{
				Table: repository.TableTasks,
				LiveIDs: func(context.Context, string) ([]string, error) {
					return []string{"t1", "t2"}, nil
				},
			}},
		})

		var order []string
		record := func(args mock.Arguments) {
			order = append(order, args.String(2))
		}

		writer.On("SoftDelete", ctx, repository.TableTasks, "t1", "user-1", "cascade: projects p1 deleted").Run(record).Return(true, nil)
		writer.On("SoftDelete", ctx, repository.TableTasks, "t2", "user-1", "cascade: projects p1 deleted").Run(record).Return(true, nil)
		writer.On("SoftDelete", ctx, repository.TableProjects, "p1", "user-1", "cleanup").Run(record).Return(true, nil)

		ok, err := svc.SoftDelete(ctx, "projects", "p1", "user-1", "cleanup")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"t1", "t2", "p1"}, order)
		writer.AssertExpectations(t)
	})

	t.Run("cascade child failure aborts before the parent", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)
		svc.RegisterRule(repository.TableProjects, EntityRule{
			Children: []ChildRule{{
				Table: repository.TableTasks,
				LiveIDs: func(context.Context, string) ([]string, error) {
					return []string{"t1"}, nil
				},
			}},
		})

		boom := errors.New("connection reset")
		writer.On("SoftDelete", ctx, repository.TableTasks, "t1", "user-1", mock.Anything).Return(false, boom)

		_, err := svc.SoftDelete(ctx, "projects", "p1", "user-1", "")
		assert.ErrorIs(t, err, boom)
		writer.AssertNotCalled(t, "SoftDelete", ctx, repository.TableProjects, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeletionService_BulkSoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("partial success tallies failures and continues", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)
		svc.RegisterRule(repository.TableHosts, EntityRule{
			Blockers: []BlockerRule{{
				Dependent: "collection",
				Count: func(_ context.Context, id string) (int, error) {
					if id == "blocked" {
						return 2, nil
					}
					return 0, nil
				},
			}},
		})

		writer.On("SoftDelete", ctx, repository.TableHosts, "ok", "user-1", "record deleted").Return(true, nil)
		writer.On("SoftDelete", ctx, repository.TableHosts, "missing", "user-1", "record deleted").Return(false, nil)

		result, err := svc.BulkSoftDelete(ctx, "hosts", []string{"ok", "missing", "blocked"}, "user-1", "")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, 2, result.Failed)
	})

	t.Run("storage error aborts the batch", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)

		boom := errors.New("db down")
		writer.On("SoftDelete", ctx, repository.TableMessages, "a", "user-1", "record deleted").Return(true, nil)
		writer.On("SoftDelete", ctx, repository.TableMessages, "b", "user-1", "record deleted").Return(false, boom)

		result, err := svc.BulkSoftDelete(ctx, "messages", []string{"a", "b", "c"}, "user-1", "")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, result.Succeeded)
		writer.AssertNotCalled(t, "SoftDelete", ctx, repository.TableMessages, "c", mock.Anything, mock.Anything)
	})
}

func TestDeletionService_RestoreAndPurge(t *testing.T) {
	ctx := context.Background()

	t.Run("restore passes through with default actor", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)

		writer.On("Restore", ctx, repository.TableHosts, "h1", "system").Return(true, nil)

		ok, err := svc.Restore(ctx, "hosts", "h1", "")
		assert.NoError(t, err)
		assert.True(t, ok)
		writer.AssertExpectations(t)
	})

	t.Run("restore rejects unknown table", func(t *testing.T) {
		svc := NewDeletionService(new(mockTombstoneWriter), new(mockHistoryReader), 50)

		_, err := svc.Restore(ctx, "nope", "h1", "user-1")
		assert.ErrorIs(t, err, model.ErrUnknownTable)
	})

	t.Run("purge passes through", func(t *testing.T) {
		writer := new(mockTombstoneWriter)
		svc := NewDeletionService(writer, new(mockHistoryReader), 50)

		writer.On("PermanentlyDelete", ctx, repository.TableMessages, "m1", "admin-1").Return(false, nil)

		ok, err := svc.Purge(ctx, "messages", "m1", "admin-1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeletionService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the configured default limit", func(t *testing.T) {
		ledger := new(mockHistoryReader)
		svc := NewDeletionService(new(mockTombstoneWriter), ledger, 25)

		ledger.On("History", ctx, model.HistoryFilter{TableName: "hosts", Limit: 25}).
			Return(model.HistoryPage{}, nil)

		_, err := svc.History(ctx, model.HistoryFilter{TableName: "hosts"})
		assert.NoError(t, err)
		ledger.AssertExpectations(t)
	})

	t.Run("caller limit wins", func(t *testing.T) {
		ledger := new(mockHistoryReader)
		svc := NewDeletionService(new(mockTombstoneWriter), ledger, 25)

		ledger.On("History", ctx, model.HistoryFilter{Limit: 5}).
			Return(model.HistoryPage{}, nil)

		_, err := svc.History(ctx, model.HistoryFilter{Limit: 5})
		assert.NoError(t, err)
		ledger.AssertExpectations(t)
	})
}
