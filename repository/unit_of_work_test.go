package repository

import (
	"context"
	"testing"

	"gambler/arcade/domain/events"
	"gambler/arcade/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	pending   []events.Event
	flushed   []events.Event
	discarded int
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.pending = append(p.pending, event)
	return nil
}

func (p *recordingPublisher) Flush(ctx context.Context) error {
	p.flushed = append(p.flushed, p.pending...)
	p.pending = nil
	return nil
}

func (p *recordingPublisher) Discard() {
	p.discarded += len(p.pending)
	p.pending = nil
}

func TestUnitOfWork_CommitFlushesEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := &recordingPublisher{}
	uow := NewUnitOfWorkFactory(testDB.DB).CreateForGuildWithPublisher(testutil.TestGuildID, publisher)
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Create(ctx, 10, "committer", 250)
	require.NoError(t, err)
	require.NoError(t, uow.EventBus().Publish(events.UserCreatedEvent{DiscordID: 10}))
	assert.Empty(t, publisher.flushed)

	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback())

	assert.Len(t, publisher.flushed, 1)
	assert.Zero(t, publisher.discarded)

	user, err := NewUserRepository(testDB.DB, testutil.TestGuildID).GetByDiscordID(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(250), user.Balance)
}

func TestUnitOfWork_RollbackDiscardsEverything(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := &recordingPublisher{}
	uow := NewUnitOfWorkFactory(testDB.DB).CreateForGuildWithPublisher(testutil.TestGuildID, publisher)
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Create(ctx, 20, "quitter", 250)
	require.NoError(t, err)
	require.NoError(t, uow.EventBus().Publish(events.UserCreatedEvent{DiscordID: 20}))

	require.NoError(t, uow.Rollback())

	assert.Empty(t, publisher.flushed)
	assert.Equal(t, 1, publisher.discarded)

	user, err := NewUserRepository(testDB.DB, testutil.TestGuildID).GetByDiscordID(ctx, 20)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUnitOfWork_RepositoriesRequireBegin(t *testing.T) {
	uow := NewUnitOfWorkFactory(nil).CreateForGuildWithPublisher(1, &recordingPublisher{})

	assert.Panics(t, func() { uow.UserRepository() })
	assert.NoError(t, uow.Rollback())
	assert.Error(t, uow.Commit())
}
