package task

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
	"github.com/sproutedu/sprout-api/internal/store"
)

type fakeJournalStore struct {
	entries map[uuid.UUID]*domain.JournalEntry
	updated *domain.JournalEntry
}

func (s *fakeJournalStore) Create(ctx context.Context, entry *domain.JournalEntry) error {
	s.entries[entry.ID] = entry
	return nil
}

func (s *fakeJournalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.JournalEntry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, store.ErrJournalEntryNotFound
	}
	cp := *entry
	return &cp, nil
}

func (s *fakeJournalStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.JournalEntry, error) {
	return nil, nil
}

func (s *fakeJournalStore) ListShared(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error) {
	return nil, nil
}

func (s *fakeJournalStore) Update(ctx context.Context, entry *domain.JournalEntry) error {
	if _, ok := s.entries[entry.ID]; !ok {
		return store.ErrJournalEntryNotFound
	}
	cp := *entry
	s.entries[entry.ID] = &cp
	s.updated = &cp
	return nil
}

func (s *fakeJournalStore) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	return 0, nil
}

func (s *fakeJournalStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *fakeJournalStore) WithTx(tx *sql.Tx) store.JournalStore           { return s }

type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error { return nil }
func (s *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore                   { return s }

type reflectionGenerator struct {
	question string
	source   generation.Source
	err      error
	band     domain.AgeBand
}

func (g *reflectionGenerator) GenerateStarters(ctx context.Context, callerKey, topic string, band domain.AgeBand, priorTopics []string) (*generation.StarterSet, error) {
	return nil, errors.New("not implemented")
}

func (g *reflectionGenerator) ExplainTerm(ctx context.Context, callerKey string, term *domain.Term, band domain.AgeBand) (*generation.Explanation, error) {
	return nil, errors.New("not implemented")
}

func (g *reflectionGenerator) SuggestTopics(ctx context.Context, callerKey string, band domain.AgeBand, interests []string) (*generation.SuggestionSet, error) {
	return nil, errors.New("not implemented")
}

func (g *reflectionGenerator) GenerateReflection(ctx context.Context, callerKey string, entry *domain.JournalEntry, band domain.AgeBand) (string, generation.Source, error) {
	g.band = band
	if g.err != nil {
		return "", "", g.err
	}
	return g.question, g.source, nil
}

func reflectionFixture(t *testing.T) (*ReflectionTaskFactory, *fakeJournalStore, *reflectionGenerator, *domain.JournalEntry) {
	t.Helper()

	child, err := domain.NewUser("kid@example.com", "long-enough-password", "Kid", domain.RoleChild, time.Now().Year()-15)
	require.NoError(t, err)

	entry, err := domain.NewJournalEntry(child.ID, "Magnets", "We tested which things stick to magnets.", domain.MoodCurious)
	require.NoError(t, err)

	journals := &fakeJournalStore{entries: map[uuid.UUID]*domain.JournalEntry{entry.ID: entry}}
	users := &fakeUserStore{users: map[uuid.UUID]*domain.User{child.ID: child}}
	gen := &reflectionGenerator{question: "What else might be magnetic?", source: generation.SourceGenerated}

	factory := NewReflectionTaskFactory(journals, users, gen, testLogger())
	return factory, journals, gen, entry
}

func TestReflectionTaskExecute(t *testing.T) {
	factory, journals, gen, entry := reflectionFixture(t)

	task, err := factory.CreateTask(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeReflection, task.Type())

	require.NoError(t, task.Execute(context.Background()))

	require.NotNil(t, journals.updated)
	assert.Equal(t, "What else might be magnetic?", journals.updated.Reflection)
	assert.Equal(t, domain.AgeBandTeen, gen.band)
}

func TestReflectionTaskEntryMissing(t *testing.T) {
	factory, _, _, _ := reflectionFixture(t)

	task, err := factory.CreateTask(uuid.New())
	require.NoError(t, err)

	err = task.Execute(context.Background())
	assert.ErrorIs(t, err, store.ErrJournalEntryNotFound)
}

func TestReflectionTaskGenerationFailure(t *testing.T) {
	factory, journals, gen, entry := reflectionFixture(t)
	gen.err = generation.ErrAuthFailure

	task, err := factory.CreateTask(entry.ID)
	require.NoError(t, err)

	err = task.Execute(context.Background())
	assert.ErrorIs(t, err, generation.ErrAuthFailure)
	assert.Nil(t, journals.updated)
}

func TestCreateTaskRejectsNilEntryID(t *testing.T) {
	factory, _, _, _ := reflectionFixture(t)

	_, err := factory.CreateTask(uuid.Nil)
	assert.Error(t, err)
}
