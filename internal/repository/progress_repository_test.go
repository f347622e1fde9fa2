package repository

import (
	"context"
	"testing"

	"madrasa_backend/internal/model"
	"madrasa_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

// memoryKV is the in-memory ProgressKV used by tests.
type memoryKV struct {
	data map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func TestProgressRoundTrip(t *testing.T) {
	repo := &ProgressRepository{KV: newMemoryKV()}
	ctx := context.Background()

	progress := model.ProgressMap{
		"sec-1/sub-1": true,
		"sec-1/sub-2": true,
		"sec-2/sub-1": true,
	}
	require.NoError(t, repo.Save(ctx, 7, "course-a", progress))

	loaded, err := repo.Load(ctx, 7, "course-a")
	require.NoError(t, err)
	assert.Equal(t, progress, loaded)
}

func TestProgressLoadMissingKey(t *testing.T) {
	repo := &ProgressRepository{KV: newMemoryKV()}

	loaded, err := repo.Load(context.Background(), 1, "never-saved")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestProgressEmptyMapRoundTrip(t *testing.T) {
	repo := &ProgressRepository{KV: newMemoryKV()}
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, 2, "course-b", model.ProgressMap{}))

	loaded, err := repo.Load(ctx, 2, "course-b")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestProgressCorruptedEntryFailsOpen(t *testing.T) {
	kv := newMemoryKV()
	kv.data[ProgressKey(3, "course-c")] = []byte("{not json")

	repo := &ProgressRepository{KV: kv}

	loaded, err := repo.Load(context.Background(), 3, "course-c")
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// The learner can still record progress over the broken entry.
	loaded.MarkComplete("sec-1", "sub-1")
	require.NoError(t, repo.Save(context.Background(), 3, "course-c", loaded))

	again, err := repo.Load(context.Background(), 3, "course-c")
	require.NoError(t, err)
	assert.True(t, again.IsComplete("sec-1", "sub-1"))
}

func TestProgressKeysAreScopedPerUserAndCourse(t *testing.T) {
	repo := &ProgressRepository{KV: newMemoryKV()}
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, 1, "course-a", model.ProgressMap{"s/a": true}))
	require.NoError(t, repo.Save(ctx, 2, "course-a", model.ProgressMap{"s/b": true}))
	require.NoError(t, repo.Save(ctx, 1, "course-b", model.ProgressMap{"s/c": true}))

	p, err := repo.Load(ctx, 1, "course-a")
	require.NoError(t, err)
	assert.Equal(t, model.ProgressMap{"s/a": true}, p)

	p, err = repo.Load(ctx, 2, "course-a")
	require.NoError(t, err)
	assert.Equal(t, model.ProgressMap{"s/b": true}, p)
}

func TestProgressKeyFormat(t *testing.T) {
	assert.Equal(t, "user:42:course-abc-progress", ProgressKey(42, "abc"))
}
