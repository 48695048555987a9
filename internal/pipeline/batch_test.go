package pipeline_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/notice-validator/constants"
	"github.com/lenderdesk/notice-validator/internal/pipeline"
)

// stubProvider serves canned page text by path.
type stubProvider struct {
	pages map[string][]string
}

func (s *stubProvider) Pages(_ context.Context, path string) ([]string, error) {
	pages, ok := s.pages[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return pages, nil
}

func TestBatchRun(t *testing.T) {
	provider := &stubProvider{pages: map[string][]string{
		"a.txt": {passingNotice},
		"b.txt": {failingNotice},
		"c.txt": {"nothing financial here"},
	}}
	b := pipeline.NewBatch(nil, provider, pipeline.NewPipeline(nil), 2)

	results := b.Run(context.Background(), []string{"a.txt", "b.txt", "c.txt", "missing.txt"})
	require.Len(t, results, 4)

	// Results come back in input order regardless of worker scheduling.
	assert.Equal(t, "a.txt", results[0].Path)
	require.NotNil(t, results[0].Run)
	assert.Equal(t, constants.VerdictPass, results[0].Run.Verdict.Status)

	assert.Equal(t, "b.txt", results[1].Path)
	require.NotNil(t, results[1].Run)
	assert.Equal(t, constants.VerdictFail, results[1].Run.Verdict.Status)

	assert.Equal(t, "c.txt", results[2].Path)
	require.NotNil(t, results[2].Run)
	assert.Nil(t, results[2].Run.Verdict)
	assert.False(t, results[2].Run.Completeness.IsValid)

	assert.Equal(t, "missing.txt", results[3].Path)
	assert.Nil(t, results[3].Run)
	assert.Error(t, results[3].Err)
}

func TestBatchRunSingleWorker(t *testing.T) {
	provider := &stubProvider{pages: map[string][]string{
		"a.txt": {passingNotice},
		"b.txt": {passingNotice},
	}}
	b := pipeline.NewBatch(nil, provider, pipeline.NewPipeline(nil), 0) // clamps to 1

	results := b.Run(context.Background(), []string{"a.txt", "b.txt"})
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, constants.VerdictPass, r.Run.Verdict.Status)
	}
}

func TestBatchRunCancelledContext(t *testing.T) {
	provider := &stubProvider{pages: map[string][]string{}}
	b := pipeline.NewBatch(nil, provider, pipeline.NewPipeline(nil), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := b.Run(ctx, []string{"a.txt", "b.txt"})
	require.Len(t, results, 2)
	// Undispatched jobs keep their zero value.
	for _, r := range results {
		assert.Nil(t, r.Run)
	}
}
