package batch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocrtools/textpost/internal/dict"
	"github.com/ocrtools/textpost/internal/engine"
	"github.com/ocrtools/textpost/internal/processor"
)

// recordingCallback captures every notification for assertions.
type recordingCallback struct {
	mu        sync.Mutex
	started   []int
	progress  [][3]any // completed, total, sourceID
	itemErrs  []string
	completed []*Result
}

func (r *recordingCallback) OnStart(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, total)
}

func (r *recordingCallback) OnProgress(completed, total int, sourceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, [3]any{completed, total, sourceID})
}

func (r *recordingCallback) OnItemError(sourceID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itemErrs = append(r.itemErrs, sourceID)
}

func (r *recordingCallback) OnComplete(result *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, result)
}

func newTestProcessor(t *testing.T) *processor.Processor {
	t.Helper()
	return processor.New(dict.New(filepath.Join(t.TempDir(), "corrections.json"), nil))
}

// stubEngine recognizes a fixed line per source and fails for sources in
// failOn.
func stubEngine(failOn map[string]error) engine.Engine {
	return engine.RecognizeFunc(func(ctx context.Context, source string) ([]processor.OCRLine, error) {
		if err, ok := failOn[source]; ok {
			return nil, err
		}
		return []processor.OCRLine{{Text: "青晰度很高。", Confidence: 0.9}}, nil
	})
}

func TestRunAllSucceed(t *testing.T) {
	cb := &recordingCallback{}
	orch := NewOrchestrator(newTestProcessor(t), cb)

	sources := []string{"a.png", "b.png", "c.png"}
	require.NoError(t, orch.Start(context.Background(), sources, stubEngine(nil)))
	result := orch.Wait()

	require.NotNil(t, result)
	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, StateCompleted, orch.State())
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.NotEmpty(t, result.RunID)

	for i, item := range result.Items {
		assert.Equal(t, sources[i], item.SourceID)
		assert.Equal(t, StatusSuccess, item.Status)
		require.Len(t, item.Lines, 1)
		assert.Equal(t, "清晰度很高。", item.Lines[0].CorrectedText)
	}
}

func TestRunItemFailureIsIsolated(t *testing.T) {
	cb := &recordingCallback{}
	orch := NewOrchestrator(newTestProcessor(t), cb)

	sources := []string{"a.png", "b.png", "c.png"}
	eng := stubEngine(map[string]error{"b.png": errors.New("unsupported image")})
	require.NoError(t, orch.Start(context.Background(), sources, eng))
	result := orch.Wait()

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)

	// Order preserved, failure captured on the right item.
	assert.Equal(t, StatusSuccess, result.Items[0].Status)
	assert.Equal(t, StatusFailed, result.Items[1].Status)
	assert.Contains(t, result.Items[1].Error, "unsupported image")
	assert.Equal(t, StatusSuccess, result.Items[2].Status)

	assert.Equal(t, []string{"b.png"}, cb.itemErrs)
}

func TestProgressNotifications(t *testing.T) {
	cb := &recordingCallback{}
	orch := NewOrchestrator(newTestProcessor(t), cb)

	sources := []string{"a.png", "b.png", "c.png", "d.png"}
	require.NoError(t, orch.Start(context.Background(), sources, stubEngine(nil)))
	orch.Wait()

	assert.Equal(t, []int{4}, cb.started)
	require.Len(t, cb.progress, 4)
	for i, p := range cb.progress {
		assert.Equal(t, i+1, p[0], "completed count must increase strictly")
		assert.Equal(t, 4, p[1])
		assert.Equal(t, sources[i], p[2])
	}
	require.Len(t, cb.completed, 1)
}

func TestCompletionAfterLastProgress(t *testing.T) {
	var order []string
	var mu sync.Mutex
	cb := &funcCallback{
		onProgress: func(completed, total int, src string) {
			mu.Lock()
			order = append(order, "progress")
			mu.Unlock()
		},
		onComplete: func(r *Result) {
			mu.Lock()
			order = append(order, "complete")
			mu.Unlock()
		},
	}

	orch := NewOrchestrator(newTestProcessor(t), cb)
	require.NoError(t, orch.Start(context.Background(), []string{"a.png", "b.png"}, stubEngine(nil)))
	orch.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 3)
	assert.Equal(t, "complete", order[2])
}

func TestCancelBetweenItems(t *testing.T) {
	cb := &recordingCallback{}
	orch := NewOrchestrator(newTestProcessor(t), cb)

	firstDone := make(chan struct{})
	proceed := make(chan struct{})
	var once sync.Once
	eng := engine.RecognizeFunc(func(ctx context.Context, source string) ([]processor.OCRLine, error) {
		once.Do(func() {
			close(firstDone)
			<-proceed
		})
		return []processor.OCRLine{{Text: "ok"}}, nil
	})

	require.NoError(t, orch.Start(context.Background(), []string{"a.png", "b.png", "c.png"}, eng))

	<-firstDone
	orch.Cancel()
	close(proceed)
	result := orch.Wait()

	assert.Equal(t, StateCancelled, result.State)
	assert.Equal(t, StateCancelled, orch.State())
	assert.Equal(t, 1, result.Succeeded+result.Failed)
	assert.Equal(t, StatusSuccess, result.Items[0].Status)
	assert.Equal(t, StatusPending, result.Items[1].Status)
	assert.Equal(t, StatusPending, result.Items[2].Status)
	require.Len(t, cb.completed, 1)
	assert.Len(t, cb.progress, 1)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := &recordingCallback{}
	orch := NewOrchestrator(newTestProcessor(t), cb)

	firstDone := make(chan struct{})
	var once sync.Once
	eng := engine.RecognizeFunc(func(ctx context.Context, source string) ([]processor.OCRLine, error) {
		once.Do(func() {
			cancel()
			close(firstDone)
		})
		return []processor.OCRLine{{Text: "ok"}}, nil
	})

	require.NoError(t, orch.Start(ctx, []string{"a.png", "b.png"}, eng))
	<-firstDone
	result := orch.Wait()

	assert.Equal(t, StateCancelled, result.State)
	assert.Equal(t, StatusPending, result.Items[1].Status)
}

func TestDoubleStartIsUsageError(t *testing.T) {
	orch := NewOrchestrator(newTestProcessor(t), nil)

	block := make(chan struct{})
	eng := engine.RecognizeFunc(func(ctx context.Context, source string) ([]processor.OCRLine, error) {
		<-block
		return nil, nil
	})

	require.NoError(t, orch.Start(context.Background(), []string{"a.png"}, eng))
	err := orch.Start(context.Background(), []string{"b.png"}, eng)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	close(block)
	orch.Wait()
}

func TestRestartAfterCompletion(t *testing.T) {
	orch := NewOrchestrator(newTestProcessor(t), nil)

	require.NoError(t, orch.Start(context.Background(), []string{"a.png"}, stubEngine(nil)))
	first := orch.Wait()
	require.Equal(t, StateCompleted, first.State)

	require.NoError(t, orch.Start(context.Background(), []string{"b.png"}, stubEngine(nil)))
	second := orch.Wait()
	assert.Equal(t, StateCompleted, second.State)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestStartDoesNotBlockCaller(t *testing.T) {
	orch := NewOrchestrator(newTestProcessor(t), nil)

	release := make(chan struct{})
	eng := engine.RecognizeFunc(func(ctx context.Context, source string) ([]processor.OCRLine, error) {
		<-release
		return nil, nil
	})

	start := time.Now()
	require.NoError(t, orch.Start(context.Background(), []string{"a.png"}, eng))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, StateRunning, orch.State())

	close(release)
	orch.Wait()
}

func TestWaitWithoutStart(t *testing.T) {
	orch := NewOrchestrator(newTestProcessor(t), nil)
	assert.Nil(t, orch.Wait())
	assert.Equal(t, StateIdle, orch.State())
}

// funcCallback adapts bare functions to ProgressCallback for tests.
type funcCallback struct {
	onStart    func(total int)
	onProgress func(completed, total int, sourceID string)
	onItemErr  func(sourceID string, err error)
	onComplete func(result *Result)
}

func (f *funcCallback) OnStart(total int) {
	if f.onStart != nil {
		f.onStart(total)
	}
}

func (f *funcCallback) OnProgress(completed, total int, sourceID string) {
	if f.onProgress != nil {
		f.onProgress(completed, total, sourceID)
	}
}

func (f *funcCallback) OnItemError(sourceID string, err error) {
	if f.onItemErr != nil {
		f.onItemErr(sourceID, err)
	}
}

func (f *funcCallback) OnComplete(result *Result) {
	if f.onComplete != nil {
		f.onComplete(result)
	}
}
