package enum

import (
	"context"
	"testing"

	"github.com/praetorian-inc/calclex/pkg/types"
)

type mockSource struct {
	content string
	path    string
}

type mockEnumerator struct {
	sources []mockSource
}

func (m *mockEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	for _, s := range m.sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		content := []byte(s.content)
		if err := callback(content, types.ComputeSourceID(content), types.FileProvenance{FilePath: s.path}); err != nil {
			return err
		}
	}
	return nil
}

func TestCombinedEnumerator_Empty(t *testing.T) {
	c := NewCombinedEnumerator()
	if got := collect(t, c); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestCombinedEnumerator_DeduplicatesSamePath(t *testing.T) {
	first := &mockEnumerator{sources: []mockSource{{"1+2", "a.calc"}, {"3", "b.calc"}}}
	second := &mockEnumerator{sources: []mockSource{{"1+2", "a.calc"}, {"1+2", "copy.calc"}}}

	got := collect(t, NewCombinedEnumerator(first, second))
	want := []string{"a.calc", "b.calc", "copy.calc"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestCombinedEnumerator_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCombinedEnumerator(&mockEnumerator{sources: []mockSource{{"1", "a"}}})
	err := c.Enumerate(ctx, func([]byte, types.SourceID, types.Provenance) error { return nil })
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
