package director

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMapBatchedSettlesAll(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	results, errs := mapBatched(context.Background(), items, 4, func(ctx context.Context, n int) (int, error) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		if n%3 == 0 {
			return 0, fmt.Errorf("item %d failed", n)
		}
		return n * 10, nil
	})

	if peak.Load() > 4 {
		t.Fatalf("expected at most 4 concurrent calls, saw %d", peak.Load())
	}
	want := []int{10, 20, 0, 40, 50, 0, 70, 80, 0}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
	for i, err := range errs {
		failed := items[i]%3 == 0
		if (err != nil) != failed {
			t.Fatalf("item %d: unexpected error state %v", items[i], err)
		}
	}
}

func TestMapBatchedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var called atomic.Int32
	_, errs := mapBatched(ctx, []string{"a", "b"}, 0, func(ctx context.Context, s string) (string, error) {
		called.Add(1)
		return s, nil
	})
	if called.Load() != 0 {
		t.Fatalf("expected no calls after cancellation, got %d", called.Load())
	}
	want := []error{context.Canceled, context.Canceled}
	if diff := cmp.Diff(want, errs, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	if !errors.Is(errs[0], context.Canceled) {
		t.Fatalf("expected context.Canceled")
	}
}
