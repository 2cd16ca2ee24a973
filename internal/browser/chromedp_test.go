// internal/browser/chromedp_test.go
package browser

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not end in time")
	}
}

func TestLinkContextCallerCancellation(t *testing.T) {
	tab, cancelTab := context.WithCancel(context.Background())
	defer cancelTab()
	caller, cancelCaller := context.WithCancel(context.Background())

	linked, cleanup := linkContext(tab, caller, time.Minute)
	defer cleanup()

	cancelCaller()
	waitDone(t, linked)
	if tab.Err() != nil {
		t.Error("cancelling the caller must not tear down the tab context")
	}
}

func TestLinkContextTabCancellation(t *testing.T) {
	tab, cancelTab := context.WithCancel(context.Background())

	linked, cleanup := linkContext(tab, context.Background(), time.Minute)
	defer cleanup()

	cancelTab()
	waitDone(t, linked)
}

func TestLinkContextTimeout(t *testing.T) {
	linked, cleanup := linkContext(context.Background(), context.Background(), 10*time.Millisecond)
	defer cleanup()

	waitDone(t, linked)
	if !errors.Is(linked.Err(), context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", linked.Err())
	}
}
