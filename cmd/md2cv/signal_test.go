package main

// Notes:
// - Only context behavior is checked; real signal delivery is left out

import (
	"context"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("starts live", func(t *testing.T) {
		t.Parallel()
		ctx, stop := notifyContext(context.Background())
		defer stop()
		if ctx.Err() != nil {
			t.Fatal("context canceled before any signal")
		}
	})

	t.Run("stop cancels", func(t *testing.T) {
		t.Parallel()
		ctx, stop := notifyContext(context.Background())
		stop()
		<-ctx.Done()
	})

	t.Run("parent cancels", func(t *testing.T) {
		t.Parallel()
		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()
		cancel()
		<-ctx.Done()
	})
}
