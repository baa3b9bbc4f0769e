package autostart

import (
	"context"
	"testing"
	"time"
)

func TestLaunchTracksSucceededChildren(t *testing.T) {
	r := NewReaper()
	defer r.Stop()

	pids := Launch(r, []Spec{
		{"true"},
		{"/nonexistent/binary/does-not-exist"},
		{"true"},
	})
	if len(pids) != 2 {
		t.Fatalf("expected 2 successfully launched children, got %d", len(pids))
	}
}

func TestSpawnReportsExecFailure(t *testing.T) {
	r := NewReaper()
	defer r.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := Spawn(ctx, r, []string{"/nonexistent/binary/does-not-exist"}); err == nil {
		t.Fatal("expected an error from a nonexistent binary, got nil")
	}
}

func TestSpawnNoArgvIsNoop(t *testing.T) {
	r := NewReaper()
	defer r.Stop()

	if err := Spawn(context.Background(), r, nil); err != nil {
		t.Fatalf("expected nil error for empty argv, got %v", err)
	}
}
