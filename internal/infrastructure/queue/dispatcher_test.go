package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.SessionChange
	calls  int
	fail   bool
}

func (r *recordingRepo) InsertEvent(_ context.Context, change domain.SessionChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.fail {
		return errors.New("mongo down")
	}
	r.events = append(r.events, change)
	return nil
}

func (r *recordingRepo) snapshot() []domain.SessionChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SessionChange(nil), r.events...)
}

func TestDispatcher_PreservesPerSessionOrder(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	reasons := []domain.ChangeReason{domain.ReasonLogin, domain.ReasonProfile, domain.ReasonLogout}
	for _, r := range reasons {
		d.Enqueue(domain.SessionChange{SessionID: "s1", Reason: r})
		d.Enqueue(domain.SessionChange{SessionID: "s2", Reason: r})
	}

	require.Eventually(t, func() bool { return len(repo.snapshot()) == 6 }, time.Second, 10*time.Millisecond)
	cancel()
	d.Wait()

	var s1 []domain.ChangeReason
	for _, e := range repo.snapshot() {
		if e.SessionID == "s1" {
			s1 = append(s1, e.Reason)
		}
	}
	assert.Equal(t, reasons, s1)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingRepo{}, zerolog.Nop())
	first := d.shardIndex("session-42")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.shardIndex("session-42"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 8)
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Not started: channels fill up and further events are dropped.
	d := NewDispatcher(1, &recordingRepo{}, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.SessionChange{SessionID: "s"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_WriteFailureKeepsWorkerAlive(t *testing.T) {
	repo := &recordingRepo{fail: true}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		d.Wait()
	}()
	d.Start(ctx)

	listener := d.Listener()
	listener(domain.SessionChange{SessionID: "s", Reason: domain.ReasonLogin})

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.calls == 1
	}, time.Second, 5*time.Millisecond)
	repo.mu.Lock()
	repo.fail = false
	repo.mu.Unlock()

	listener(domain.SessionChange{SessionID: "s", Reason: domain.ReasonLogout})
	require.Eventually(t, func() bool { return len(repo.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.ReasonLogout, repo.snapshot()[0].Reason)
}
