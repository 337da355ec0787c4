package kafka

import (
	"context"
	"testing"
	"time"
)

func waitClosed(t *testing.T, p *Producer) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		p.WaitClosed()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("producer loop did not exit")
	}
}

func TestProducerShutdownCloseThenCancel(t *testing.T) {
	// Close followed by cancel must neither close the inbox twice nor
	// leave WaitClosed hanging, whichever select leg wins the race.
	for i := 0; i < 50; i++ {
		p := NewProducer([]string{"localhost:9092"}, "test-events", 8)
		ctx, cancel := context.WithCancel(context.Background())
		p.Start(ctx)

		p.Close()
		cancel()
		waitClosed(t, p)
	}
}

func TestProducerShutdownCancelThenClose(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := NewProducer([]string{"localhost:9092"}, "test-events", 8)
		ctx, cancel := context.WithCancel(context.Background())
		p.Start(ctx)

		cancel()
		p.Close()
		waitClosed(t, p)
	}
}
