// Package watch implements snapshot subscriptions over Redis pub/sub.
// Every repository write publishes the document it just persisted; a
// subscriber gets each snapshot pushed until it cancels explicitly.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agroshop/admin-api/internal/redisx"
)

const (
	KindUpsert = "upsert"
	KindDelete = "delete"
)

type Snapshot struct {
	Collection string          `json:"collection"`
	Kind       string          `json:"kind"` // upsert | delete
	DocID      string          `json:"doc_id"`
	Data       json.RawMessage `json:"data,omitempty"`
	At         time.Time       `json:"at"`
}

type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb}
}

// Publish pushes a document snapshot on the collection's channel. Writers
// treat this as best-effort: a dropped snapshot only delays the dashboard
// until the next write.
func (h *Hub) Publish(ctx context.Context, collection, kind, docID string, doc any) {
	snap := Snapshot{
		Collection: collection,
		Kind:       kind,
		DocID:      docID,
		At:         time.Now().UTC(),
	}
	if doc != nil {
		b, err := json.Marshal(doc)
		if err != nil {
			log.Printf("watch: marshal %s/%s: %v", collection, docID, err)
			return
		}
		snap.Data = b
	}
	channel := fmt.Sprintf(redisx.KeyWatchChannel, collection)
	if err := h.rdb.Publish(ctx, channel, mustMarshal(snap)).Err(); err != nil {
		log.Printf("watch: publish %s: %v", channel, err)
	}
}

type Handler func(Snapshot)

// Subscription is a live watch on one collection. Cancel detaches it; there
// is no implicit teardown.
type Subscription struct {
	ps     *redis.PubSub
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *Subscription) Cancel() {
	s.cancel()
	_ = s.ps.Close()
	<-s.done
}

// Done is closed once the delivery loop has exited.
func (s *Subscription) Done() <-chan struct{} { return s.done }

func (h *Hub) Subscribe(ctx context.Context, collection string, fn Handler) (*Subscription, error) {
	channel := fmt.Sprintf(redisx.KeyWatchChannel, collection)
	ps := h.rdb.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{ps: ps, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		ch := ps.Channel()
		for {
			select {
			case <-sctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				var snap Snapshot
				if err := json.Unmarshal([]byte(m.Payload), &snap); err != nil {
					log.Printf("watch: bad snapshot on %s: %v", channel, err)
					continue
				}
				fn(snap)
			}
		}
	}()
	return sub, nil
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
