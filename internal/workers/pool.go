package workers

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// shardedPool runs one goroutine per shard. Messages with the same key
// always land on the same shard, so events of one customer are handled in
// stream order while different customers proceed in parallel.
type shardedPool struct {
	shards []chan kafkago.Message
	handle func(ctx context.Context, shard int, msg kafkago.Message)
	wg     sync.WaitGroup
}

func newShardedPool(numShards, queueSize int, handle func(context.Context, int, kafkago.Message)) *shardedPool {
	p := &shardedPool{
		shards: make([]chan kafkago.Message, numShards),
		handle: handle,
	}
	for i := range p.shards {
		p.shards[i] = make(chan kafkago.Message, queueSize)
	}
	return p
}

// start launches the shard workers. They run until close is called and
// their queues are empty.
func (p *shardedPool) start(ctx context.Context) {
	for i, ch := range p.shards {
		p.wg.Add(1)
		go func(shard int, ch <-chan kafkago.Message) {
			defer p.wg.Done()
			for msg := range ch {
				p.handle(ctx, shard, msg)
			}
		}(i, ch)
	}
}

// submit queues msg on its shard, blocking while the shard is full.
func (p *shardedPool) submit(ctx context.Context, msg kafkago.Message) error {
	select {
	case p.shards[shardFor(msg.Key, len(p.shards))] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *shardedPool) close() {
	for _, ch := range p.shards {
		close(ch)
	}
}

// wait blocks until every shard has drained, or timeout. It reports
// whether the drain finished.
func (p *shardedPool) wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func shardFor(key []byte, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write(key)
	return int(h.Sum32() % uint32(n))
}

// offsetTracker releases offsets for commit only once every earlier
// message of the same partition has finished. Committing a later offset
// would otherwise skip an earlier message still in flight on another shard.
type offsetTracker struct {
	mu         sync.Mutex
	partitions map[int]*partitionOffsets
}

type partitionOffsets struct {
	inFlight []int64
	finished map[int64]kafkago.Message
}

func newOffsetTracker() *offsetTracker {
	return &offsetTracker{partitions: make(map[int]*partitionOffsets)}
}

// track registers a fetched message. Messages of one partition must be
// tracked in fetch order.
func (t *offsetTracker) track(msg kafkago.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.partitions[msg.Partition]
	if p == nil {
		p = &partitionOffsets{finished: make(map[int64]kafkago.Message)}
		t.partitions[msg.Partition] = p
	}
	p.inFlight = append(p.inFlight, msg.Offset)
}

// finish marks msg done and returns the highest message that can now be
// committed, if any.
func (t *offsetTracker) finish(msg kafkago.Message) (kafkago.Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.partitions[msg.Partition]
	if p == nil {
		return kafkago.Message{}, false
	}
	p.finished[msg.Offset] = msg

	var commit kafkago.Message
	advanced := false
	for len(p.inFlight) > 0 {
		head := p.inFlight[0]
		m, ok := p.finished[head]
		if !ok {
			break
		}
		delete(p.finished, head)
		p.inFlight = p.inFlight[1:]
		commit = m
		advanced = true
	}
	return commit, advanced
}

// pending returns the number of tracked messages not yet committable.
func (t *offsetTracker) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, p := range t.partitions {
		n += len(p.inFlight)
	}
	return n
}
