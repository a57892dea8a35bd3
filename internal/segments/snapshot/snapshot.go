// Package snapshot holds immutable, versioned segment memberships. Readers
// load the current snapshot without locking; writers publish a new version
// with one pointer swap. Superseded versions stay alive while leased.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSnapshot    = errors.New("segment has no published snapshot")
	ErrStaleVersion  = errors.New("snapshot version is not newer than the current one")
	ErrVersionGone   = errors.New("snapshot version is no longer retained")
	ErrLeaseReleased = errors.New("lease already released")
)

// Snapshot is a sorted, duplicate-free member list. It must not be mutated
// after Build returns.
type Snapshot struct {
	SegmentID uuid.UUID
	Version   int64
	Checksum  string
	BuiltAt   time.Time
	members   []string
}

// Build copies, sorts and deduplicates ids into a new snapshot.
func Build(segmentID uuid.UUID, version int64, ids []string, builtAt time.Time) *Snapshot {
	members := append([]string(nil), ids...)
	sort.Strings(members)
	out := members[:0]
	for i, id := range members {
		if i > 0 && id == members[i-1] {
			continue
		}
		out = append(out, id)
	}
	return &Snapshot{
		SegmentID: segmentID,
		Version:   version,
		Checksum:  Checksum(out),
		BuiltAt:   builtAt,
		members:   out,
	}
}

// Checksum is the sha256 of the sorted ids, newline separated.
func Checksum(sortedIDs []string) string {
	h := sha256.New()
	for _, id := range sortedIDs {
		h.Write([]byte(id))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Snapshot) Size() int {
	return len(s.members)
}

// Members returns the sorted ids. Callers must not modify the slice.
func (s *Snapshot) Members() []string {
	return s.members
}

func (s *Snapshot) Contains(id string) bool {
	i := sort.SearchStrings(s.members, id)
	return i < len(s.members) && s.members[i] == id
}

// Page returns members[offset:offset+limit], clamped.
func (s *Snapshot) Page(offset, limit int) []string {
	if offset >= len(s.members) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(s.members) {
		end = len(s.members)
	}
	return s.members[offset:end]
}

type retained struct {
	snap *Snapshot
	refs int
}

type segmentSlot struct {
	current atomic.Pointer[Snapshot]

	mu       sync.Mutex
	versions map[int64]*retained
}

// Registry is the arena of published snapshots for all segments.
type Registry struct {
	mu    sync.RWMutex
	slots map[uuid.UUID]*segmentSlot
}

func NewRegistry() *Registry {
	return &Registry{slots: make(map[uuid.UUID]*segmentSlot)}
}

func (r *Registry) slot(segmentID uuid.UUID, create bool) *segmentSlot {
	r.mu.RLock()
	s := r.slots[segmentID]
	r.mu.RUnlock()
	if s != nil || !create {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s = r.slots[segmentID]; s == nil {
		s = &segmentSlot{versions: make(map[int64]*retained)}
		r.slots[segmentID] = s
	}
	return s
}

// Current returns the latest published snapshot of a segment.
func (r *Registry) Current(segmentID uuid.UUID) (*Snapshot, bool) {
	s := r.slot(segmentID, false)
	if s == nil {
		return nil, false
	}
	snap := s.current.Load()
	return snap, snap != nil
}

// Publish makes snap the current version of its segment. The previous
// version is collected unless a lease still holds it.
func (r *Registry) Publish(snap *Snapshot) error {
	s := r.slot(snap.SegmentID, true)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if prev != nil && snap.Version <= prev.Version {
		return fmt.Errorf("%w: have %d, got %d", ErrStaleVersion, prev.Version, snap.Version)
	}
	s.versions[snap.Version] = &retained{snap: snap}
	s.current.Store(snap)
	if prev != nil {
		if held := s.versions[prev.Version]; held != nil && held.refs == 0 {
			delete(s.versions, prev.Version)
		}
	}
	return nil
}

// Acquire leases the current snapshot of a segment.
func (r *Registry) Acquire(segmentID uuid.UUID) (*Lease, error) {
	s := r.slot(segmentID, false)
	if s == nil {
		return nil, ErrNoSnapshot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	s.versions[snap.Version].refs++
	return &Lease{slot: s, snap: snap}, nil
}

// AcquireVersion leases a specific retained version.
func (r *Registry) AcquireVersion(segmentID uuid.UUID, version int64) (*Lease, error) {
	s := r.slot(segmentID, false)
	if s == nil {
		return nil, ErrNoSnapshot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.versions[version]
	if !ok {
		return nil, fmt.Errorf("%w: segment %s version %d", ErrVersionGone, segmentID, version)
	}
	held.refs++
	return &Lease{slot: s, snap: held.snap}, nil
}

// Retained lists the versions of a segment still held in memory, ascending.
func (r *Registry) Retained(segmentID uuid.UUID) []int64 {
	s := r.slot(segmentID, false)
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int64, 0, len(s.versions))
	for v := range s.versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Drop forgets the current snapshot of a deleted segment. Leased versions
// survive until released.
func (r *Registry) Drop(segmentID uuid.UUID) {
	s := r.slot(segmentID, false)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.current.Load(); cur != nil {
		if held := s.versions[cur.Version]; held != nil && held.refs == 0 {
			delete(s.versions, cur.Version)
		}
	}
	s.current.Store(nil)
}

// Lease pins one snapshot version until Release.
type Lease struct {
	slot     *segmentSlot
	snap     *Snapshot
	released atomic.Bool
}

func (l *Lease) Snapshot() *Snapshot {
	return l.snap
}

// Release unpins the snapshot. A second call returns ErrLeaseReleased.
func (l *Lease) Release() error {
	if !l.released.CompareAndSwap(false, true) {
		return ErrLeaseReleased
	}

	s := l.slot
	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.versions[l.snap.Version]
	if !ok {
		return nil
	}
	held.refs--
	if held.refs <= 0 && s.current.Load() != l.snap {
		delete(s.versions, l.snap.Version)
	}
	return nil
}
