package services

import (
	"sync"

	"github.com/seshego-consulting/portal_backend/internal/core/domain"
)

// submissionFeed fans submission events out to live review sessions. A slow
// subscriber loses events rather than blocking the workflow; the admin UI
// refetches the full list on every event anyway.
type submissionFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan domain.SubmissionEvent
}

func newSubmissionFeed() *submissionFeed {
	return &submissionFeed{subs: make(map[int]chan domain.SubmissionEvent)}
}

// Subscribe registers a subscriber. The cancel func unregisters it and
// closes the channel.
func (f *submissionFeed) Subscribe() (<-chan domain.SubmissionEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan domain.SubmissionEvent, 8)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// publish delivers the event to every subscriber, dropping it for any whose
// buffer is full.
func (f *submissionFeed) publish(event domain.SubmissionEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
