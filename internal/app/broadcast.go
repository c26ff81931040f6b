package app

// broadcaster fans state snapshots out to view-layer subscribers. A slow
// subscriber has its stale snapshot dropped so publishers never block.
// Callers must hold the owning store's lock.
type broadcaster[T any] struct {
	subscribers map[chan T]struct{}
}

func newBroadcaster[T any]() broadcaster[T] {
	return broadcaster[T]{subscribers: make(map[chan T]struct{})}
}

func (b broadcaster[T]) publish(snapshot T) {
	for ch := range b.subscribers {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func (b broadcaster[T]) add(ch chan T) {
	b.subscribers[ch] = struct{}{}
}

// remove reports whether the channel was still subscribed, so the caller can
// close it exactly once.
func (b broadcaster[T]) remove(ch chan T) bool {
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		return true
	}
	return false
}

func (b broadcaster[T]) closeAll() {
	for ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, ch)
	}
}
