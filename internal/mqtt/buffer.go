package mqtt

import "log"

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog is a fixed-capacity FIFO holding messages while the broker is
// unreachable. When full, the oldest reading is dropped: a stale moisture
// sample is worth less than a fresh one.
// Not safe for concurrent use. Caller must synchronize.
type backlog struct {
	buf      []bufferedMsg
	capacity int
	next     int // next write position
	count    int
	dropping bool // true if any message was dropped since last drain
}

func newBacklog(capacity int) *backlog {
	return &backlog{
		buf:      make([]bufferedMsg, capacity),
		capacity: capacity,
	}
}

func (b *backlog) push(msg bufferedMsg) {
	if b.count == b.capacity {
		if !b.dropping {
			log.Printf("mqtt: backlog full (%d messages), dropping oldest", b.capacity)
			b.dropping = true
		}
		// next already points at the oldest entry; overwrite it.
		b.buf[b.next] = msg
		b.next = (b.next + 1) % b.capacity
		return
	}
	b.buf[b.next] = msg
	b.next = (b.next + 1) % b.capacity
	b.count++
}

// drain returns the buffered messages oldest-first and empties the backlog.
func (b *backlog) drain() []bufferedMsg {
	if b.count == 0 {
		return nil
	}

	result := make([]bufferedMsg, b.count)
	oldest := (b.next - b.count + b.capacity) % b.capacity
	for i := 0; i < b.count; i++ {
		result[i] = b.buf[(oldest+i)%b.capacity]
	}

	b.count = 0
	b.next = 0
	b.dropping = false
	return result
}

func (b *backlog) size() int {
	return b.count
}
