package domain

const DefaultLogCapacity = 100

// LogBuffer keeps the most recent lines, dropping the oldest when full.
// It is not safe for concurrent use.
type LogBuffer struct {
	lines    []string
	capacity int
}

func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}

	return &LogBuffer{
		lines:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

func (b *LogBuffer) Append(line string) {
	if len(b.lines) == b.capacity {
		copy(b.lines, b.lines[1:])
		b.lines = b.lines[:len(b.lines)-1]
	}
	b.lines = append(b.lines, line)
}

func (b *LogBuffer) Len() int {
	return len(b.lines)
}

// Lines returns a copy in insertion order.
func (b *LogBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
