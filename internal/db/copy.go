package db

// Row is a value that can be COPY-loaded.
type Row interface {
	CopyValues() []any
}

// ChannelSource implements pgx.CopyFromSource by reading rows from a channel.
// The producer side gets backpressure from the COPY writer.
type ChannelSource[T Row] struct {
	ch      <-chan T
	current T
	rows    int64
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource[T Row](ch <-chan T) *ChannelSource[T] {
	return &ChannelSource[T]{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource[T]) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	s.rows++
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource[T]) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err always returns nil; producer errors travel on their own channel.
func (s *ChannelSource[T]) Err() error {
	return nil
}

// Rows returns how many rows have been handed to COPY so far.
func (s *ChannelSource[T]) Rows() int64 {
	return s.rows
}
