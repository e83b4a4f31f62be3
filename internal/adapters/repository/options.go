package repository

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithMaxRetests keeps only the newest n retests per athlete; n <= 0 keeps all.
func WithMaxRetests(n int) Option {
	return func(s *MemoryStore) {
		s.maxRetests = n
	}
}
