package document

import "github.com/dshills/blockdoc/internal/event"

// Option configures a Store at construction time.
type Option func(*Store)

// WithParser sets the parser that splits text into blocks. A store
// without a parser can be queried but not loaded or edited.
func WithParser(p ParseFunc) Option {
	return func(s *Store) { s.parser = p }
}

// WithBus attaches an existing event bus instead of the private one a
// new store creates for itself. Several stores can share one bus.
func WithBus(bus *event.Bus) Option {
	return func(s *Store) {
		if bus != nil {
			s.bus = bus
		}
	}
}

// WithName sets the document name carried on published events.
func WithName(name string) Option {
	return func(s *Store) { s.name = name }
}
