package document

import "github.com/zeebo/xxh3"

// Fingerprint returns a 64-bit hash of the document text. Two stores
// holding the same text fingerprint identically regardless of how they
// were edited into that state, so the hash is cheap to compare across
// snapshots and replicas.
func (s *Store) Fingerprint() uint64 {
	return xxh3.HashString(s.Text())
}
