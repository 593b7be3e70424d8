package ir

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Fingerprint is the content hash of a Schema's canonical JSON
// encoding, used to detect whether the target database has drifted
// from the state a plan was computed against (spec §3 "Fingerprint").
type Fingerprint struct {
	Hash string
}

// ComputeFingerprint hashes the schema's canonical form. encoding/json
// sorts map keys when marshaling, and every Schema map is already
// keyed by canonical name, so two Schema values built from the same
// logical state always marshal byte-for-byte identically regardless
// of parse or introspection order.
func ComputeFingerprint(s *Schema) (*Fingerprint, error) {
	hash, err := hashObject(s)
	if err != nil {
		return nil, fmt.Errorf("compute schema fingerprint: %w", err)
	}
	return &Fingerprint{Hash: hash}, nil
}

func hashObject(obj interface{}) (string, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// String returns a short human-readable form for log lines.
func (f *Fingerprint) String() string {
	if len(f.Hash) >= 12 {
		return f.Hash[:12]
	}
	return f.Hash
}

// Equal reports whether two fingerprints have the same hash.
func (f *Fingerprint) Equal(other *Fingerprint) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Hash == other.Hash
}
