package rng

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand"
)

// Source produces uniformly distributed draws for outcome resolution.
// Implementations carry no state visible to callers beyond their seed.
type Source interface {
	// Float64 returns a uniform value in [0,1)
	Float64() float64

	// IntN returns a uniform integer in the closed range [lo, hi]
	IntN(lo, hi int) (int, error)
}

// cryptoSource draws from crypto/rand. This is the production source: draws
// are not predictable by the client application.
type cryptoSource struct{}

// NewCryptoSource returns the production randomness source
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	// 53 bits of mantissa, same mapping math/rand uses
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

func (s cryptoSource) IntN(lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("invalid range [%d,%d]", lo, hi)
	}
	return lo + int(s.Float64()*float64(hi-lo+1)), nil
}

// seededSource wraps math/rand for deterministic tests and replay
type seededSource struct {
	r *rand.Rand
}

// NewSeeded returns a deterministic source for tests and round replay
func NewSeeded(seed int64) Source {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Float64() float64 {
	return s.r.Float64()
}

func (s *seededSource) IntN(lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("invalid range [%d,%d]", lo, hi)
	}
	return lo + s.r.Intn(hi-lo+1), nil
}

// GenerateServerSeed creates a cryptographically secure random seed for a
// seed-committed round (used by the crash game)
func GenerateServerSeed() string {
	b := make([]byte, 32)
	if _, err := crand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(b)
}

// Commitment returns the SHA-256 commitment published before the round.
// The seed itself stays hidden until settlement.
func Commitment(serverSeed string) string {
	h := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(h[:])
}

// FloatFromSeeds maps (serverSeed, clientSeed, nonce) to a uniform [0,1)
// value via HMAC-SHA256, so a committed draw can be verified after the fact
func FloatFromSeeds(serverSeed, clientSeed string, nonce uint64) float64 {
	mac := hmac.New(sha256.New, []byte(serverSeed))
	fmt.Fprintf(mac, "%s:%d", clientSeed, nonce)
	sum := mac.Sum(nil)
	return float64(binary.BigEndian.Uint64(sum[:8])>>11) / (1 << 53)
}
