package utils

import (
	"math/rand/v2"
	"strings"
	"sync"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MockAddressFragments are the lengths of the base-36 fragments a mock token
// address is built from. Their sum (34) is the address length.
var MockAddressFragments = []int{9, 9, 9, 7}

// MockAddressLength is the length of every generated mock address.
const MockAddressLength = 34

// MockAddressGenerator fabricates demo token addresses. It is NOT cryptographic:
// addresses carry no key, no checksum and no uniqueness guarantee.
type MockAddressGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockAddressGenerator returns a generator. A nil source uses the global math/rand/v2 source.
func NewMockAddressGenerator(src rand.Source) *MockAddressGenerator {
	g := &MockAddressGenerator{}
	if src != nil {
		g.rnd = rand.New(src)
	}
	return g
}

// Next returns a new lowercase alphanumeric address of MockAddressLength characters.
func (g *MockAddressGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	sb.Grow(MockAddressLength)
	for _, n := range MockAddressFragments {
		sb.WriteString(g.fragment(n))
	}
	return sb.String()
}

func (g *MockAddressGenerator) fragment(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36Alphabet[g.intN(len(base36Alphabet))]
	}
	return string(b)
}

func (g *MockAddressGenerator) intN(n int) int {
	if g.rnd == nil {
		return rand.IntN(n)
	}
	return g.rnd.IntN(n)
}

// IsMockAddress reports whether s has the shape produced by MockAddressGenerator.
func IsMockAddress(s string) bool {
	if len(s) != MockAddressLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(base36Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
