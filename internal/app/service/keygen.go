package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// KeyCharset — допустимые символы короткого ключа.
const KeyCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

const (
	MinKeyLength     = 5
	MaxKeyLength     = 8
	DefaultKeyLength = 6
)

// KeyGenerator выдаёт псевдослучайные ключи из KeyCharset.
// Не криптостойкий, коллизии возможны.
type KeyGenerator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	length int
}

// NewKeyGenerator создаёт генератор ключей длины length поверх источника rnd.
// Передача rnd с фиксированным seed делает последовательность ключей детерминированной.
func NewKeyGenerator(rnd *rand.Rand, length int) (*KeyGenerator, error) {
	if length < MinKeyLength || length > MaxKeyLength {
		return nil, fmt.Errorf("%w: key length %d out of range [%d, %d]",
			ErrInvalidConfig, length, MinKeyLength, MaxKeyLength)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &KeyGenerator{rnd: rnd, length: length}, nil
}

// NewKey возвращает очередной ключ.
func (g *KeyGenerator) NewKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, g.length)
	for i := range b {
		b[i] = KeyCharset[g.rnd.Intn(len(KeyCharset))]
	}
	return string(b)
}

// Length возвращает длину генерируемых ключей.
func (g *KeyGenerator) Length() int {
	return g.length
}
