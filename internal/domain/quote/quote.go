// Package quote holds the read-only pool served by GET /api/quote.
package quote

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyPool is returned when a pool would contain no quotes.
var ErrEmptyPool = errors.New("quote: pool is empty")

// DefaultQuotes is the built-in pool used when no quotes file is configured.
var DefaultQuotes = []string{
	"Jangan menyerah — langkah kecil hari ini adalah kemenangan besar esok.",
	"Kesuksesan datang kepada mereka yang tak takut mencoba lagi.",
	"Dream big. Work hard. Stay humble.",
	"Belajar dari kemarin, hidup untuk hari ini, berharap untuk besok.",
	"Kerja keras + konsistensi = hasil.",
}

// Pool is an immutable, ordered, non-empty list of quotes.
// Safe for concurrent use.
type Pool struct {
	quotes []string
	intn   func(n int) int
}

// NewPool copies quotes into a new Pool.
func NewPool(quotes []string) (*Pool, error) {
	if len(quotes) == 0 {
		return nil, ErrEmptyPool
	}
	return &Pool{quotes: append([]string(nil), quotes...), intn: rand.IntN}, nil
}

// Default returns a Pool over DefaultQuotes.
func Default() *Pool {
	p, _ := NewPool(DefaultQuotes)
	return p
}

// Random returns one quote, each with probability 1/Len().
func (p *Pool) Random() string {
	return p.quotes[p.intn(len(p.quotes))]
}

// Len returns the pool size.
func (p *Pool) Len() int { return len(p.quotes) }

// All returns a copy of the pool in order.
func (p *Pool) All() []string { return append([]string(nil), p.quotes...) }

type poolFile struct {
	Quotes []string `yaml:"quotes"`
}

// LoadFile reads a YAML file of the form:
//
//	quotes:
//	  - "first"
//	  - "second"
func LoadFile(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quote: read %s: %w", path, err)
	}
	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("quote: parse %s: %w", path, err)
	}
	quotes := f.Quotes[:0:0]
	for _, q := range f.Quotes {
		if q != "" {
			quotes = append(quotes, q)
		}
	}
	p, err := NewPool(quotes)
	if err != nil {
		return nil, fmt.Errorf("quote: %s: %w", path, err)
	}
	return p, nil
}
