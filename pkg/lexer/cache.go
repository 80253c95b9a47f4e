package lexer

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
)

// Cache memoises whole-document tokenization. Tokenizing is a pure function
// of the source and the table, so a hit is always equivalent to a rerun.
// It is safe for concurrent use.
type Cache struct {
	table *Table
	opts  []Option
	lru   *lru.Cache
}

type cacheEntry struct {
	source string
	tokens []Token
}

// NewCache returns a cache holding up to size documents tokenized with
// table (Default() when nil).
func NewCache(size int, table *Table, opts ...Option) (*Cache, error) {
	l, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = Default()
	}
	return &Cache{table: table, opts: opts, lru: l}, nil
}

// Tokenize returns the tokens of source, from the cache when possible. The
// returned slice belongs to the caller. Errors are not cached.
func (c *Cache) Tokenize(source string) ([]Token, error) {
	key := xxhash.Sum64String(source)
	if v, ok := c.lru.Get(key); ok {
		if e := v.(*cacheEntry); e.source == source {
			return cloneTokens(e.tokens), nil
		}
	}

	tokens, err := New(c.table, c.opts...).Tokenize(source)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, &cacheEntry{source: source, tokens: tokens})
	return cloneTokens(tokens), nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every cached document.
func (c *Cache) Purge() { c.lru.Purge() }

func cloneTokens(tokens []Token) []Token {
	if tokens == nil {
		return nil
	}
	out := make([]Token, len(tokens))
	copy(out, tokens)
	return out
}
