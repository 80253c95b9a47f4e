// Package regex keeps a registry of regular expression engines used to
// compile lexical rule patterns.
package regex

import (
	"sort"
	"sync"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrRegexAlreadyRegistered is returned when there is a previously
	// registered regex engine with the same name.
	ErrRegexAlreadyRegistered = errors.NewKind("regex engine already registered: %s")
	// ErrRegexNameEmpty returned when the name is "".
	ErrRegexNameEmpty = errors.NewKind("regex engine name cannot be empty")
	// ErrRegexNotFound returned when the regex engine is not registered.
	ErrRegexNotFound = errors.NewKind("regex engine not found: %s")
	// ErrInvalidPattern is returned when a pattern does not compile.
	ErrInvalidPattern = errors.NewKind("invalid pattern %q: %s")

	mu            sync.RWMutex
	registry      map[string]Constructor
	defaultEngine string
)

// Matcher recognises a pattern at the start of a text.
type Matcher interface {
	// Prefix returns the length in bytes of the match anchored at the
	// beginning of text, or -1 when the pattern does not match there.
	Prefix(text string) int
	// Pattern returns the source pattern, without the anchor.
	Pattern() string
}

// Constructor compiles a pattern into a Matcher.
type Constructor func(pattern string) (Matcher, error)

// CompileHistogram describes pattern compile time, labeled by engine.
var CompileHistogram metrics.Histogram = discard.NewHistogram()

// Register adds a new regex engine to the registry.
func Register(name string, c Constructor) error {
	mu.Lock()
	defer mu.Unlock()

	if registry == nil {
		registry = make(map[string]Constructor)
	}

	if name == "" {
		return ErrRegexNameEmpty.New()
	}

	if _, ok := registry[name]; ok {
		return ErrRegexAlreadyRegistered.New(name)
	}

	registry[name] = c
	return nil
}

// Engines returns the sorted list of regex engine names.
func Engines() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New compiles pattern with the named regex engine.
func New(name, pattern string) (Matcher, error) {
	mu.RLock()
	c, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, ErrRegexNotFound.New(name)
	}

	return c(pattern)
}

// Default returns the default regex engine.
func Default() string {
	mu.RLock()
	defer mu.RUnlock()

	if defaultEngine != "" {
		return defaultEngine
	}
	return "go"
}

// SetDefault sets the regex engine returned by Default. An empty name
// restores the built-in default.
func SetDefault(name string) {
	mu.Lock()
	defer mu.Unlock()
	defaultEngine = name
}
