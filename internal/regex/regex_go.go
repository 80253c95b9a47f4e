package regex

import (
	"regexp"
	"time"
)

// Go holds a go regexp engine Matcher. Patterns are anchored with \A so a
// match can only begin at offset zero.
type Go struct {
	pattern string
	reg     *regexp.Regexp
}

// Prefix implements Matcher interface.
func (r *Go) Prefix(s string) int {
	loc := r.reg.FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[1]
}

// Pattern implements Matcher interface.
func (r *Go) Pattern() string { return r.pattern }

// NewGo creates a new Matcher using go regex engine.
func NewGo(pattern string) (Matcher, error) {
	t := time.Now()
	reg, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, ErrInvalidPattern.New(pattern, err)
	}
	CompileHistogram.With("engine", "go").Observe(time.Since(t).Seconds())

	return &Go{pattern: pattern, reg: reg}, nil
}

func init() {
	err := Register("go", NewGo)
	if err != nil {
		panic(err.Error())
	}
}
