package scan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrNotFound is returned when a report file does not exist at read time.
var ErrNotFound = errors.New("scan report not found")

// Parser turns the text of an nmap report into a Snapshot. Hosts without any open
// port in the report are not represented in the result, and text that does not
// follow the report format yields an empty or partial snapshot rather than an error.
type Parser struct {
	matcher Matcher
}

// NewParser creates a parser using the given matcher. A nil matcher defaults to
// BlockMatcher.
func NewParser(matcher Matcher) *Parser {
	if matcher == nil {
		matcher = BlockMatcher{}
	}
	return &Parser{matcher: matcher}
}

func (p *Parser) ParseString(text string) Snapshot {
	snapshot := Snapshot{}
	for _, match := range p.matcher.Match(text) {
		snapshot.add(match.Host, match.Port)
	}
	return snapshot
}

func (p *Parser) Parse(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return p.ParseString(string(data)), nil
}

func (p *Parser) ParseFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	return p.ParseString(string(data)), nil
}
