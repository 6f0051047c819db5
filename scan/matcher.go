package scan

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const reportMarker = "Nmap scan report for "

// Match is a single host/port pair found in a report.
type Match struct {
	Host string
	Port Port
}

// Matcher extracts host/port pairs from the text of a scan report.
type Matcher interface {
	Match(text string) []Match
}

// BlockMatcher treats everything between one "Nmap scan report for" line and the
// next as a block belonging to the first line's host, and collects every open
// port triple inside it.
type BlockMatcher struct{}

func (BlockMatcher) Match(text string) []Match {
	var matches []Match

	pos := strings.Index(text, reportMarker)
	for pos >= 0 {
		host, hostEnd := hostAt(text, pos+len(reportMarker))

		blockEnd := len(text)
		next := strings.Index(text[hostEnd:], reportMarker)
		if next >= 0 {
			blockEnd = hostEnd + next
		}

		if host != "" {
			from := hostEnd
			for {
				port, end, ok := nextTriple(text[:blockEnd], from)
				if !ok {
					break
				}
				matches = append(matches, Match{Host: host, Port: port})
				from = end
			}
		}

		if next < 0 {
			break
		}
		pos = blockEnd
	}

	return matches
}

// FirstMatchMatcher pairs each "Nmap scan report for" line with the first open
// port triple that follows it, crossing line breaks and later report lines if it
// has to. Scanning resumes after the consumed triple, so a host contributes one
// port per report line.
type FirstMatchMatcher struct{}

func (FirstMatchMatcher) Match(text string) []Match {
	var matches []Match

	from := 0
	for {
		idx := strings.Index(text[from:], reportMarker)
		if idx < 0 {
			return matches
		}
		host, hostEnd := hostAt(text, from+idx+len(reportMarker))
		if host == "" {
			from = hostEnd
			continue
		}

		port, end, ok := nextTriple(text, hostEnd)
		if !ok {
			return matches
		}
		matches = append(matches, Match{Host: host, Port: port})
		from = end
	}
}

// hostAt reads the non-whitespace token starting at pos.
func hostAt(text string, pos int) (string, int) {
	end := pos
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return text[pos:end], end
}

// nextTriple finds the earliest "<digits>/<tcp|udp><spaces>open" at or after
// from, returning the parsed port and the offset just past "open".
func nextTriple(text string, from int) (Port, int, bool) {
	search := from
	for {
		slash := strings.IndexByte(text[search:], '/')
		if slash < 0 {
			return Port{}, 0, false
		}
		slash += search
		search = slash + 1

		start := slash
		for start > from && isDigit(text[start-1]) {
			start--
		}
		if start == slash {
			continue
		}

		rest := text[slash+1:]
		var proto Protocol
		switch {
		case strings.HasPrefix(rest, string(TCP)):
			proto = TCP
		case strings.HasPrefix(rest, string(UDP)):
			proto = UDP
		default:
			continue
		}

		end := slash + 1 + len(proto)
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !unicode.IsSpace(r) {
				break
			}
			end += size
		}
		if !strings.HasPrefix(text[end:], "open") {
			continue
		}

		number, err := strconv.Atoi(text[start:slash])
		if err != nil {
			continue
		}

		return Port{Number: number, Protocol: proto}, end + len("open"), true
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
