package scan

import (
	"fmt"
	"strings"

	"github.com/google/gopacket/layers"
)

// DescribePort returns the IANA service name for a port, or an empty string if
// there isn't a well-known one.
func DescribePort(port Port) string {
	if port.Number < 0 || port.Number > 65535 {
		return ""
	}

	var named fmt.Stringer
	switch port.Protocol {
	case TCP:
		named = layers.TCPPort(port.Number)
	case UDP:
		named = layers.UDPPort(port.Number)
	default:
		return ""
	}

	// gopacket renders well-known ports as "80(http)"
	s := named.String()
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return ""
	}
	return s[open+1 : len(s)-1]
}
