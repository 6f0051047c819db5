package scan

import (
	"fmt"
	"sort"
	"strconv"
)

type Protocol string

const (
	TCP Protocol = "tcp"
	UDP Protocol = "udp"
)

// Port is a single open port record taken from a report.
type Port struct {
	Number   int
	Protocol Protocol
}

func (p Port) String() string {
	return strconv.Itoa(p.Number) + "/" + string(p.Protocol)
}

type PortSet map[Port]struct{}

func NewPortSet(ports ...Port) PortSet {
	set := PortSet{}
	for _, port := range ports {
		set.Add(port)
	}
	return set
}

func (s PortSet) Add(port Port) {
	s[port] = struct{}{}
}

func (s PortSet) Has(port Port) bool {
	_, ok := s[port]
	return ok
}

func (s PortSet) Len() int {
	return len(s)
}

// Minus returns the ports in s which are not in other.
func (s PortSet) Minus(other PortSet) PortSet {
	out := PortSet{}
	for port := range s {
		if !other.Has(port) {
			out.Add(port)
		}
	}
	return out
}

func (s PortSet) Equal(other PortSet) bool {
	if len(s) != len(other) {
		return false
	}
	for port := range s {
		if !other.Has(port) {
			return false
		}
	}
	return true
}

// Sorted returns the ports ordered by their "port/protocol" string, so 1000/tcp
// sorts before 22/tcp.
func (s PortSet) Sorted() []Port {
	ports := make([]Port, 0, len(s))
	for port := range s {
		ports = append(ports, port)
	}
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].String() < ports[j].String()
	})
	return ports
}

// Snapshot maps a host identifier to the set of ports reported open on it.
type Snapshot map[string]PortSet

func (s Snapshot) Hosts() []string {
	hosts := make([]string, 0, len(s))
	for host := range s {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

func (s Snapshot) add(host string, port Port) {
	set, ok := s[host]
	if !ok {
		set = PortSet{}
		s[host] = set
	}
	set.Add(port)
}

func (s Snapshot) String() string {

	text := fmt.Sprintf("%d host(s) with open ports\n", len(s))

	for _, host := range s.Hosts() {
		text = fmt.Sprintf("%sScan results for host %s\n", text, host)
		text = fmt.Sprintf("%s\t%s\t%s\n", text, pad("PORT", 10), "SERVICE")
		for _, port := range s[host].Sorted() {
			text = fmt.Sprintf(
				"%s\t%s\t%s\n",
				text,
				pad(port.String(), 10),
				DescribePort(port),
			)
		}
	}

	return text
}

func pad(input string, length int) string {
	for len(input) < length {
		input += " "
	}
	return input
}
