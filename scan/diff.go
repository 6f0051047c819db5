package scan

import (
	"fmt"
	"sort"
	"strings"
)

type ChangeKind uint8

const (
	NewHost ChangeKind = iota
	HostLeft
	PortsOpened
	PortsClosed
)

func (k ChangeKind) String() string {
	switch k {
	case NewHost:
		return "new_host"
	case HostLeft:
		return "host_left"
	case PortsOpened:
		return "ports_opened"
	case PortsClosed:
		return "ports_closed"
	}
	return "unknown"
}

// Change is one difference between two snapshots. Ports are always sorted.
type Change struct {
	Kind  ChangeKind
	Host  string
	Ports []Port
}

func (c Change) String() string {
	return c.Format(NopDescriber{})
}

// Format renders the change as a single log line, using d to annotate ports and
// hosts.
func (c Change) Format(d Describer) string {
	ports := formatPorts(c.Ports, d)
	switch c.Kind {
	case NewHost:
		return fmt.Sprintf("New host %s%s with open ports: %s", c.Host, hardwareSuffix(c.Host, d), ports)
	case HostLeft:
		return fmt.Sprintf("Host %s%s is no longer present (had open ports: %s)", c.Host, hardwareSuffix(c.Host, d), ports)
	case PortsOpened:
		return fmt.Sprintf("New port(s) %s open on host %s", ports, c.Host)
	case PortsClosed:
		return fmt.Sprintf("Port(s) %s closed on host %s", ports, c.Host)
	}
	return fmt.Sprintf("Unknown change on host %s: %s", c.Host, ports)
}

func formatPorts(ports []Port, d Describer) string {
	parts := make([]string, 0, len(ports))
	for _, port := range ports {
		if service := d.Service(port); service != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", port, service))
			continue
		}
		parts = append(parts, port.String())
	}
	return strings.Join(parts, ", ")
}

func hardwareSuffix(host string, d Describer) string {
	if hw := d.Hardware(host); hw != "" {
		return " [" + hw + "]"
	}
	return ""
}

// Diff compares two snapshots. Hosts are visited in lexicographic order, and for
// a host present in both, opened ports are reported before closed ones.
func Diff(older, newer Snapshot) []Change {
	union := map[string]struct{}{}
	for host := range older {
		union[host] = struct{}{}
	}
	for host := range newer {
		union[host] = struct{}{}
	}
	hosts := make([]string, 0, len(union))
	for host := range union {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	var changes []Change
	for _, host := range hosts {
		before, wasPresent := older[host]
		after, isPresent := newer[host]

		switch {
		case !wasPresent:
			changes = append(changes, Change{Kind: NewHost, Host: host, Ports: after.Sorted()})
		case !isPresent:
			changes = append(changes, Change{Kind: HostLeft, Host: host, Ports: before.Sorted()})
		default:
			if opened := after.Minus(before); opened.Len() > 0 {
				changes = append(changes, Change{Kind: PortsOpened, Host: host, Ports: opened.Sorted()})
			}
			if closed := before.Minus(after); closed.Len() > 0 {
				changes = append(changes, Change{Kind: PortsClosed, Host: host, Ports: closed.Sorted()})
			}
		}
	}

	return changes
}

// Summary counts changes by kind.
type Summary map[ChangeKind]int

func Summarize(changes []Change) Summary {
	summary := Summary{}
	for _, change := range changes {
		summary[change.Kind]++
	}
	return summary
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"%d new host(s), %d host(s) left, %d host(s) with opened ports, %d host(s) with closed ports",
		s[NewHost],
		s[HostLeft],
		s[PortsOpened],
		s[PortsClosed],
	)
}
