package scan

import (
	"net"

	"github.com/google/gopacket/macs"
	"github.com/mostlygeek/arp"
)

// Describer annotates ports and hosts when changes are rendered.
type Describer interface {
	Service(port Port) string
	Hardware(host string) string
}

type NopDescriber struct{}

func (NopDescriber) Service(Port) string    { return "" }
func (NopDescriber) Hardware(string) string { return "" }

// ServiceDescriber names ports but leaves hosts alone.
type ServiceDescriber struct{}

func (ServiceDescriber) Service(port Port) string { return DescribePort(port) }
func (ServiceDescriber) Hardware(string) string   { return "" }

// LocalDescriber names ports from the IANA registry and looks hosts up in the
// local ARP cache, so only devices on an attached network get hardware details.
type LocalDescriber struct {
	// Lookup returns the MAC address for an IP. Defaults to the system ARP table.
	Lookup func(ip string) string
}

func NewLocalDescriber() *LocalDescriber {
	return &LocalDescriber{Lookup: arp.Search}
}

func (d *LocalDescriber) Service(port Port) string {
	return DescribePort(port)
}

func (d *LocalDescriber) Hardware(host string) string {
	if d.Lookup == nil || net.ParseIP(host) == nil {
		return ""
	}

	macStr := d.Lookup(host)
	if macStr == "" || macStr == "00:00:00:00:00:00" {
		return ""
	}

	mac, err := net.ParseMAC(macStr)
	if err != nil || len(mac) < 3 {
		return ""
	}

	prefix := [3]byte{
		mac[0],
		mac[1],
		mac[2],
	}
	if manufacturer, ok := macs.ValidMACPrefixMap[prefix]; ok {
		return mac.String() + " " + manufacturer
	}
	return mac.String()
}
