package scan

import (
	"fmt"
	"io"
	"time"
)

// WriteReport renders a snapshot in nmap's normal output format. Hosts and ports
// are written in sorted order.
func WriteReport(w io.Writer, snapshot Snapshot, started time.Time) error {

	if _, err := fmt.Fprintf(w, "Starting Nmap ( https://nmap.org ) at %s\n", started.Format("2006-01-02 15:04 MST")); err != nil {
		return err
	}

	for _, host := range snapshot.Hosts() {
		text := fmt.Sprintf("Nmap scan report for %s\nHost is up.\n", host)
		text = fmt.Sprintf("%s%s%s%s\n", text, pad("PORT", 10), pad("STATE", 6), "SERVICE")
		for _, port := range snapshot[host].Sorted() {
			text = fmt.Sprintf(
				"%s%s%s%s\n",
				text,
				pad(port.String(), 10),
				pad("open", 6),
				DescribePort(port),
			)
		}
		if _, err := fmt.Fprintf(w, "%s\n", text); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Nmap done: %d IP address(es) (%d host(s) up)\n", len(snapshot), len(snapshot))
	return err
}
