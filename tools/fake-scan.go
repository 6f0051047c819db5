// Command fake-scan stands in for the nmap wrapper script when trying out
// `scandiff watch` locally. Each run writes a report for a fixed set of hosts
// into the output directory, with a few ports randomly opened or closed.
//
//	go build -o fake-scan ./tools && scandiff watch --shell "" --command ./fake-scan --arg output
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/liamg/scandiff/scan"
)

var baseline = scan.Snapshot{
	"192.168.1.1":  scan.NewPortSet(scan.Port{Number: 53, Protocol: scan.UDP}, scan.Port{Number: 80, Protocol: scan.TCP}),
	"192.168.1.10": scan.NewPortSet(scan.Port{Number: 22, Protocol: scan.TCP}),
	"192.168.1.20": scan.NewPortSet(scan.Port{Number: 443, Protocol: scan.TCP}, scan.Port{Number: 8080, Protocol: scan.TCP}),
}

var extra = []scan.Port{
	{Number: 21, Protocol: scan.TCP},
	{Number: 3389, Protocol: scan.TCP},
	{Number: 161, Protocol: scan.UDP},
}

func main() {

	dir := "output"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))

	snapshot := scan.Snapshot{}
	for host, ports := range baseline {
		if rng.Intn(10) == 0 {
			continue // host went away
		}
		set := scan.NewPortSet()
		for port := range ports {
			set.Add(port)
		}
		if rng.Intn(3) == 0 {
			set.Add(extra[rng.Intn(len(extra))])
		}
		snapshot[host] = set
	}

	output, err := os.Create(filepath.Join(dir, fmt.Sprintf("scan_%s.txt", now.Format("2006-01-02_15-04-05"))))
	if err != nil {
		panic(err)
	}
	defer output.Close()

	if err := scan.WriteReport(output, snapshot, now); err != nil {
		panic(err)
	}
}
