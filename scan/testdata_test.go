package scan

const sampleReport = `Starting Nmap 7.94 ( https://nmap.org ) at 2026-10-17 09:00 UTC
Nmap scan report for 10.0.0.1
Host is up (0.00031s latency).
Not shown: 997 closed tcp ports (reset)
PORT    STATE SERVICE
22/tcp  open  ssh
80/tcp  open  http
53/udp  open  domain

Nmap scan report for router.lan (10.0.0.254)
Host is up (0.0012s latency).
PORT     STATE SERVICE
443/tcp  open  https

Nmap done: 256 IP addresses (2 hosts up) scanned in 3.21 seconds
`

// the first host has no open ports, so the legacy matcher attributes the second
// host's port to it
const leakyReport = `Nmap scan report for 10.0.0.5
Host is up.
All 1000 scanned ports on 10.0.0.5 are in ignored states.

Nmap scan report for 10.0.0.6
Host is up.
PORT     STATE SERVICE
3389/tcp open  ms-wbt-server
`
