// Package discovery browses the LAN for adb mDNS services, the same
// services whose instance names show up as adb-... serials in device
// listings.
package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/grandcat/zeroconf"
)

// Services are the mDNS service types adb devices announce.
var Services = []string{
	"_adb-tls-connect._tcp",
	"_adb._tcp",
}

// Endpoint is one discovered adb service instance.
type Endpoint struct {
	Instance string
	Service  string
	Host     string
	Addrs    []net.IP
	Port     int
}

// ConnectTarget returns the host:port form usable with `adb connect`.
// The first resolved IPv4 address is preferred over the hostname.
func (e Endpoint) ConnectTarget() string {
	for _, ip := range e.Addrs {
		if ip.To4() != nil {
			return fmt.Sprintf("%s:%d", ip, e.Port)
		}
	}
	if len(e.Addrs) > 0 {
		return fmt.Sprintf("[%s]:%d", e.Addrs[0], e.Port)
	}
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// Browse scans for all adb service types until the context expires
// and returns every instance heard.
func Browse(ctx context.Context) ([]Endpoint, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("init mDNS resolver: %w", err)
	}

	var (
		mu        sync.Mutex
		endpoints []Endpoint
		wg        sync.WaitGroup
	)

	for _, service := range Services {
		wg.Add(1)
		go func(srv string) {
			defer wg.Done()

			entries := make(chan *zeroconf.ServiceEntry)
			go func(results <-chan *zeroconf.ServiceEntry) {
				for entry := range results {
					addrs := append([]net.IP{}, entry.AddrIPv4...)
					addrs = append(addrs, entry.AddrIPv6...)
					mu.Lock()
					endpoints = append(endpoints, Endpoint{
						Instance: entry.Instance,
						Service:  srv,
						Host:     entry.HostName,
						Addrs:    addrs,
						Port:     entry.Port,
					})
					mu.Unlock()
				}
			}(entries)

			if err := resolver.Browse(ctx, srv, "local.", entries); err != nil {
				return
			}
			<-ctx.Done()
		}(service)
	}

	wg.Wait()
	return endpoints, nil
}
