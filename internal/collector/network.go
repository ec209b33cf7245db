package collector

import (
	"context"
	"fmt"
	"net/netip"
	"slices"

	"github.com/prabalesh/hwinfo/internal/models"
)

const broadcastMAC = "ff:ff:ff:ff:ff:ff"

// collectNetwork records the IPv4 and link-layer addresses of every interface.
// When an interface carries several IPv4 addresses the last one wins.
func (s *StatsCollector) collectNetwork(ctx context.Context, snap *models.Snapshot) error {
	ifaces, err := s.source.Interfaces(ctx)
	if err != nil {
		return fmt.Errorf("network interfaces: %w", err)
	}

	for _, ifc := range ifaces {
		n := models.NetworkInterface{Name: ifc.Name}
		canBroadcast := slices.Contains(ifc.Flags, "broadcast")

		for _, addr := range ifc.Addrs {
			prefix, err := netip.ParsePrefix(addr.Addr)
			if err != nil || !prefix.Addr().Is4() {
				continue
			}
			n.IPAddress = prefix.Addr().String()
			n.Netmask = ipv4Mask(prefix.Bits()).String()
			n.BroadcastIP = ""
			if canBroadcast {
				n.BroadcastIP = ipv4Broadcast(prefix).String()
			}
		}

		if ifc.HardwareAddr != "" {
			n.MACAddress = ifc.HardwareAddr
			if canBroadcast {
				n.BroadcastMAC = broadcastMAC
			}
		}

		snap.Network = append(snap.Network, n)
	}

	return nil
}

func (s *StatsCollector) collectNetIO(ctx context.Context, snap *models.Snapshot) error {
	counters, err := s.source.NetIOCounters(ctx)
	if err != nil {
		return fmt.Errorf("network io counters: %w", err)
	}
	if len(counters) == 0 {
		return fmt.Errorf("network io counters: %w", ErrUnavailableMetric)
	}

	snap.NetIO = &models.NetIO{
		BytesSent: counters[0].BytesSent,
		BytesRecv: counters[0].BytesRecv,
	}
	return nil
}

func ipv4Mask(bits int) netip.Addr {
	var m uint32
	if bits > 0 {
		m = ^uint32(0) << (32 - bits)
	}
	return netip.AddrFrom4([4]byte{byte(m >> 24), byte(m >> 16), byte(m >> 8), byte(m)})
}

func ipv4Broadcast(prefix netip.Prefix) netip.Addr {
	addr := prefix.Addr().As4()
	mask := ipv4Mask(prefix.Bits()).As4()
	for i := range addr {
		addr[i] |= ^mask[i]
	}
	return netip.AddrFrom4(addr)
}
