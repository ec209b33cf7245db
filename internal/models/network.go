package models

// NetworkInterface carries the last IPv4 and link-layer address seen on an
// interface. Empty strings mean the address family was absent.
type NetworkInterface struct {
	Name         string `json:"name"`
	IPAddress    string `json:"ip_address"`
	Netmask      string `json:"netmask"`
	BroadcastIP  string `json:"broadcast_ip"`
	MACAddress   string `json:"mac_address"`
	BroadcastMAC string `json:"broadcast_mac"`
}

func (n NetworkInterface) HasIPv4() bool {
	return n.IPAddress != ""
}

func (n NetworkInterface) HasLink() bool {
	return n.MACAddress != ""
}

type NetIO struct {
	BytesSent uint64 `json:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv"`
}
