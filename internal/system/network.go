package system

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrNoAddress is returned when no interface carries a usable IPv4 address.
var ErrNoAddress = errors.New("no non-loopback IPv4 address")

// PrimaryIPv4 returns the first IPv4 address of an interface that is up and
// not a loopback device.
func PrimaryIPv4() (net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	return primaryIPv4(ifaces, func(iface net.Interface) ([]net.Addr, error) { return iface.Addrs() })
}

func primaryIPv4(ifaces []net.Interface, addrs func(net.Interface) ([]net.Addr, error)) (net.IP, error) {
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		list, err := addrs(iface)
		if err != nil {
			continue
		}
		for _, a := range list {
			var ip net.IP
			switch v := a.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() && !ip4.IsLinkLocalUnicast() {
				return ip4, nil
			}
		}
	}
	return nil, ErrNoAddress
}

// LinkBase builds the URL other devices on the network reach listenAddr at.
// An explicit host in listenAddr wins over the detected address.
func LinkBase(listenAddr string, detect func() (net.IP, error)) (string, error) {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "", fmt.Errorf("listen address %q: %w", listenAddr, err)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		ip, err := detect()
		if err != nil {
			return "", err
		}
		host = ip.String()
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port == "80" {
		return "http://" + host, nil
	}
	return "http://" + host + ":" + port, nil
}
