//
//   date  : 2024-03-02
//   author: rqlin
//

package tcpip

import (
	"encoding/binary"
	"errors"
	"net"
)

type IPProtocol byte

const (
	ICMP IPProtocol = 0x01
	TCP  IPProtocol = 0x06
	UDP  IPProtocol = 0x11
)

// MinIPv4HeaderLen is the option-less header size. Real headers may be
// longer; HeaderLen reads the IHL field instead of assuming this value.
const MinIPv4HeaderLen = 20

var (
	ErrIPv4Truncated = errors.New("ipv4 datagram shorter than its declared length")
	ErrIPv4Header    = errors.New("ipv4 header malformed")
	ErrNotIPv4       = errors.New("not an ipv4 datagram")
)

func IsIPv4(packet []byte) bool {
	return (packet[0] >> 4) == 4
}

type IPv4Packet []byte

func (p IPv4Packet) TotalLen() uint16 {
	return binary.BigEndian.Uint16(p[2:])
}

func (p IPv4Packet) HeaderLen() uint16 {
	return uint16(p[0]&0xf) * 4
}

func (p IPv4Packet) DataLen() uint16 {
	return p.TotalLen() - p.HeaderLen()
}

func (p IPv4Packet) Protocol() IPProtocol {
	return IPProtocol(p[9])
}

func (p IPv4Packet) SourceIP() net.IP {
	var ip = [4]byte{p[12], p[13], p[14], p[15]}
	return net.IP(ip[:])
}

func (p IPv4Packet) DestinationIP() net.IP {
	var ip = [4]byte{p[16], p[17], p[18], p[19]}
	return net.IP(ip[:])
}

func (p IPv4Packet) Checksum() uint16 {
	return binary.BigEndian.Uint16(p[10:])
}

func (p IPv4Packet) SetChecksum(sum [2]byte) {
	p[10] = sum[0]
	p[11] = sum[1]
}

func (p IPv4Packet) ResetChecksum() {
	p.SetChecksum(zeroChecksum)
	p.SetChecksum(Checksum(0, p[:p.HeaderLen()]))
}

// Payload slices the transport message out of the datagram. The offset
// comes from the IHL field, so headers carrying options parse correctly.
func (p IPv4Packet) Payload() ([]byte, error) {
	if len(p) < MinIPv4HeaderLen {
		return nil, ErrIPv4Truncated
	}
	if !IsIPv4(p) {
		return nil, ErrNotIPv4
	}

	hlen := p.HeaderLen()
	tlen := p.TotalLen()
	if hlen < MinIPv4HeaderLen || hlen > tlen {
		return nil, ErrIPv4Header
	}
	if int(tlen) > len(p) {
		return nil, ErrIPv4Truncated
	}
	return p[hlen:tlen], nil
}
