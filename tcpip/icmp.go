//
//   date  : 2024-03-02
//   author: rqlin
//

package tcpip

import (
	"encoding/binary"
	"errors"
)

type ICMPType byte

const (
	ICMPEcho    ICMPType = 0x0
	ICMPRequest ICMPType = 0x8
)

// ICMPHeaderLen is the fixed echo message header size: type, code,
// checksum, identifier, sequence.
const ICMPHeaderLen = 8

var ErrICMPTruncated = errors.New("icmp message shorter than 8 bytes")

type ICMPPacket []byte

// ParseICMPPacket guards against datagrams too short to carry an echo
// header. Field accessors on the returned packet are then in bounds.
func ParseICMPPacket(b []byte) (ICMPPacket, error) {
	if len(b) < ICMPHeaderLen {
		return nil, ErrICMPTruncated
	}
	return ICMPPacket(b), nil
}

func (p ICMPPacket) Type() ICMPType {
	return ICMPType(p[0])
}

func (p ICMPPacket) SetType(v ICMPType) {
	p[0] = byte(v)
}

func (p ICMPPacket) Code() byte {
	return p[1]
}

func (p ICMPPacket) SetCode(v byte) {
	p[1] = v
}

func (p ICMPPacket) Checksum() uint16 {
	return binary.BigEndian.Uint16(p[2:])
}

func (p ICMPPacket) SetChecksum(sum [2]byte) {
	p[2] = sum[0]
	p[3] = sum[1]
}

func (p ICMPPacket) Identifier() uint16 {
	return binary.BigEndian.Uint16(p[4:])
}

func (p ICMPPacket) SetIdentifier(v uint16) {
	binary.BigEndian.PutUint16(p[4:], v)
}

func (p ICMPPacket) Sequence() uint16 {
	return binary.BigEndian.Uint16(p[6:])
}

func (p ICMPPacket) SetSequence(v uint16) {
	binary.BigEndian.PutUint16(p[6:], v)
}

// Payload returns the message body past the echo header.
func (p ICMPPacket) Payload() []byte {
	return p[ICMPHeaderLen:]
}

func (p ICMPPacket) ResetChecksum() {
	p.SetChecksum(zeroChecksum)
	p.SetChecksum(Checksum(0, p))
}

// Verify reports whether the embedded checksum is consistent with the
// whole message.
func (p ICMPPacket) Verify() bool {
	return VerifyChecksum(p)
}

// MakeEchoRequest builds an echo request of size bytes: type 8, code 0,
// the given identifier and sequence, payload copied after the header and
// zero-padded to size. The buffer grows when size cannot hold the
// payload. The checksum is computed last, over the whole message.
func MakeEchoRequest(id, seq uint16, payload []byte, size int) ICMPPacket {
	if n := ICMPHeaderLen + len(payload); size < n {
		size = n
	}

	p := ICMPPacket(make([]byte, size))
	p.SetType(ICMPRequest)
	p.SetCode(0)
	p.SetIdentifier(id)
	p.SetSequence(seq)
	copy(p.Payload(), payload)
	p.ResetChecksum()
	return p
}
