//
//   date  : 2024-03-02
//   author: rqlin
//

package oneping

import (
	"fmt"
	"net"
	"os"

	"github.com/op/go-logging"

	"github.com/rqlin/oneping/tcpip"
)

var logger = logging.MustGetLogger("oneping")

// ReplyBufferSize bounds a single received datagram, IPv4 header included.
const ReplyBufferSize = 1024

// One owns a raw ICMP socket for a single echo exchange: one blocking
// send, one blocking receive. There is no retry, no reply correlation
// and no deadline; whatever ICMP datagram arrives first is decoded and
// reported. Mismatched identifier/sequence/type and checksum failures
// are logged, not rejected.
type One struct {
	dest net.IP
	conn *net.IPConn

	identifier uint16
	sequence   uint16
	payload    []byte
	packetSize int
}

func FromConfig(cfg *Config) (*One, error) {
	core := cfg.Core
	if core.Dest == "" {
		return nil, fmt.Errorf("no destination")
	}

	ip, err := resolveDest(core.Dest, &core)
	if err != nil {
		return nil, err
	}
	logger.Infof("[one] dest: %s (%s)", core.Dest, ip)

	conn, err := net.DialIP("ip4:icmp", nil, &net.IPAddr{IP: ip})
	if err != nil {
		return nil, fmt.Errorf("open raw socket: %v", err)
	}

	one := &One{
		dest:       ip,
		conn:       conn,
		identifier: uint16(os.Getpid()),
		sequence:   1,
		payload:    []byte(core.Payload),
		packetSize: int(core.PacketSize),
	}
	return one, nil
}

// Serve performs the exchange: send once and, if that succeeded,
// receive once.
func (one *One) Serve() error {
	if err := one.send(); err != nil {
		return err
	}
	return one.receive()
}

func (one *One) Close() error {
	return one.conn.Close()
}

func (one *One) send() error {
	request := tcpip.MakeEchoRequest(one.identifier, one.sequence, one.payload, one.packetSize)

	logger.Infof("[send] %s > type:%d code:%d checksum:0x%04x id:%d seq:%d len:%d payload:%q",
		one.dest, request.Type(), request.Code(), request.Checksum(),
		request.Identifier(), request.Sequence(), len(request), one.payload)

	if _, err := one.conn.Write(request); err != nil {
		logger.Errorf("[send] write failed: %v", err)
		return err
	}
	return nil
}

func (one *One) receive() error {
	buffer := make([]byte, ReplyBufferSize)

	// blocks until a datagram arrives or the socket is closed
	n, err := one.conn.Read(buffer)
	if err != nil {
		logger.Errorf("[recv] read failed: %v", err)
		return err
	}

	ipPacket := tcpip.IPv4Packet(buffer[:n])
	data, err := ipPacket.Payload()
	if err != nil {
		logger.Errorf("[recv] bad datagram (%d bytes): %v", n, err)
		return err
	}

	reply, err := tcpip.ParseICMPPacket(data)
	if err != nil {
		logger.Errorf("[recv] %v", err)
		return err
	}

	logger.Infof("[recv] %s > type:%d code:%d checksum:0x%04x id:%d seq:%d len:%d payload:%q",
		ipPacket.SourceIP(), reply.Type(), reply.Code(), reply.Checksum(),
		reply.Identifier(), reply.Sequence(), n, reply.Payload())

	if !reply.Verify() {
		logger.Warningf("[recv] checksum mismatch: 0x%04x", reply.Checksum())
	}
	if reply.Type() != tcpip.ICMPEcho || reply.Code() != 0 {
		logger.Warningf("[recv] not an echo reply: type %d code %d", reply.Type(), reply.Code())
	}
	if reply.Identifier() != one.identifier || reply.Sequence() != one.sequence {
		logger.Warningf("[recv] id/seq mismatch: got %d/%d, sent %d/%d",
			reply.Identifier(), reply.Sequence(), one.identifier, one.sequence)
	}
	return nil
}
