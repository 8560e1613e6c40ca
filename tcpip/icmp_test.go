//
//   date  : 2024-03-02
//   author: rqlin
//

package tcpip

import (
	"bytes"
	"testing"
)

func TestMakeEchoRequest(t *testing.T) {
	payload := []byte("hello there")
	p := MakeEchoRequest(0x1234, 1, payload, 64)

	if len(p) != 64 {
		t.Fatalf("packet length %d, want 64", len(p))
	}
	if p.Type() != ICMPRequest {
		t.Errorf("type %d, want %d", p.Type(), ICMPRequest)
	}
	if p.Code() != 0 {
		t.Errorf("code %d, want 0", p.Code())
	}
	if !p.Verify() {
		t.Error("checksum does not verify")
	}
	if !bytes.HasPrefix(p.Payload(), payload) {
		t.Errorf("payload %q does not start with %q", p.Payload(), payload)
	}
	for _, b := range p.Payload()[len(payload):] {
		if b != 0 {
			t.Fatal("padding is not zeroed")
		}
	}
}

func TestEchoRoundTrip(t *testing.T) {
	cases := []struct {
		id, seq uint16
	}{
		{0, 0},
		{1, 1},
		{0x1234, 7},
		{0xffff, 0xffff},
	}

	for _, c := range cases {
		p := MakeEchoRequest(c.id, c.seq, []byte("abc"), 64)

		decoded, err := ParseICMPPacket(p)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if decoded.Identifier() != c.id || decoded.Sequence() != c.seq {
			t.Errorf("got id/seq %d/%d, want %d/%d",
				decoded.Identifier(), decoded.Sequence(), c.id, c.seq)
		}
	}
}

func TestMakeEchoRequestGrows(t *testing.T) {
	payload := make([]byte, 12)
	p := MakeEchoRequest(1, 1, payload, 0)
	if len(p) != ICMPHeaderLen+len(payload) {
		t.Fatalf("packet length %d, want %d", len(p), ICMPHeaderLen+len(payload))
	}
}

func TestParseICMPPacketTruncated(t *testing.T) {
	for n := 0; n < ICMPHeaderLen; n++ {
		if _, err := ParseICMPPacket(make([]byte, n)); err != ErrICMPTruncated {
			t.Errorf("len %d: got %v, want %v", n, err, ErrICMPTruncated)
		}
	}
	if _, err := ParseICMPPacket(make([]byte, ICMPHeaderLen)); err != nil {
		t.Errorf("len 8: got %v, want nil", err)
	}
}

func TestVerifyCatchesCorruption(t *testing.T) {
	p := MakeEchoRequest(42, 1, []byte("abc"), 32)
	p.Payload()[0] ^= 0xff
	if p.Verify() {
		t.Error("corrupted packet still verifies")
	}
}
