//
//   date  : 2024-03-02
//   author: rqlin
//

package tcpip

var (
	zeroChecksum = [2]byte{0x00, 0x00}
)

// Sum adds up b as 16-bit big-endian words. A trailing odd byte
// contributes as the high byte of a zero-padded final word.
func Sum(b []byte) uint32 {
	var sum uint32

	n := len(b)
	for i := 0; i < n; i = i + 2 {
		sum += (uint32(b[i]) << 8)
		if i+1 < n {
			sum += uint32(b[i+1])
		}
	}
	return sum
}

// Checksum folds sum plus the sum of b into the RFC 1071 Internet
// checksum, returned in network byte order.
func Checksum(sum uint32, b []byte) (answer [2]byte) {
	sum += Sum(b)
	sum = (sum >> 16) + (sum & 0xffff)
	sum += (sum >> 16)
	sum = ^sum
	answer[0] = byte(sum >> 8)
	answer[1] = byte(sum)
	return
}

// VerifyChecksum reports whether b, embedded checksum field included,
// sums to the one's-complement zero.
func VerifyChecksum(b []byte) bool {
	return Checksum(0, b) == zeroChecksum
}
