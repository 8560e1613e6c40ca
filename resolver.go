//
//   date  : 2024-03-02
//   author: rqlin
//

package oneping

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

var ErrResolve = errors.New("resolve failed")

// resolveDest turns dest into an IPv4 address. Literals short-circuit;
// anything else is queried for an A record against each configured
// nameserver in turn, first answer wins.
func resolveDest(dest string, core *CoreConfig) (net.IP, error) {
	if ip := net.ParseIP(dest); ip != nil {
		if ip = ip.To4(); ip == nil {
			return nil, fmt.Errorf("not an ipv4 address: %s", dest)
		}
		return ip, nil
	}

	client := &dns.Client{
		ReadTimeout: time.Duration(core.DnsReadTimeout) * time.Second,
	}

	r := new(dns.Msg)
	r.SetQuestion(dns.Fqdn(dest), dns.TypeA)

	for _, ns := range core.DnsServer {
		msg, rtt, err := client.Exchange(r, ns)
		if err != nil {
			logger.Debugf("[resolver] resolve %s on %s failed: %v", dest, ns, err)
			continue
		}
		if msg.Rcode != dns.RcodeSuccess {
			logger.Debugf("[resolver] resolve %s on %s failed: code %d", dest, ns, msg.Rcode)
			continue
		}
		logger.Debugf("[resolver] resolve %s on %s, rtt: %v", dest, ns, rtt)

		for _, rr := range msg.Answer {
			if a, ok := rr.(*dns.A); ok {
				return a.A.To4(), nil
			}
		}
	}

	logger.Errorf("[resolver] query %s failed on all nameservers", dest)
	return nil, ErrResolve
}
