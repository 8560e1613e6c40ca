//
//   date  : 2024-03-02
//   author: rqlin
//

package oneping

import (
	"fmt"
	"net"

	"gopkg.in/ini.v1"

	"github.com/rqlin/oneping/tcpip"
)

func init() {
	ini.PrettyFormat = true
}

const (
	DefaultPayload    = "oneping"
	DefaultPacketSize = 64

	DnsDefaultPort        = "53"
	DnsDefaultReadTimeout = 5
)

type GeneralConfig struct {
	LogLevel string `ini:"log-level"`
}

type CoreConfig struct {
	Dest           string   `ini:"dest"`
	Payload        string   `ini:"payload"`
	PacketSize     uint16   `ini:"packet-size"`
	DnsServer      []string `ini:"dns-server" delim:","`
	DnsReadTimeout uint     `ini:"dns-read-timeout"`
}

type Config struct {
	General GeneralConfig
	Core    CoreConfig
}

func (cfg *Config) check() (err error) {
	core := &cfg.Core

	if n := tcpip.ICMPHeaderLen + len(core.Payload); int(core.PacketSize) < n {
		return fmt.Errorf("[check core] packet-size %d too small for payload %q (need %d)",
			core.PacketSize, core.Payload, n)
	}
	if core.PacketSize > ReplyBufferSize {
		return fmt.Errorf("[check core] packet-size %d exceeds %d", core.PacketSize, ReplyBufferSize)
	}

	for i, ns := range core.DnsServer {
		if _, _, err := net.SplitHostPort(ns); err != nil {
			core.DnsServer[i] = net.JoinHostPort(ns, DnsDefaultPort)
		}
	}
	return nil
}

// ParseConfig accepts a file name or raw ini data.
func ParseConfig(source interface{}) (*Config, error) {
	cfg := new(Config)

	// set default value
	cfg.Core.Payload = DefaultPayload
	cfg.Core.PacketSize = DefaultPacketSize
	cfg.Core.DnsReadTimeout = DnsDefaultReadTimeout

	// decode config value
	f, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true, KeyValueDelimiters: "="}, source)
	if err != nil {
		logger.Errorf("%v", err)
		return nil, err
	}

	if err = f.MapTo(cfg); err != nil {
		return nil, err
	}

	// set backend dns default value
	if len(cfg.Core.DnsServer) == 0 {
		cfg.Core.DnsServer = []string{"114.114.114.114", "8.8.8.8"}
	}

	if err = cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}
