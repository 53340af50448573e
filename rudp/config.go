package rudp

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// ConnTimeout is the default amount of time after no packets being
	// received from a Peer that it is automatically disconnected.
	ConnTimeout = 30 * time.Second

	// PingTimeout is the default amount of time after no packets being sent
	// to a Peer that a ctlPing is automatically sent to prevent timeout.
	PingTimeout = 5 * time.Second

	// MaxNetPktSize is the default maximum size of a network packet.
	MaxNetPktSize = 512

	// MaxWindowSize is the largest supported Config.WindowSize,
	// half of the seqnum space.
	MaxWindowSize = 0x8000 - 1
)

// Config configures Peers.
// The zero value of a field selects its default from DefaultConfig,
// as does an invalid value.
type Config struct {
	// WindowSize is the maximum number of unacked reliable packets per
	// channel. Send blocks while the window is full.
	WindowSize int `yaml:"window_size"`

	// RetransmitInterval is how long a reliable packet
	// waits for its ack before it is resent.
	RetransmitInterval time.Duration `yaml:"retransmit_interval"`

	// SweepInterval is how often unacked packets are checked.
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// MaxRetransmits is how often a reliable packet is resent
	// before the Peer is closed with ErrRetransmitLimit.
	MaxRetransmits int `yaml:"max_retransmits"`

	ConnTimeout  time.Duration `yaml:"conn_timeout"`
	PingInterval time.Duration `yaml:"ping_interval"`

	MaxNetPktSize int `yaml:"max_net_pkt_size"`

	// SplitTimeout is how long an incomplete unreliable split packet is
	// kept without receiving a chunk. 0 keeps them until the Peer closes.
	SplitTimeout time.Duration `yaml:"split_timeout"`

	// QueueSize is the number of received network packets
	// and reassembled Pkts buffered per Peer.
	QueueSize int `yaml:"queue_size"`

	// BadPktRate is the number of malformed packets per second a Peer may
	// send on average (with bursts of BadPktBurst) before it is closed
	// with ErrTooManyBadPkts. Negative disables the limit.
	BadPktRate  float64 `yaml:"bad_pkt_rate"`
	BadPktBurst int     `yaml:"bad_pkt_burst"`

	Logger  *slog.Logger `yaml:"-"`
	Metrics *Metrics     `yaml:"-"`
}

// DefaultConfig returns the Config used for zero fields.
func DefaultConfig() Config {
	return Config{
		WindowSize:         1024,
		RetransmitInterval: 500 * time.Millisecond,
		SweepInterval:      100 * time.Millisecond,
		MaxRetransmits:     60,
		ConnTimeout:        ConnTimeout,
		PingInterval:       PingTimeout,
		MaxNetPktSize:      MaxNetPktSize,
		QueueSize:          256,
		BadPktRate:         10,
		BadPktBurst:        50,
	}
}

// withDefaults replaces zero and invalid fields with their defaults.
// WindowSize is capped at MaxWindowSize.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	c.WindowSize = min(c.WindowSize, MaxWindowSize)
	if c.RetransmitInterval <= 0 {
		c.RetransmitInterval = d.RetransmitInterval
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = d.SweepInterval
	}
	if c.MaxRetransmits <= 0 {
		c.MaxRetransmits = d.MaxRetransmits
	}
	if c.ConnTimeout <= 0 {
		c.ConnTimeout = d.ConnTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.MaxNetPktSize < minNetPktSize {
		c.MaxNetPktSize = d.MaxNetPktSize
	}
	c.SplitTimeout = max(c.SplitTimeout, 0)
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.BadPktRate == 0 {
		c.BadPktRate = d.BadPktRate
	}
	if c.BadPktBurst <= 0 {
		c.BadPktBurst = d.BadPktBurst
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// sanitize is withDefaults, logging a warning if c is invalid.
func (c Config) sanitize() Config {
	err := c.Validate()
	c = c.withDefaults()
	if err != nil {
		c.Logger.Warn("invalid config, using defaults", "err", err)
	}
	return c
}

const minNetPktSize = MtHdrSize + RelHdrSize + SplitHdrSize + 1

// Validate reports an invalid Config.
// Peers and Listeners replace invalid fields with their defaults.
func (c Config) Validate() error {
	switch {
	case c.WindowSize < 0 || c.WindowSize > MaxWindowSize:
		return fmt.Errorf("window_size must be in [1, %d]: %d", MaxWindowSize, c.WindowSize)
	case c.RetransmitInterval < 0:
		return fmt.Errorf("retransmit_interval must not be negative: %v", c.RetransmitInterval)
	case c.SweepInterval < 0:
		return fmt.Errorf("sweep_interval must not be negative: %v", c.SweepInterval)
	case c.MaxRetransmits < 0:
		return fmt.Errorf("max_retransmits must not be negative: %d", c.MaxRetransmits)
	case c.ConnTimeout < 0 || c.PingInterval < 0 || c.SplitTimeout < 0:
		return fmt.Errorf("timeouts must not be negative")
	case c.MaxNetPktSize != 0 && c.MaxNetPktSize < minNetPktSize:
		return fmt.Errorf("max_net_pkt_size too small: %d", c.MaxNetPktSize)
	case c.QueueSize < 0:
		return fmt.Errorf("queue_size must not be negative: %d", c.QueueSize)
	case c.BadPktBurst < 0:
		return fmt.Errorf("bad_pkt_burst must not be negative: %d", c.BadPktBurst)
	}
	return nil
}
