package rudp

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{WindowSize: 8}.withDefaults()

	assert.Equal(t, 8, cfg.WindowSize)
	assert.Equal(t, ConnTimeout, cfg.ConnTimeout)
	assert.Equal(t, PingTimeout, cfg.PingInterval)
	assert.Equal(t, MaxNetPktSize, cfg.MaxNetPktSize)
	assert.Zero(t, cfg.SplitTimeout)
	assert.NotNil(t, cfg.Logger)
	assert.Nil(t, cfg.Metrics)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, DefaultConfig().Validate())

	for name, cfg := range map[string]Config{
		"window too big":      {WindowSize: MaxWindowSize + 1},
		"negative window":     {WindowSize: -1},
		"negative interval":   {RetransmitInterval: -time.Second},
		"negative timeout":    {ConnTimeout: -time.Second},
		"negative split":      {SplitTimeout: -time.Second},
		"pkt size too small":  {MaxNetPktSize: MtHdrSize + RelHdrSize + SplitHdrSize},
		"negative retransmit": {MaxRetransmits: -1},
	} {
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestConfigInvalidUsesDefaults(t *testing.T) {
	var logs bytes.Buffer
	bad := Config{
		WindowSize:         MaxWindowSize + 1,
		RetransmitInterval: -time.Second,
		SweepInterval:      -time.Second,
		MaxRetransmits:     -1,
		PingInterval:       -time.Second,
		MaxNetPktSize:      MtHdrSize,
		SplitTimeout:       -time.Second,
		QueueSize:          -1,
		Logger:             slog.New(slog.NewTextHandler(&logs, nil)),
	}
	require.Error(t, bad.Validate())

	cfg := bad.sanitize()
	assert.NoError(t, cfg.Validate())
	assert.Contains(t, logs.String(), "invalid config")

	d := DefaultConfig()
	assert.Equal(t, MaxWindowSize, cfg.WindowSize)
	assert.Equal(t, d.RetransmitInterval, cfg.RetransmitInterval)
	assert.Equal(t, d.SweepInterval, cfg.SweepInterval)
	assert.Equal(t, d.MaxRetransmits, cfg.MaxRetransmits)
	assert.Equal(t, d.PingInterval, cfg.PingInterval)
	assert.Equal(t, d.MaxNetPktSize, cfg.MaxNetPktSize)
	assert.Zero(t, cfg.SplitTimeout)
	assert.Equal(t, d.QueueSize, cfg.QueueSize)

	// A negative SweepInterval would make the sweeper's ticker panic.
	p := NewConn(&testEP{addr: "clt"}, testAddr("srv"), bad)
	defer p.Close()
	assert.Equal(t, MaxWindowSize, p.cfg.WindowSize)

	l := NewListener(&testEP{addr: "srv"}, bad)
	defer l.Close()
	require.NoError(t, l.HandleDatagram(testAddr("clt"), hello))
	assert.Equal(t, 1, l.Registry().Len())
}
