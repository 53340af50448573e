package rudp

import (
	"errors"
	"fmt"
	"net"
)

var (
	// ErrPeerGone is returned by operations on a Peer that has been torn down.
	// It wraps net.ErrClosed.
	ErrPeerGone = fmt.Errorf("peer gone: %w", net.ErrClosed)

	// ErrTimedOut is the cause of a Peer closed because nothing was
	// received from it for Config.ConnTimeout.
	ErrTimedOut = errors.New("timed out")

	// ErrRetransmitLimit is the cause of a Peer closed because a reliable
	// packet was resent more than Config.MaxRetransmits times.
	ErrRetransmitLimit = errors.New("retransmit limit exceeded")

	// ErrTooManyBadPkts is the cause of a Peer closed because it sent
	// malformed packets faster than Config.BadPktRate allows.
	ErrTooManyBadPkts = errors.New("too many malformed packets")

	ErrPktTooBig    = errors.New("can't send pkt: too big")
	ErrChNoTooBig   = errors.New("can't send pkt: channel number >= ChannelCount")
	ErrOutOfPeerIDs = errors.New("out of peer ids")
)

// A FramingError reports a malformed packet envelope.
type FramingError struct {
	Off   int    // Offset of the bad field.
	Field string // Name of the bad field.
	Err   error
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing: %s at offset %d: %v", e.Field, e.Off, e.Err)
}

func (e *FramingError) Unwrap() error { return e.Err }

// A PktError is an error that occured while processing a packet.
type PktError struct {
	Type string // "net", "raw", "rel" or "split".
	Data []byte
	Err  error
}

func (e PktError) Error() string {
	return fmt.Sprintf("error processing %s pkt: %x: %v", e.Type, e.Data, e.Err)
}

func (e PktError) Unwrap() error { return e.Err }

// A TrailingDataError reports trailing data after a packet,
// it doesn't stop a packet from being processed.
type TrailingDataError []byte

func (e TrailingDataError) Error() string {
	return fmt.Sprintf("trailing data: %x", []byte(e))
}

// TooBigChError reports a channel number >= ChannelCount.
type TooBigChError Channel

func (e TooBigChError) Error() string {
	return fmt.Sprintf("channel number %d >= ChannelCount", uint8(e))
}
