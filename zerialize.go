package mt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"

	"github.com/voxelnet/mt/rudp"
)

var be = binary.BigEndian

var (
	// ErrTooLong reports a length that is too long to serialize.
	ErrTooLong = errors.New("len too long")

	// ErrLenTooLong reports a declared length or count
	// that exceeds the remaining bytes.
	ErrLenTooLong = errors.New("declared len exceeds remaining data")

	ErrUnknownCmd   = errors.New("unknown cmd")
	ErrInvalidUTF16 = errors.New("invalid UTF-16")

	// ErrInflatedTooLong reports compressed data that inflates
	// to more bytes than the field can hold.
	ErrInflatedTooLong = errors.New("inflated data too long")

	// ErrInvalid reports a field value that can't be (de)serialized,
	// such as an unknown enum value that selects the following fields.
	ErrInvalid = errors.New("invalid value")
)

// A DecodeError reports malformed command bytes.
type DecodeError struct {
	Cmd   string // Type of the command, empty if the cmd no couldn't be read.
	Field string

	// Off is the offset of Field in the command bytes.
	// Fields inside compressed data report the offset of the compressed data.
	Off int

	Err error
}

func (e *DecodeError) Error() string {
	if e.Cmd == "" {
		return fmt.Sprintf("decode %s at offset %d: %v", e.Field, e.Off, e.Err)
	}
	return fmt.Sprintf("decode %s: %s at offset %d: %v", e.Cmd, e.Field, e.Off, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// An EncodeError reports a command that can't be represented on the wire.
type EncodeError struct {
	Cmd   string
	Field string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %s: %v", e.Cmd, e.Field, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

type serializer interface {
	serialize(w *writer)
}

type deserializer interface {
	deserialize(r *reader)
}

type serializationError struct {
	error
}

func pcall(f func()) (rerr error) {
	defer func() {
		switch r := recover().(type) {
		case serializationError:
			rerr = r.error
		case nil:
		default:
			panic(r)
		}
	}()
	f()
	return
}

func chk(err error) {
	if err != nil {
		panic(serializationError{err})
	}
}

func cmdName(cmd Cmd) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", cmd), "*mt.")
}

// Marshal returns the wire representation of cmd,
// starting with its command number.
func Marshal(cmd Cmd) ([]byte, error) {
	var no uint16
	switch cmd := cmd.(type) {
	case ToSrvCmd:
		no = cmd.toSrvCmdNo()
	case ToCltCmd:
		no = cmd.toCltCmdNo()
	default:
		return nil, fmt.Errorf("%T: %w", cmd, ErrUnknownCmd)
	}

	w := &writer{buf: be.AppendUint16(make([]byte, 0, 64), no)}
	if err := pcall(func() { cmd.(serializer).serialize(w) }); err != nil {
		var ee *EncodeError
		if errors.As(err, &ee) {
			ee.Cmd = cmdName(cmd)
		}
		return nil, err
	}

	return w.buf, nil
}

// UnmarshalToSrv decodes a command sent to a server.
// If data has trailing bytes, the command is returned
// together with a rudp.TrailingDataError.
func UnmarshalToSrv(data []byte) (ToSrvCmd, error) {
	cmd, err := unmarshal(data, func(no uint16) Cmd {
		if newCmd := newToSrvCmd[no]; newCmd != nil {
			return newCmd()
		}
		return nil
	})
	if cmd == nil {
		return nil, err
	}
	return cmd.(ToSrvCmd), err
}

// UnmarshalToClt decodes a command sent to a client.
// If data has trailing bytes, the command is returned
// together with a rudp.TrailingDataError.
func UnmarshalToClt(data []byte) (ToCltCmd, error) {
	cmd, err := unmarshal(data, func(no uint16) Cmd {
		if newCmd := newToCltCmd[no]; newCmd != nil {
			return newCmd()
		}
		return nil
	})
	if cmd == nil {
		return nil, err
	}
	return cmd.(ToCltCmd), err
}

func unmarshal(data []byte, newCmd func(uint16) Cmd) (Cmd, error) {
	r := &reader{data: data}

	no := r.peekCmdNo()
	if no < 0 {
		return nil, &DecodeError{Field: "cmd no", Err: io.ErrUnexpectedEOF}
	}
	cmd := newCmd(uint16(no))
	if cmd == nil {
		return nil, &DecodeError{Field: "cmd no", Err: fmt.Errorf("%w: 0x%04x", ErrUnknownCmd, no)}
	}
	r.off = 2

	if err := pcall(func() { cmd.(deserializer).deserialize(r) }); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Cmd = cmdName(cmd)
		}
		return nil, err
	}

	if extra := r.data[r.off:]; len(extra) > 0 {
		return cmd, fmt.Errorf("%s: %w", cmdName(cmd), rudp.TrailingDataError(extra))
	}
	return cmd, nil
}

// A writer appends fields to a buffer.
// It panics with a serializationError if a value can't be represented.
type writer struct {
	buf []byte
}

func (w *writer) fail(field string, err error) {
	chk(&EncodeError{Field: field, Err: err})
}

func (w *writer) u8(x uint8)   { w.buf = append(w.buf, x) }
func (w *writer) u16(x uint16) { w.buf = be.AppendUint16(w.buf, x) }
func (w *writer) u32(x uint32) { w.buf = be.AppendUint32(w.buf, x) }
func (w *writer) u64(x uint64) { w.buf = be.AppendUint64(w.buf, x) }
func (w *writer) i16(x int16)  { w.u16(uint16(x)) }
func (w *writer) i32(x int32)  { w.u32(uint32(x)) }
func (w *writer) i64(x int64)  { w.u64(uint64(x)) }
func (w *writer) f32(x float32) {
	w.u32(math.Float32bits(x))
}

func (w *writer) bool(b bool) {
	if b {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) raw(b []byte) { w.buf = append(w.buf, b...) }

func (w *writer) Write(p []byte) (int, error) {
	w.raw(p)
	return len(p), nil
}

func (w *writer) len8(field string, n int) {
	if n > math.MaxUint8 {
		w.fail(field, ErrTooLong)
	}
	w.u8(uint8(n))
}

func (w *writer) len16(field string, n int) {
	if n > math.MaxUint16 {
		w.fail(field, ErrTooLong)
	}
	w.u16(uint16(n))
}

func (w *writer) len32(field string, n int) {
	if uint64(n) > math.MaxUint32 {
		w.fail(field, ErrTooLong)
	}
	w.u32(uint32(n))
}

func (w *writer) str(field, s string) {
	w.len16(field, len(s))
	w.buf = append(w.buf, s...)
}

func (w *writer) str32(field, s string) {
	w.len32(field, len(s))
	w.buf = append(w.buf, s...)
}

func (w *writer) bytes16(field string, b []byte) {
	w.len16(field, len(b))
	w.raw(b)
}

func (w *writer) bytes32(field string, b []byte) {
	w.len32(field, len(b))
	w.raw(b)
}

// wstr writes s as UTF-16 with a count of 16-bit units.
func (w *writer) wstr(field, s string) {
	if !utf8.ValidString(s) {
		w.fail(field, fmt.Errorf("%w: invalid UTF-8", ErrInvalid))
	}
	units := utf16.Encode([]rune(s))
	w.len16(field, len(units))
	for _, u := range units {
		w.u16(u)
	}
}

// color writes c as ARGB.
func (w *writer) color(c color.NRGBA) {
	w.buf = append(w.buf, c.A, c.R, c.G, c.B)
}

func (w *writer) v3s16(v [3]int16) {
	for _, x := range v {
		w.i16(x)
	}
}

func (w *writer) v3s32(v [3]int32) {
	for _, x := range v {
		w.i32(x)
	}
}

func (w *writer) v2s32(v [2]int32) {
	for _, x := range v {
		w.i32(x)
	}
}

func (w *writer) v2u32(v [2]uint32) {
	for _, x := range v {
		w.u32(x)
	}
}

func (w *writer) v2f32(v [2]float32) {
	for _, x := range v {
		w.f32(x)
	}
}

func (w *writer) v3f32(v [3]float32) {
	for _, x := range v {
		w.f32(x)
	}
}

// lenhdr16 writes the fields written by f prefixed with their u16 size.
func (w *writer) lenhdr16(field string, f func(w *writer)) {
	start := len(w.buf)
	w.u16(0)
	f(w)
	n := len(w.buf) - start - 2
	if n > math.MaxUint16 {
		w.fail(field, ErrTooLong)
	}
	be.PutUint16(w.buf[start:], uint16(n))
}

// lenhdr32 writes the fields written by f prefixed with their u32 size.
func (w *writer) lenhdr32(field string, f func(w *writer)) {
	start := len(w.buf)
	w.u32(0)
	f(w)
	n := len(w.buf) - start - 4
	if uint64(n) > math.MaxUint32 {
		w.fail(field, ErrTooLong)
	}
	be.PutUint32(w.buf[start:], uint32(n))
}

// zlib writes the fields written by f as a zlib stream.
func (w *writer) zlib(field string, f func(w *writer)) {
	inner := &writer{}
	f(inner)

	zw := zlib.NewWriter(w)
	if _, err := zw.Write(inner.buf); err != nil {
		w.fail(field, err)
	}
	if err := zw.Close(); err != nil {
		w.fail(field, err)
	}
}

// A reader reads fields from command bytes.
// It panics with a serializationError wrapping a *DecodeError
// if data is too short or malformed.
type reader struct {
	data []byte
	off  int
	base int // Offset of data in the command bytes.

	// Set if data was inflated from the compressed data at base.
	inflated bool
}

func (r *reader) peekCmdNo() int {
	if len(r.data) < 2 {
		return -1
	}
	return int(be.Uint16(r.data))
}

func (r *reader) failAt(off int, field string, err error) {
	if r.inflated {
		off = 0
	}
	chk(&DecodeError{Field: field, Off: r.base + off, Err: err})
}

func (r *reader) fail(field string, err error) {
	r.failAt(r.off, field, err)
}

func (r *reader) remaining() int { return len(r.data) - r.off }

// more reports whether there are bytes left for optional trailing fields.
func (r *reader) more() bool { return r.off < len(r.data) }

func (r *reader) eat(field string, n int) []byte {
	if n < 0 || r.remaining() < n {
		r.fail(field, io.ErrUnexpectedEOF)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8(field string) uint8   { return r.eat(field, 1)[0] }
func (r *reader) u16(field string) uint16 { return be.Uint16(r.eat(field, 2)) }
func (r *reader) u32(field string) uint32 { return be.Uint32(r.eat(field, 4)) }
func (r *reader) u64(field string) uint64 { return be.Uint64(r.eat(field, 8)) }
func (r *reader) i16(field string) int16  { return int16(r.u16(field)) }
func (r *reader) i32(field string) int32  { return int32(r.u32(field)) }
func (r *reader) i64(field string) int64  { return int64(r.u64(field)) }

func (r *reader) f32(field string) float32 {
	return math.Float32frombits(r.u32(field))
}

func (r *reader) bool(field string) bool { return r.u8(field) != 0 }

// rest returns the remaining bytes.
func (r *reader) rest() []byte {
	b := r.data[r.off:]
	r.off = len(r.data)
	return b
}

// count checks that n elements of at least minSize bytes each
// fit in the remaining bytes.
func (r *reader) count(field string, off int, n, minSize int) int {
	if n*minSize > r.remaining() {
		r.failAt(off, field, fmt.Errorf("%w: %d", ErrLenTooLong, n))
	}
	return n
}

func (r *reader) len8(field string, minSize int) int {
	off := r.off
	return r.count(field, off, int(r.u8(field)), minSize)
}

func (r *reader) len16(field string, minSize int) int {
	off := r.off
	return r.count(field, off, int(r.u16(field)), minSize)
}

func (r *reader) len32(field string, minSize int) int {
	off := r.off
	n := r.u32(field)
	if uint64(n)*uint64(minSize) > uint64(r.remaining()) {
		r.failAt(off, field, fmt.Errorf("%w: %d", ErrLenTooLong, n))
	}
	return int(n)
}

func (r *reader) str(field string) string {
	return string(r.eat(field, r.len16(field, 1)))
}

func (r *reader) str32(field string) string {
	return string(r.eat(field, r.len32(field, 1)))
}

func (r *reader) bytes16(field string) []byte {
	return append([]byte(nil), r.eat(field, r.len16(field, 1))...)
}

func (r *reader) bytes32(field string) []byte {
	return append([]byte(nil), r.eat(field, r.len32(field, 1))...)
}

func (r *reader) wstr(field string) string {
	off := r.off
	units := make([]uint16, r.len16(field, 2))
	for i := range units {
		units[i] = r.u16(field)
	}

	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xd800 && u < 0xdc00:
			if i+1 < len(units) && units[i+1] >= 0xdc00 && units[i+1] < 0xe000 {
				i++
				continue
			}
			r.failAt(off, field, ErrInvalidUTF16)
		case u >= 0xdc00 && u < 0xe000:
			r.failAt(off, field, ErrInvalidUTF16)
		}
	}

	return string(utf16.Decode(units))
}

func (r *reader) color(field string) (c color.NRGBA) {
	b := r.eat(field, 4)
	c.A, c.R, c.G, c.B = b[0], b[1], b[2], b[3]
	return
}

func (r *reader) v3s16(field string) (v [3]int16) {
	for i := range v {
		v[i] = r.i16(field)
	}
	return
}

func (r *reader) v3s32(field string) (v [3]int32) {
	for i := range v {
		v[i] = r.i32(field)
	}
	return
}

func (r *reader) v2s32(field string) (v [2]int32) {
	for i := range v {
		v[i] = r.i32(field)
	}
	return
}

func (r *reader) v2u32(field string) (v [2]uint32) {
	for i := range v {
		v[i] = r.u32(field)
	}
	return
}

func (r *reader) v2f32(field string) (v [2]float32) {
	for i := range v {
		v[i] = r.f32(field)
	}
	return
}

func (r *reader) v3f32(field string) (v [3]float32) {
	for i := range v {
		v[i] = r.f32(field)
	}
	return
}

// lenhdr16 reads a u16 size and calls f with a reader limited to that many
// bytes. The limited reader must be consumed exactly.
func (r *reader) lenhdr16(field string, f func(r *reader)) {
	r.limit(field, r.len16(field, 1), f)
}

// lenhdr32 is like lenhdr16 with a u32 size.
func (r *reader) lenhdr32(field string, f func(r *reader)) {
	r.limit(field, r.len32(field, 1), f)
}

func (r *reader) limit(field string, n int, f func(r *reader)) {
	sub := &reader{data: r.eat(field, n), inflated: r.inflated}
	if r.inflated {
		sub.base = r.base
	} else {
		sub.base = r.base + r.off - n
	}
	f(sub)
	sub.done(field)
}

func (r *reader) done(field string) {
	if r.more() {
		off := r.off
		r.failAt(off, field, rudp.TrailingDataError(r.rest()))
	}
}

// maxInflatedLen bounds the size of inflated data.
const maxInflatedLen = 64 << 20

// zlib inflates the zlib stream at the current offset, up to maxLen bytes,
// and calls f with a reader of the inflated data,
// which must be consumed exactly.
func (r *reader) zlib(field string, maxLen int, f func(r *reader)) {
	off := r.off
	src := bytes.NewReader(r.data[r.off:])

	zr, err := zlib.NewReader(src)
	if err != nil {
		r.failAt(off, field, err)
	}
	data, err := io.ReadAll(io.LimitReader(zr, int64(maxLen)+1))
	zr.Close()
	switch {
	case err != nil:
		r.failAt(off, field, err)
	case len(data) > maxLen:
		r.failAt(off, field, fmt.Errorf("%w: more than %d bytes", ErrInflatedTooLong, maxLen))
	}
	r.off += int(src.Size()) - src.Len()

	sub := &reader{data: data, base: r.base + off, inflated: true}
	if r.inflated {
		sub.base = r.base
	}
	f(sub)
	sub.done(field)
}
