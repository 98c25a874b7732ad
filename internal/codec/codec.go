// Package codec frames Go-native object encodings with a magic number, a
// protocol version and the key of the encoded type.
//
// Frame layout:
//
//	magic (8 bytes) | protocol (1 byte) | uvarint len | type key | body
//
// Protocol 1 stores the gob stream as is. Protocol 2 stores it gzip
// compressed, so the gzip trailer (CRC-32 and size) guards the body.
package codec

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
)

const (
	ProtocolGob  = 1
	ProtocolGzip = 2

	Highest = ProtocolGzip
	Default = ProtocolGzip

	maxTypeKeyLen = 4096
)

var Magic = [8]byte{0x89, 'P', 'K', 'L', '\r', '\n', 0x1a, '\n'}

var (
	ErrForeignFormat       = errors.New("not a paprika object file")
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
	ErrTypeMismatch        = errors.New("encoded type does not match")
	ErrCorrupt             = errors.New("corrupt or truncated data")
)

func Supported(protocol int) bool {
	return protocol == ProtocolGob || protocol == ProtocolGzip
}

// Encode writes v framed under protocol and typeKey.
func Encode(w io.Writer, protocol int, typeKey string, v any) error {
	if !Supported(protocol) {
		return fmt.Errorf("%w: %d", ErrUnsupportedProtocol, protocol)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(Magic[:]); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(protocol)); err != nil {
		return err
	}
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(typeKey)))
	if _, err := bw.Write(lenBuf[:n]); err != nil {
		return err
	}
	if _, err := bw.WriteString(typeKey); err != nil {
		return err
	}

	switch protocol {
	case ProtocolGob:
		if err := gob.NewEncoder(bw).Encode(v); err != nil {
			return err
		}
	case ProtocolGzip:
		zw := gzip.NewWriter(bw)
		if err := gob.NewEncoder(zw).Encode(v); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Decode reads a frame into v, which must be a pointer, and returns the
// protocol the frame was written with.
func Decode(r io.Reader, typeKey string, v any) (int, error) {
	br := bufio.NewReader(r)

	var magic [len(Magic)]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: missing header", ErrForeignFormat)
		}
		return 0, err
	}
	if !bytes.Equal(magic[:], Magic[:]) {
		return 0, ErrForeignFormat
	}

	p, err := br.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: missing protocol: %w", ErrCorrupt, err)
	}
	protocol := int(p)
	if !Supported(protocol) {
		return protocol, fmt.Errorf("%w: %d", ErrUnsupportedProtocol, protocol)
	}

	keyLen, err := binary.ReadUvarint(br)
	if err != nil {
		return protocol, fmt.Errorf("%w: missing type key: %w", ErrCorrupt, err)
	}
	if keyLen > maxTypeKeyLen {
		return protocol, fmt.Errorf("%w: type key length %d", ErrCorrupt, keyLen)
	}
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(br, key); err != nil {
		return protocol, fmt.Errorf("%w: type key: %w", ErrCorrupt, err)
	}
	if string(key) != typeKey {
		return protocol, fmt.Errorf("%w: file holds %s, want %s", ErrTypeMismatch, key, typeKey)
	}

	switch protocol {
	case ProtocolGob:
		err = decodeGob(br, v)
	case ProtocolGzip:
		err = decodeGzip(br, v)
	}
	return protocol, err
}

func decodeGob(br *bufio.Reader, v any) error {
	if err := gob.NewDecoder(br).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if _, err := br.ReadByte(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after body", ErrCorrupt)
	}
	return nil
}

func decodeGzip(br *bufio.Reader, v any) error {
	zr, err := gzip.NewReader(br)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	defer zr.Close()

	if err := gob.NewDecoder(zr).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	// Reading to the end verifies the gzip checksum and size.
	if _, err := io.Copy(io.Discard, zr); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return nil
}
