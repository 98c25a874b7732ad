package paprika

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paprika-go/paprika/internal/codec"
	"github.com/paprika-go/paprika/internal/reflect"
)

const (
	ProtocolGob  = codec.ProtocolGob
	ProtocolGzip = codec.ProtocolGzip

	DefaultProtocol = codec.Default
	HighestProtocol = codec.Highest
)

// Persistence saves and loads instances of T with Go's native object
// encoding (encoding/gob) inside a versioned frame. Interface-typed fields
// need their concrete types registered with gob.Register.
type Persistence[T any] struct {
	protocol int
	typeKey  string
	name     string
	logger   *slog.Logger
}

// Pickled fixes the protocol used by Save and Encode. Load and Decode accept
// every supported protocol.
func Pickled[T any](opts ...Option) (*Persistence[T], error) {
	cfg := newConfig(opts)
	name := reflect.TypeName[T]()

	protocol := cfg.protocol
	switch {
	case protocol == 0:
		protocol = DefaultProtocol
	case protocol < 0:
		protocol = HighestProtocol
	}
	if !codec.Supported(protocol) {
		return nil, errSerialization(
			name,
			fmt.Sprintf("protocol %d is not supported", cfg.protocol),
			codec.ErrUnsupportedProtocol,
		)
	}

	return &Persistence[T]{
		protocol: protocol,
		typeKey:  reflect.TypeKey[T](),
		name:     name,
		logger:   cfg.logger,
	}, nil
}

func MustPickled[T any](opts ...Option) *Persistence[T] {
	p, err := Pickled[T](opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Persistence[T]) Protocol() int {
	return p.protocol
}

func (p *Persistence[T]) Encode(w io.Writer, v *T) error {
	if v == nil {
		return errSerialization(p.name, "cannot encode a nil instance", nil)
	}
	if err := codec.Encode(w, p.protocol, p.typeKey, v); err != nil {
		return errSerialization(p.name, "encode failed", err)
	}
	return nil
}

func (p *Persistence[T]) Decode(r io.Reader) (*T, error) {
	v := new(T)
	if _, err := codec.Decode(r, p.typeKey, v); err != nil {
		return nil, errSerialization(p.name, "decode failed", err)
	}
	return v, nil
}

// Save writes v to path. The file is replaced atomically, so a failed save
// never leaves a partial file behind.
func (p *Persistence[T]) Save(v *T, path string) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf, v); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errSerialization(p.name, "save failed", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errSerialization(p.name, "save failed", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errSerialization(p.name, "save failed", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errSerialization(p.name, "save failed", err)
	}

	p.logger.Debug("instance saved", "type", p.name, "path", path, "protocol", p.protocol, "bytes", buf.Len())
	return nil
}

func (p *Persistence[T]) Load(path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errSerialization(p.name, "load failed", err)
	}
	defer f.Close()

	v, err := p.Decode(f)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("instance loaded", "type", p.name, "path", path)
	return v, nil
}
