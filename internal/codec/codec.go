// Package codec implements the text compression used by compressed string
// literals and the cmp/dmp operations.
//
// Compressed output is armored as unpadded base64, so that anything produced
// by Compress may be pasted back into program text between backticks.
package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// Codec compresses and decompresses byte strings.
type Codec interface {
	Name() string
	Compress(src []byte) []byte
	Decompress(src []byte) ([]byte, error)
}

// DefaultName names the codec used when none is configured.
const DefaultName = "flate"

var constructors = map[string]func() (Codec, error){
	"flate": newFlate,
	"zstd":  newZstd,
}

// Names returns the known codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the named codec; the empty name selects DefaultName.
func New(name string) (Codec, error) {
	if name == "" {
		name = DefaultName
	}
	construct, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q, want one of %q", name, Names())
	}
	inner, err := construct()
	if err != nil {
		return nil, fmt.Errorf("codec %v: %w", name, err)
	}
	return armored{inner}, nil
}

// Default returns the DefaultName codec.
func Default() Codec {
	c, err := New(DefaultName)
	if err != nil {
		panic(err)
	}
	return c
}

var armor = base64.RawStdEncoding

// maxDecoded bounds the length of any decompressed text.
var maxDecoded = 16 << 20

func errTooLarge() error {
	return fmt.Errorf("decompressed text exceeds %v bytes", maxDecoded)
}

type armored struct{ Codec }

func (a armored) Compress(src []byte) []byte {
	raw := a.Codec.Compress(src)
	dst := make([]byte, armor.EncodedLen(len(raw)))
	armor.Encode(dst, raw)
	return dst
}

func (a armored) Decompress(src []byte) ([]byte, error) {
	raw := make([]byte, armor.DecodedLen(len(src)))
	n, err := armor.Decode(raw, src)
	if err != nil {
		return nil, fmt.Errorf("invalid armor: %w", err)
	}
	return a.Codec.Decompress(raw[:n])
}

// dictionary primes DEFLATE with fragments common in short English text, much
// like the codebook of a smaz style compressor; it is part of the wire format
// and must not change.
const dictionary = "" +
	" the e t a of o and i n s e r  th  t in he th h he to\r\nl s d  a an er c " +
	"o d on  of re of t, en  s te  the ing nd is ll ou  w ed  i it  c ea " +
	"hat was for with that this you have are not but from they which one " +
	"all were there their what when your can said each about how up out " +
	"them then she many some so these would other into has more her two like " +
	"him see time could make than first been its who now people my made over " +
	"did down only way find use may water long little very after words called " +
	"just where most know get through back much before go good new write our " +
	"used me man too any day same right look think also around another came " +
	"come work three word must because does part even place well such here " +
	"take why things help put years different away again off went old number " +
	"Hello, World! hello world hi Hi. ? ! , . ; : ' \" ( ) - 0123456789"

type flateCodec struct {
	mu sync.Mutex
	w  *flate.Writer
}

func newFlate() (Codec, error) {
	w, err := flate.NewWriterDict(io.Discard, flate.BestCompression, []byte(dictionary))
	if err != nil {
		return nil, err
	}
	return &flateCodec{w: w}, nil
}

func (fc *flateCodec) Name() string { return "flate" }

func (fc *flateCodec) Compress(src []byte) []byte {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	var buf bytes.Buffer
	fc.w.Reset(&buf)
	// writes into a bytes.Buffer cannot fail
	fc.w.Write(src)
	fc.w.Close()
	return buf.Bytes()
}

func (fc *flateCodec) Decompress(src []byte) ([]byte, error) {
	r := flate.NewReaderDict(bytes.NewReader(src), []byte(dictionary))
	defer r.Close()
	b, err := io.ReadAll(io.LimitReader(r, int64(maxDecoded)+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxDecoded {
		return nil, errTooLarge()
	}
	return b, nil
}

type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstd() (Codec, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithZeroFrames(true))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(maxDecoded)))
	if err != nil {
		return nil, err
	}
	return zstdCodec{enc, dec}, nil
}

func (zc zstdCodec) Name() string { return "zstd" }

func (zc zstdCodec) Compress(src []byte) []byte {
	return zc.enc.EncodeAll(src, nil)
}

func (zc zstdCodec) Decompress(src []byte) ([]byte, error) {
	b, err := zc.dec.DecodeAll(src, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, errTooLarge()
	case err != nil:
		return nil, err
	case len(b) > maxDecoded:
		return nil, errTooLarge()
	}
	return b, nil
}
