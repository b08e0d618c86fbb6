package savegame

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
)

// Savegame layout:
//
//	magic "UFPQ" | version byte | blake3-256 of the body | body
//
// The body is an lz4 frame wrapping the protowire encoded campaign.
const (
	magic       = "UFPQ"
	version     = byte(1)
	sumSize     = 32
	headerSize  = len(magic) + 1 + sumSize
	maxBodySize = 64 << 20
)

var (
	// ErrNotASavegame is returned for data without the savegame magic
	ErrNotASavegame = errors.New("savegame: not a production savegame")

	// ErrUnsupportedVersion is returned for savegames written by a newer format
	ErrUnsupportedVersion = errors.New("savegame: unsupported version")

	// ErrChecksumMismatch is returned when the body does not hash to the stored sum
	ErrChecksumMismatch = errors.New("savegame: checksum mismatch")
)

// Codec implements campaign.SavegameCodec
type Codec struct{}

// NewCodec creates a savegame codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode writes a campaign snapshot as a savegame
func (c *Codec) Encode(snapshot campaign.Snapshot) ([]byte, error) {
	body, err := compress(marshalSnapshot(snapshot))
	if err != nil {
		return nil, err
	}
	sum := blake3.Sum256(body)

	out := make([]byte, 0, headerSize+len(body))
	out = append(out, magic...)
	out = append(out, version)
	out = append(out, sum[:]...)
	out = append(out, body...)
	return out, nil
}

// Decode verifies and reads a savegame
func (c *Codec) Decode(data []byte) (*campaign.Snapshot, error) {
	if len(data) < headerSize || string(data[:len(magic)]) != magic {
		return nil, ErrNotASavegame
	}
	if v := data[len(magic)]; v != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	stored := data[len(magic)+1 : headerSize]
	body := data[headerSize:]
	sum := blake3.Sum256(body)
	if !bytes.Equal(stored, sum[:]) {
		return nil, ErrChecksumMismatch
	}

	raw, err := decompress(body)
	if err != nil {
		return nil, err
	}
	snap, err := unmarshalSnapshot(raw)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("savegame: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("savegame: compress: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zr := lz4.NewReader(bytes.NewReader(src))
	n, err := io.Copy(&buf, io.LimitReader(zr, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("savegame: decompress: %w", err)
	}
	if n > maxBodySize {
		return nil, fmt.Errorf("savegame: body exceeds %d bytes", maxBodySize)
	}
	return buf.Bytes(), nil
}

var _ campaign.SavegameCodec = (*Codec)(nil)
