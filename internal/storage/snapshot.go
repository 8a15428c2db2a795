package storage

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"specmap/internal/manifest"
)

// snapshotCodec turns manifests into compressed JSON blobs and back.
// The checksum covers the uncompressed JSON so corruption is caught
// regardless of where it happened.
type snapshotCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newSnapshotCodec() (*snapshotCodec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &snapshotCodec{enc: enc, dec: dec}, nil
}

// encode serializes a manifest and returns the compressed blob plus
// the hex checksum of the raw JSON.
func (c *snapshotCodec) encode(m *manifest.Manifest) ([]byte, string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	sum := blake2b.Sum256(raw)
	blob := c.enc.EncodeAll(raw, nil)
	return blob, hex.EncodeToString(sum[:]), nil
}

// decode decompresses and parses a snapshot blob, verifying the stored
// checksum when one is present.
func (c *snapshotCodec) decode(blob []byte, checksum string) (*manifest.Manifest, error) {
	raw, err := c.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}
	if checksum != "" {
		sum := blake2b.Sum256(raw)
		if hex.EncodeToString(sum[:]) != checksum {
			return nil, fmt.Errorf("snapshot checksum mismatch")
		}
	}
	var m manifest.Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	return &m, nil
}
