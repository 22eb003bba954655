package catalog

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"github.com/hupe1980/signsel/blobstore"
	"github.com/klauspost/compress/zstd"
)

// Snapshot format: 4-byte magic, 1-byte version, zstd-compressed gob payload.
var snapshotMagic = [4]byte{'S', 'G', 'S', 'L'}

const snapshotVersion byte = 1

// snapshotPayload is the gob-encoded body of a catalog snapshot. Models are
// encoded through the Scorer interface, so concrete scorer types must be
// registered with encoding/gob (the hmm package registers its Model in init).
type snapshotPayload struct {
	Words  []string
	Models map[string]Scorer
}

// Save writes the catalog as a compressed snapshot blob. The catalog should
// be frozen first; Save freezes it if the caller has not.
func (c *Catalog) Save(ctx context.Context, store blobstore.BlobStore, name string) error {
	c.Freeze()

	c.mu.RLock()
	payload := snapshotPayload{
		Words:  append([]string(nil), c.words...),
		Models: make(map[string]Scorer, len(c.models)),
	}
	for word, model := range c.models {
		payload.Models[word] = model
	}
	c.mu.RUnlock()

	if len(payload.Words) == 0 {
		return ErrEmpty
	}

	var buf bytes.Buffer
	buf.Write(snapshotMagic[:])
	buf.WriteByte(snapshotVersion)

	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(payload); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush compressor: %w", err)
	}

	return store.Put(ctx, name, buf.Bytes())
}

// Load reads a snapshot blob and reconstructs a frozen catalog.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Catalog, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}
	if len(data) < len(snapshotMagic)+1 || !bytes.Equal(data[:4], snapshotMagic[:]) {
		return nil, fmt.Errorf("blob %q is not a catalog snapshot", name)
	}
	if version := data[4]; version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", version)
	}

	zr, err := zstd.NewReader(bytes.NewReader(data[5:]))
	if err != nil {
		return nil, fmt.Errorf("create decompressor: %w", err)
	}
	defer zr.Close()

	var payload snapshotPayload
	if err := gob.NewDecoder(zr).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := New()
	for _, word := range payload.Words {
		model, ok := payload.Models[word]
		if !ok {
			return nil, fmt.Errorf("snapshot missing model for word %q", word)
		}
		if err := c.Add(word, model); err != nil {
			return nil, err
		}
	}
	c.Freeze()
	return c, nil
}
