// Package contenthash implements the Dropbox content hash used to verify
// uploaded file content.
//
// The input is split into 4 MiB blocks, each block is hashed with SHA-256,
// and the digest is the SHA-256 of the concatenated block digests. Dropbox
// reports it hex-encoded in the content_hash field of file metadata.
//
// Reference: https://www.dropbox.com/developers/reference/content-hash
package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

const (
	// Size is the length, in bytes, of a content hash digest.
	Size = sha256.Size

	// BlockSize is the preferred input block size for the hash, in bytes.
	BlockSize = sha256.BlockSize

	// chunkSize is the size of the blocks hashed individually (4 MiB).
	chunkSize = 4 * 1024 * 1024
)

// digest is the internal state of a content hash computation.
type digest struct {
	blockSums []byte    // concatenated SHA-256 digests of completed blocks
	block     hash.Hash // hashes the current block
	inBlock   int       // bytes written to the current block
}

// New returns a new hash.Hash computing the Dropbox content hash.
func New() hash.Hash {
	return &digest{block: sha256.New()}
}

// Write absorbs more data into the running hash.
// It always returns len(p), nil.
func (d *digest) Write(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		take := min(chunkSize-d.inBlock, len(p))

		d.block.Write(p[:take])
		d.inBlock += take
		p = p[take:]

		if d.inBlock == chunkSize {
			d.blockSums = d.block.Sum(d.blockSums)
			d.block.Reset()
			d.inBlock = 0
		}
	}

	return n, nil
}

// Sum appends the current hash to b and returns the resulting slice.
// It does not change the underlying hash state.
func (d *digest) Sum(b []byte) []byte {
	sums := d.blockSums
	if d.inBlock > 0 {
		// Full slice expression forces a copy so d.blockSums is not extended.
		sums = d.block.Sum(sums[:len(sums):len(sums)])
	}

	overall := sha256.Sum256(sums)

	return append(b, overall[:]...)
}

// Reset resets the hash to its initial state.
func (d *digest) Reset() {
	d.blockSums = d.blockSums[:0]
	d.block.Reset()
	d.inBlock = 0
}

// Size returns the number of bytes Sum will return.
func (d *digest) Size() int {
	return Size
}

// BlockSize returns the hash's underlying block size.
func (d *digest) BlockSize() int {
	return BlockSize
}

// Sum returns the hex-encoded content hash of data.
func Sum(data []byte) string {
	h := New()
	h.Write(data)

	return hex.EncodeToString(h.Sum(nil))
}
