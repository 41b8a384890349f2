// Package hashid obscures sequential post IDs in public URLs.
// The transform is reversible and salted but not cryptographically secure;
// it only keeps URLs from being enumerable at a glance.
package hashid

import (
	hashids "github.com/speps/go-hashids/v2"
)

const (
	// Alphabet - allowed output characters. Lowercase only so hashes survive
	// case-insensitive URL handling
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// HashLength - minimum encoded length. Every realistic post ID encodes to
	// exactly this many characters
	HashLength = 8
)

// Codec - encodes and decodes post IDs using the configured salt
type Codec struct {
	h *hashids.HashID
}

// NewCodec - creates a codec for the given salt
// Two codecs with the same salt produce identical hashes
func NewCodec(salt string) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = HashLength
	data.Alphabet = Alphabet

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}

	return &Codec{h: h}, nil
}

// Encode - encodes a post ID into its URL hash
func (c *Codec) Encode(id int64) (string, error) {
	return c.h.EncodeInt64([]int64{id})
}

// Decode - decodes a URL hash back into a post ID
// Malformed input yields ok == false, which callers treat as "post not found"
func (c *Codec) Decode(hash string) (int64, bool) {
	if hash == "" {
		return 0, false
	}

	ids, err := c.h.DecodeInt64WithError(hash)
	if err != nil || len(ids) == 0 || ids[0] < 0 {
		return 0, false
	}

	return ids[0], true
}
