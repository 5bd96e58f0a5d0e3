// Package cidutil derives content identifiers for decoded payloads so runs
// that produced the same bytes can be recognised in history and logs.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CIDv1RawSHA256 returns a CIDv1 string using the "raw" multicodec
// and a sha2-256 multihash.
func CIDv1RawSHA256(data []byte) string {
	id, err := CIDv1RawSHA256CID(data)
	if err != nil {
		// multihash.Sum only errors for unknown codes or bad lengths.
		return ""
	}
	return id.String()
}

// CIDv1RawSHA256CID returns a CIDv1 (raw + sha2-256) derived from data.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Verify reports whether data hashes to the identifier in encoded.
func Verify(encoded string, data []byte) (bool, error) {
	want, err := cid.Decode(encoded)
	if err != nil {
		return false, err
	}
	got, err := want.Prefix().Sum(data)
	if err != nil {
		return false, err
	}
	return got.Equals(want), nil
}
