// Package toyhash is a simple, variable width hash function written for fun
// and self-education. It is NOT a cryptographic hash: do not use it where
// collision or preimage resistance matters.
//
// A ToyHash is a streaming digest in the spirit of hash.Hash:
//
//	h, err := toyhash.New(nil, 256)
//	if err != nil {
//		return err
//	}
//	h.Update([]byte("toy"))
//	h.Update([]byte("hash"))
//	fmt.Println(h.HexDigest())
//
// Digests are versioned. Every published algorithm version is frozen and keeps
// producing the same output forever; see package core/engine.
package toyhash
