package mailsyntax

import (
	"golang.org/x/crypto/blake2b"
	"hash"
	"io"
	"sync"
)

// // // // // // // // // //

const hashBlockSize = 20

var blakePool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New(hashBlockSize, nil)
		return h
	},
}

func getHasher() hash.Hash {
	return blakePool.Get().(hash.Hash)
}

func putHasher(h hash.Hash) {
	h.Reset()
	blakePool.Put(h)
}

//

func digest(raw []byte) (out [hashBlockSize]byte) {
	h := getHasher()
	defer putHasher(h)

	h.Write(raw)
	h.Sum(out[:0])
	return
}

// Hash is a blake2b-160 fingerprint of the address as given. No case folding is applied,
// so addresses differing only in case hash differently.
func (obj *EmailObj) Hash() [hashBlockSize]byte {
	h := getHasher()
	defer putHasher(h)

	io.WriteString(h, obj.login)
	h.Write([]byte{'@'})
	io.WriteString(h, obj.domain)

	var out [hashBlockSize]byte
	h.Sum(out[:0])
	return out
}
