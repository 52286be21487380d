// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bcvm

import (
	"unsafe"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/Fantom-foundation/svm/go/svm/isa"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DecoderConfig contains a set of configuration options for code decoding.
type DecoderConfig struct {
	// CacheSize is the maximum size of the maintained code cache in bytes.
	// If set to 0, a default size is used. If negative, no cache is used.
	// Cache sizes are grown in increments of maxCachedCodeLength decoded
	// instructions. Positive values larger than 0 but too small for a single
	// such increment are reported as invalid cache sizes during
	// initialization.
	CacheSize int
}

// Decoder decodes programs into their executable form, retaining recently
// decoded programs in a cache.
type Decoder struct {
	cache *lru.Cache[svm.Hash, Code]
}

// maxCachedCodeLength is the maximum length of a code in bytes retained in
// the cache. It covers every offset reachable by a jump.
const maxCachedCodeLength = isa.MaxAddress + 1

// NewDecoder creates a new decoder with the provided configuration.
func NewDecoder(config DecoderConfig) (*Decoder, error) {
	if config.CacheSize == 0 {
		config.CacheSize = 1 << 28 // = 256 MiB
	}

	var cache *lru.Cache[svm.Hash, Code]
	if config.CacheSize > 0 {
		var err error
		const instructionSize = int(unsafe.Sizeof(Instruction{}))
		capacity := config.CacheSize / maxCachedCodeLength / instructionSize
		cache, err = lru.New[svm.Hash, Code](capacity)
		if err != nil {
			return nil, err
		}
	}
	return &Decoder{cache: cache}, nil
}

// Decode decodes the given code. If the provided code hash is not nil, it is
// assumed to be a valid hash of the code and is used to cache the result. If
// the hash is nil, the result is not cached.
func (d *Decoder) Decode(code svm.Code, codeHash *svm.Hash) Code {
	if d.cache == nil || codeHash == nil {
		return decode(code)
	}

	res, exists := d.cache.Get(*codeHash)
	if exists {
		return res
	}

	res = decode(code)
	if len(res) > maxCachedCodeLength {
		return res
	}

	d.cache.Add(*codeHash, res)
	return res
}
