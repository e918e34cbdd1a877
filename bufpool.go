package textio

import "sync"

const CHUNK_SIZE = 32 * 1024

// chunkPool holds the copy buffers used by Input.WriteTo and Output.ReadFrom
// when the resource itself is unbuffered. 32KB is the size io.Copy uses.
var chunkPool = sync.Pool{
	New: func() any {
		b := make([]byte, CHUNK_SIZE)
		return &b
	},
}

// scratchPool reuses the encode buffers of Writer.WriteRunes and
// Writer.WriteString, which would otherwise allocate on every call.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

func getScratch() *[]byte { return scratchPool.Get().(*[]byte) }

// putScratch returns b to the pool unless it grew past CHUNK_SIZE.
func putScratch(b *[]byte, used []byte) {
	if cap(used) > CHUNK_SIZE {
		return
	}
	*b = used[:0]
	scratchPool.Put(b)
}
