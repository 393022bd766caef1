package toyhash

// Hash is a one-shot shortcut for New(data, bitLength).
func Hash(data any, bitLength int) (*ToyHash, error) {
	return New(data, bitLength)
}

// Fixed width shortcuts.
var (
	Hash64  = fixed(64)
	Hash128 = fixed(128)
	Hash256 = fixed(256)
	Hash512 = fixed(512)
)

// Shortcuts indexes the fixed width shortcuts by bit length.
var Shortcuts = map[int]func(data []byte) (*ToyHash, error){
	64:  Hash64,
	128: Hash128,
	256: Hash256,
	512: Hash512,
}

func fixed(bitLength int) func(data []byte) (*ToyHash, error) {
	return func(data []byte) (*ToyHash, error) {
		return New(data, bitLength)
	}
}
