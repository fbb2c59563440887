package compress

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRoundTripAllAlgorithms(t *testing.T) {
	// Fixed-stride numeric payloads are what snapshots feed the codecs.
	rng := rand.New(rand.NewSource(7))
	original := make([]byte, 64*1024)
	for i := 0; i < len(original); i += 8 {
		v := rng.Int63n(1000)
		for j := 0; j < 8 && i+j < len(original); j++ {
			original[i+j] = byte(v >> (8 * j))
		}
	}

	for _, alg := range []Algorithm{None, Gzip, LZ4, S2, Zstd} {
		codec, err := NewCodec(alg, Default)
		if err != nil {
			t.Fatalf("NewCodec(%s): %v", alg, err)
		}

		compressed, err := codec.Compress(original)
		if err != nil {
			t.Fatalf("%s compress: %v", alg, err)
		}

		decompressed, err := codec.Decompress(compressed)
		if err != nil {
			t.Fatalf("%s decompress: %v", alg, err)
		}

		if !bytes.Equal(original, decompressed) {
			t.Errorf("%s: decompressed data doesn't match original", alg)
		}

		if alg != None && len(compressed) >= len(original) {
			t.Logf("%s: compressed size (%d) not smaller than original (%d)",
				alg, len(compressed), len(original))
		}
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := NewCodec("brotli", Default); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestEmptyAlgorithmIsNone(t *testing.T) {
	codec, err := NewCodec("", Default)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if codec.Algorithm() != None {
		t.Errorf("expected None, got %s", codec.Algorithm())
	}
}
