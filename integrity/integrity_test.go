package integrity

import "testing"

func TestVerifyMatchesAndDetectsDrift(t *testing.T) {
	data := []byte("some terrain bytes")
	fp := FingerprintTerrain(data)

	if !Verify(fp, data) {
		t.Fatal("Verify should match the data it was computed from")
	}

	mutated := append([]byte(nil), data...)
	mutated[0] ^= 0xFF
	if Verify(fp, mutated) {
		t.Fatal("Verify should detect mutated bytes")
	}
}
