package classfile

import "testing"

// FuzzParse exercises New against arbitrary byte strings with
// `go test -fuzz=FuzzParse`. A malformed class file must always return an
// error, never panic.
func FuzzParse(f *testing.F) {
	f.Add([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = New(data, &Options{})
	})
}
