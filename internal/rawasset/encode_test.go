package rawasset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeExactText(t *testing.T) {
	require.Equal(t, `export default {"type":"Buffer","data":[0,1,2]}`, Encode([]byte{0x00, 0x01, 0x02}))
	require.Equal(t, `export default {"type":"Buffer","data":[]}`, Encode(nil))
	require.Equal(t, `export default {"type":"Buffer","data":[255,128,10]}`, Encode([]byte{0xff, 0x80, 0x0a}))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	every := make([]byte, 256)
	for i := range every {
		every[i] = byte(i)
	}

	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 4096)
	rng.Read(random)

	cases := map[string][]byte{
		"empty":        {},
		"every byte":   every,
		"invalid utf8": {0xc3, 0x28, 0xa0, 0xa1, 0xe2, 0x28, 0xa1},
		"random":       random,
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(Encode(data))
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestDecodeRejectsForeignModules(t *testing.T) {
	for _, code := range []string{
		`module.exports = [1]`,
		`export default {"type":"Uint8Array","data":[1]}`,
		`export default {"type":"Buffer","data":[256]}`,
		`export default {"type":"Buffer","data":[-1]}`,
		`export default {"type":"Buffer","data":[1,}`,
	} {
		_, err := Decode(code)
		require.Error(t, err, code)
	}
}
