package colors

import (
	"testing"

	"github.com/solarlune/globe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {

	tests := []struct {
		hex  string
		want globe.Color
	}{
		{"#ffffff", White()},
		{"000000", Black()},
		{"0xffffff", White()},
		{"#00000000", Transparent()},
		{" #FFFFFF ", White()},
	}

	for _, test := range tests {
		got, err := FromHex(test.hex)
		require.NoError(t, err, test.hex)
		assert.Equal(t, test.want, got, test.hex)
	}

	// Matches the engine's own hex constructor.
	got, err := FromHex("#336699")
	require.NoError(t, err)
	assert.Equal(t, globe.NewColorFromHexInt(0x336699), got)

}

func TestFromHexInvalid(t *testing.T) {
	for _, hex := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := FromHex(hex)
		assert.ErrorIs(t, err, ErrInvalidHex, hex)
	}
}
