package starknet_test

import (
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/starkhash/model/starknet"
)

func TestParseProtocolVersion(t *testing.T) {
	t.Run("three components", func(t *testing.T) {
		v, err := starknet.ParseProtocolVersion("0.13.2")
		require.NoError(t, err)
		assert.Equal(t, "0.13.2", v.String())
		assert.False(t, v.IsZero())
	})

	t.Run("four components", func(t *testing.T) {
		v, err := starknet.ParseProtocolVersion("0.13.1.1")
		require.NoError(t, err)
		assert.Equal(t, 1, v.Compare(starknet.MustParseProtocolVersion("0.13.1")))
		assert.Equal(t, -1, v.Compare(starknet.MustParseProtocolVersion("0.13.2")))
	})

	t.Run("short form", func(t *testing.T) {
		v, err := starknet.ParseProtocolVersion("0.9")
		require.NoError(t, err)
		assert.Equal(t, 0, v.Compare(starknet.MustParseProtocolVersion("0.9.0")))
		assert.Equal(t, "0.9", v.String())
	})

	t.Run("empty is version-less", func(t *testing.T) {
		v, err := starknet.ParseProtocolVersion("")
		require.NoError(t, err)
		assert.True(t, v.IsZero())
		assert.True(t, v.LessThan(starknet.MustParseProtocolVersion("0.7.0")))
	})

	t.Run("malformed", func(t *testing.T) {
		for _, s := range []string{"v0.13.2", "0.13.x", "1.2.3.4.5", "0..1"} {
			_, err := starknet.ParseProtocolVersion(s)
			assert.Error(t, err, s)
		}
	})
}

func TestProtocolVersionOrdering(t *testing.T) {
	ordered := []string{"", "0.7.0", "0.9.1", "0.10.0", "0.13.1", "0.13.1.1", "0.13.2", "0.13.4", "0.14.0"}
	for i := 1; i < len(ordered); i++ {
		lower := starknet.MustParseProtocolVersion(ordered[i-1])
		higher := starknet.MustParseProtocolVersion(ordered[i])
		assert.True(t, lower.LessThan(higher), "%q < %q", ordered[i-1], ordered[i])
		assert.False(t, higher.LessThan(lower))
	}
}

func TestProtocolVersionFelt(t *testing.T) {
	v := starknet.MustParseProtocolVersion("0.13.2")
	expected := new(felt.Felt).SetBytes([]byte("0.13.2"))
	actual := v.Felt()
	assert.True(t, expected.Equal(&actual))

	zero := starknet.ProtocolVersion{}.Felt()
	assert.True(t, zero.IsZero())
}

func TestVersionRange(t *testing.T) {
	r := starknet.VersionsFrom("0.7.0", "0.13.2")
	assert.True(t, r.Contains(starknet.MustParseProtocolVersion("0.7.0")))
	assert.True(t, r.Contains(starknet.MustParseProtocolVersion("0.13.1.1")))
	assert.False(t, r.Contains(starknet.MustParseProtocolVersion("0.13.2")))
	assert.False(t, r.Contains(starknet.MustParseProtocolVersion("0.6.9")))
	assert.Equal(t, "[0.7.0, 0.13.2)", r.String())

	open := starknet.VersionsFrom("0.13.2", "")
	assert.True(t, open.Contains(starknet.MustParseProtocolVersion("9.0.0")))

	legacy := starknet.VersionsFrom("", "0.7.0")
	assert.True(t, legacy.Contains(starknet.ProtocolVersion{}))
}

func TestCheckVersionRanges(t *testing.T) {
	valid := []starknet.VersionRange{
		starknet.VersionsFrom("", "0.7.0"),
		starknet.VersionsFrom("0.7.0", "0.13.2"),
		starknet.VersionsFrom("0.13.2", ""),
	}
	require.NoError(t, starknet.CheckVersionRanges(valid))

	overlapping := []starknet.VersionRange{
		starknet.VersionsFrom("", "0.8.0"),
		starknet.VersionsFrom("0.7.0", "0.13.2"),
	}
	assert.Error(t, starknet.CheckVersionRanges(overlapping))

	openInMiddle := []starknet.VersionRange{
		starknet.VersionsFrom("", ""),
		starknet.VersionsFrom("0.7.0", "0.13.2"),
	}
	assert.Error(t, starknet.CheckVersionRanges(openInMiddle))

	empty := []starknet.VersionRange{starknet.VersionsFrom("0.7.0", "0.7.0")}
	assert.Error(t, starknet.CheckVersionRanges(empty))
}
