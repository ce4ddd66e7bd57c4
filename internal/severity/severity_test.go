package severity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdering(t *testing.T) {
	assert.Less(t, int(Info), int(Warning))
	assert.Less(t, int(Warning), int(Error))
}

func TestParseRoundTrip(t *testing.T) {
	for _, name := range []string{"info", "warning", "error"} {
		l, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.String())
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("fatal")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Error)
	require.NoError(t, err)
	assert.Equal(t, `"error"`, string(data))

	var l Level
	require.NoError(t, json.Unmarshal(data, &l))
	assert.Equal(t, Error, l)
}

func TestJSONUnmarshalUnknown(t *testing.T) {
	var l Level
	err := json.Unmarshal([]byte(`"bogus"`), &l)
	assert.Error(t, err)
}
