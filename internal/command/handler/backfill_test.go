package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCityStatePairs(t *testing.T) {
	t.Parallel()

	t.Run("no args uses the default map", func(t *testing.T) {
		t.Parallel()

		mapping, err := parseCityStatePairs(nil)
		require.NoError(t, err)
		assert.Equal(t, defaultCityStateMap, mapping)
		assert.Equal(t, "haryana", mapping["gurgaon"])
	})

	t.Run("explicit pairs override the default", func(t *testing.T) {
		t.Parallel()

		mapping, err := parseCityStatePairs([]string{"pune=maharashtra", "noida=uttar-pradesh"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"pune":  "maharashtra",
			"noida": "uttar-pradesh",
		}, mapping)
	})

	t.Run("malformed pair", func(t *testing.T) {
		t.Parallel()

		for _, arg := range []string{"pune", "pune=", "=maharashtra"} {
			_, err := parseCityStatePairs([]string{arg})
			assert.Error(t, err, arg)
		}
	})
}
