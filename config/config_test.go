package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestFromEnv(t *testing.T) {

	t.Run("Empty", func(t *testing.T) {
		c, err := fromLookup(Default(), mapLookup(nil))
		require.NoError(t, err)
		require.Equal(t, Default(), c)
	})

	t.Run("Overrides", func(t *testing.T) {
		c, err := fromLookup(Default(), mapLookup(map[string]string{
			EnvNoSIMD:         "1",
			EnvM4RIBatch:      "4",
			EnvM4RIMinRows:    "64",
			EnvM4RIMinColumns: "32",
			EnvM4RIMinDensity: "0.5",
			EnvLogVerbosity:   "2",
		}))
		require.NoError(t, err)
		require.True(t, c.NoSIMD)
		require.Equal(t, 4, c.M4RIBatch)
		require.Equal(t, 64, c.M4RIMinRows)
		require.Equal(t, 32, c.M4RIMinColumns)
		require.Equal(t, 0.5, c.M4RIMinDensity)
		require.Equal(t, 2, c.LogVerbosity)
	})

	t.Run("NoSIMD/NonBool", func(t *testing.T) {
		c, err := fromLookup(Default(), mapLookup(map[string]string{EnvNoSIMD: "yes"}))
		require.NoError(t, err)
		require.True(t, c.NoSIMD)
	})

	t.Run("NoSIMD/False", func(t *testing.T) {
		c, err := fromLookup(Default(), mapLookup(map[string]string{EnvNoSIMD: "false"}))
		require.NoError(t, err)
		require.False(t, c.NoSIMD)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := fromLookup(Default(), mapLookup(map[string]string{EnvM4RIBatch: "x"}))
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = fromLookup(Default(), mapLookup(map[string]string{EnvM4RIBatch: "64"}))
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = fromLookup(Default(), mapLookup(map[string]string{EnvM4RIMinDensity: "2"}))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoad(t *testing.T) {
	c, err := load(mapLookup(map[string]string{EnvM4RIBatch: "4", EnvLogVerbosity: "1"}))
	require.NoError(t, err)
	require.Equal(t, 4, c.M4RIBatch)
	require.Equal(t, 1, c.LogVerbosity)

	// one invalid override discards all of them
	c, err = load(mapLookup(map[string]string{EnvM4RIBatch: "4", EnvM4RIMinRows: "many"}))
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Equal(t, Default(), c)

	require.Equal(t, Global(), Global())
	if GlobalErr() != nil {
		require.Equal(t, Default(), Global())
	}
}

func TestJSON(t *testing.T) {
	c := Default()
	c.M4RIBatch = 6
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var d Config
	require.NoError(t, json.Unmarshal(data, &d))
	require.Equal(t, c, d)

	var e Config
	require.NoError(t, json.Unmarshal([]byte(`{"m4ri_min_rows": 10}`), &e))
	require.Equal(t, 10, e.M4RIMinRows)
	require.Equal(t, Default().M4RIBatch, e.M4RIBatch)

	require.Error(t, json.Unmarshal([]byte(`{"m4ri_batch": 0}`), &e))
}
