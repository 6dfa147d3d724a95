package sample

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

func TestNames(t *testing.T) {
	require.Equal(t, []string{"lists", "mentions"}, Names())
}

func TestLoad(t *testing.T) {
	for _, name := range Names() {
		data, err := Load(name)
		require.NoError(t, err)
		require.True(t, json.Valid(data), name)
	}
	def, err := Load("")
	require.NoError(t, err)
	lists, err := Load("lists")
	require.NoError(t, err)
	require.Equal(t, lists, def)
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("nope")
	require.ErrorIs(t, err, appErr.ErrSampleNotFound)
}
