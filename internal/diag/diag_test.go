package diag

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestWarnings_Err(t *testing.T) {
	t.Run("empty is nil", func(t *testing.T) {
		var ws Warnings
		assert.NoError(t, ws.Err())
	})

	t.Run("combines in order", func(t *testing.T) {
		var ws Warnings
		ws.Add(OpGlob, "/root/[a-", errors.New("syntax error in pattern"))
		ws.Add(OpReadDir, "/root/sub", fs.ErrPermission)
		require.Len(t, ws, 2)

		err := ws.Err()
		require.Error(t, err)
		errs := multierr.Errors(err)
		require.Len(t, errs, 2)
		assert.Equal(t, "glob /root/[a-: syntax error in pattern", errs[0].Error())
		assert.ErrorIs(t, err, fs.ErrPermission)
	})
}
