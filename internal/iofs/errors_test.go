package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
	}{
		{"create dir", CreateDirError("/home/x/.cache/tapadyen", cause),
			errcode.CreateDirError, "/home/x/.cache/tapadyen"},
		{"write config", WriteConfigError("/home/x/.config/tapadyen/config.yaml", cause),
			errcode.ConfigFileError, "/home/x/.config/tapadyen/config.yaml"},
		{"read file", ReadFileError("catalog.json", cause),
			errcode.ReadFileError, "catalog.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), tt.path)
		})
	}
}
