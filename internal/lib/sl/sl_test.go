package sl

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("connection refused"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "connection refused", attr.Value.String())
}

func TestUserID(t *testing.T) {
	attr := UserID(555000111)

	assert.Equal(t, "user_id", attr.Key)
	assert.Equal(t, slog.KindInt64, attr.Value.Kind())
	assert.Equal(t, int64(555000111), attr.Value.Int64())
}
