package code

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_WithDetailsDoesNotMutateRegistered(t *testing.T) {
	withDetails := ErrorInvalidDate.WithDetails("31.02.2023")

	assert.Empty(t, ErrorInvalidDate.Details())
	assert.Equal(t, []string{"31.02.2023"}, withDetails.Details())
	assert.True(t, errors.Is(withDetails, ErrorInvalidDate))
	assert.False(t, errors.Is(withDetails, ErrorDBWrite))
}

func TestCode_WithCause(t *testing.T) {
	err := ErrorDBWrite.WithCause(io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrorDBWrite)
	assert.Contains(t, err.Error(), io.ErrUnexpectedEOF.Error())
}

func TestSetGlobalDefaultLang(t *testing.T) {
	defer func() { _ = SetGlobalDefaultLang(FALLBACK_LNG) }()

	assert.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "盆景不存在", ErrorBonsaiNotFound.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, "Bonsai not found", ErrorBonsaiNotFound.Msg())
}
