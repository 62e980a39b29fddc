package errors

import (
	"testing"

	"atelier/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsKeepsSentinelIdentity(t *testing.T) {
	err := ErrInvalidAssetType.WithDetails("content type image/gif is not allowed")

	assert.ErrorIs(t, err, ErrInvalidAssetType)
	assert.Equal(t, "content type image/gif is not allowed", err.Details())

	// The predefined sentinel stays untouched.
	assert.Empty(t, ErrInvalidAssetType.Details())
}

func TestBaseError_WithDetailsDoesNotMatchOtherSentinels(t *testing.T) {
	err := ErrAssetTooLarge.WithDetails("54 MiB")

	assert.ErrorIs(t, err, ErrAssetTooLarge)
	assert.NotErrorIs(t, err, ErrInvalidAssetType)
	assert.NotErrorIs(t, err, ErrStorageFailure)
}

func TestBaseError_WrapMessageKeepsSentinelIdentity(t *testing.T) {
	err := ErrProductNotFound.WrapMessage("no such product")

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Contains(t, err.Error(), "no such product")
}

func TestBaseError_JoinedErrorsKeepBothIdentities(t *testing.T) {
	err := errors.Join(
		ErrMetadataWriteFailure.WrapMessage("insert failed"),
		ErrStorageFailure.WithDetails("orphaned blob products/x/y.jpg"),
	)

	assert.ErrorIs(t, err, ErrMetadataWriteFailure)
	assert.ErrorIs(t, err, ErrStorageFailure)
}
