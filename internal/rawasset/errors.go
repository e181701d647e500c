package rawasset

import (
	stderrors "errors"
	"io/fs"

	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
	"git.home.luguber.info/inful/rawassets/internal/logfields"
)

const assetReadMessage = "read asset"

// NewAssetReadError classifies a failed read of a matched asset. It is fatal
// and never retried: a missing asset is a broken build input. The message
// always names the path, whatever the filesystem reported.
func NewAssetReadError(id string, cause error) *errors.ClassifiedError {
	var pathErr *fs.PathError
	if !stderrors.As(cause, &pathErr) {
		cause = &fs.PathError{Op: "read", Path: id, Err: cause}
	}
	return errors.AssetError(assetReadMessage).
		WithCause(cause).
		WithContext(logfields.KeyModuleID, id).
		Build()
}

// IsAssetReadError reports whether err (or anything it wraps) is an asset read
// error. Outer classified errors, such as a failed bundle, are looked through.
func IsAssetReadError(err error) bool {
	_, ok := assetReadError(err)
	return ok
}

// AssetPath returns the module id recorded on an asset read error.
func AssetPath(err error) (string, bool) {
	classified, ok := assetReadError(err)
	if !ok {
		return "", false
	}
	return classified.Context().GetString(logfields.KeyModuleID)
}

func assetReadError(err error) (*errors.ClassifiedError, bool) {
	for err != nil {
		var classified *errors.ClassifiedError
		if !stderrors.As(err, &classified) {
			return nil, false
		}
		if classified.IsCategory(errors.CategoryAsset) && classified.Message() == assetReadMessage {
			return classified, true
		}
		err = classified.Unwrap()
	}
	return nil, false
}
