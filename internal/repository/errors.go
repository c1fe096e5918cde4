package repository

import (
	"errors"

	"gorm.io/gorm"
)

var errNotInitialised = errors.New("repository is not initialised")

// translate maps driver-level errors onto domain sentinels. The database must
// be opened with gorm.Config.TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	}
	return err
}
