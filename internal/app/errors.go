package app

import "errors"

var (
	ErrOutputNotDirectory = errors.New("icongen output path is not a directory")
	ErrIconsNotFresh      = errors.New("icongen assets do not match a fresh render")
)
