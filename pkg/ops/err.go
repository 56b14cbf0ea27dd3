package ops

import "github.com/pkg/errors"

var ErrNoMetadata = errors.New("no package metadata found")

func track(err error) error {
	return errors.WithStack(err)
}
