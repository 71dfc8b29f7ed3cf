//go:build !unix

package history

import (
	"errors"
	"os"
)

var errMmapUnsupported = errors.New("file mapping not supported on this platform")

func mapFile(_ *os.File, _ int64) ([]byte, error) {
	return nil, errMmapUnsupported
}

func unmapFile(_ []byte) error { return nil }
