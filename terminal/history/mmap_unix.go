//go:build unix

package history

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(file *os.File, length int64) ([]byte, error) {
	return unix.Mmap(int(file.Fd()), 0, int(length), unix.PROT_READ, unix.MAP_SHARED)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
