package history

import (
	"fmt"
	"os"

	"github.com/hnimtadd/vtcore/logger"
)

// mapThreshold is the read/write balance below which the backing file is
// mmap'ed: many more reads than appends means a scroll-heavy phase where
// per-read seek syscalls dominate.
const mapThreshold = -1000

// histFile is an append-only byte stream backed by an unnamed temporary
// file. Reads normally seek+read; when the read/write balance shows a
// read-heavy phase the file is mapped instead. All failures are logged and
// recovered locally, data already written stays readable.
type histFile struct {
	file   *os.File
	length int64

	// start of the mapped region, nil when not mapped
	fileMap []byte

	// incremented on add, decremented on get
	readWriteBalance int
}

func newHistFile() (*histFile, error) {
	file, err := os.CreateTemp("", "vtcore-*.history")
	if err != nil {
		return nil, fmt.Errorf("create history temp file: %w", err)
	}
	// The name disappears immediately; the kernel reclaims the blocks when
	// the descriptor closes.
	if err := os.Remove(file.Name()); err != nil {
		logger.DefaultLogger.Warn("history: unlink temp file", "err", err)
	}
	return &histFile{file: file}, nil
}

func (h *histFile) close() {
	if h.fileMap != nil {
		h.unmap()
	}
	if h.file != nil {
		_ = h.file.Close()
		h.file = nil
	}
}

func (h *histFile) mapFile() {
	if h.fileMap != nil || h.length == 0 {
		return
	}
	data, err := mapFile(h.file, h.length)
	if err != nil {
		// fall back to the read-seek combination
		h.readWriteBalance = 0
		logger.DefaultLogger.Warn("history: mmap failed", "err", err)
		return
	}
	h.fileMap = data
}

func (h *histFile) unmap() {
	if h.fileMap == nil {
		return
	}
	if err := unmapFile(h.fileMap); err != nil {
		logger.DefaultLogger.Warn("history: munmap failed", "err", err)
	}
	h.fileMap = nil
}

func (h *histFile) add(bytes []byte) {
	if h.fileMap != nil {
		h.unmap()
	}
	h.readWriteBalance++

	n, err := h.file.WriteAt(bytes, h.length)
	h.length += int64(n)
	if err != nil {
		logger.DefaultLogger.Error("history: append failed", "err", err)
	}
}

func (h *histFile) get(bytes []byte, loc int64) {
	if loc < 0 || loc+int64(len(bytes)) > h.length {
		logger.DefaultLogger.Debug("history: get out of range",
			"loc", loc, "size", len(bytes), "length", h.length)
		return
	}

	// Count get() calls against add() calls; a large imbalance means lines
	// are being read and processed in bulk, so map the file to save the
	// overhead of many seek-read pairs.
	h.readWriteBalance--
	if h.fileMap == nil && h.readWriteBalance < mapThreshold {
		h.mapFile()
	}

	if h.fileMap != nil {
		copy(bytes, h.fileMap[loc:loc+int64(len(bytes))])
		return
	}

	if _, err := h.file.ReadAt(bytes, loc); err != nil {
		logger.DefaultLogger.Error("history: read failed", "err", err)
	}
}

func (h *histFile) len() int64 { return h.length }

// truncate logically shortens the stream; the bytes stay in the file but
// are never addressed again and the next add overwrites them.
func (h *histFile) truncate(length int64) {
	if length >= h.length {
		return
	}
	if h.fileMap != nil {
		h.unmap()
	}
	h.length = length
}
