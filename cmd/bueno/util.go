package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// runWriteFile reproduces maintest.c's util_write_file: write a string to
// a path in binary mode.
func runWriteFile(logger *zap.Logger, stdout io.Writer, args []string) int {
	path, contents := args[0], args[1]
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		logger.Error("writefile failed", zap.String("path", path), zap.Error(errors.Wrap(err, "writefile")))
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d bytes to %s\n", len(contents), path)
	return 0
}

// runUnlink reproduces maintest.c's os_unlink.
func runUnlink(logger *zap.Logger, stdout io.Writer, args []string) int {
	path := args[0]
	if err := os.Remove(path); err != nil {
		logger.Error("unlink failed", zap.String("path", path), zap.Error(errors.Wrap(err, "unlink")))
		return 1
	}
	fmt.Fprintf(stdout, "removed %s\n", path)
	return 0
}

// runHash reproduces maintest.c's util_djb2_hash over the joined
// arguments.
func runHash(logger *zap.Logger, stdout io.Writer, args []string) int {
	var h uint32 = 5381
	for _, arg := range args {
		h = djb2(h, []byte(arg))
	}
	fmt.Fprintf(stdout, "%d\n", h)
	return 0
}

// djb2 extends hash with the bytes of s, matching the original's
// resumable "hash * 33 + c" accumulation across calls.
func djb2(hash uint32, s []byte) uint32 {
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
