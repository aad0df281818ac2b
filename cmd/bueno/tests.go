package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/stojanovski/bueno/json"
	"github.com/stojanovski/bueno/rbtree"
	"github.com/stojanovski/bueno/streamio"
)

// lineReaderStr mirrors the fixed torture-table string from the original
// maintest.c's test_line_reader.
const lineReaderStr = "0123456789\n" +
	"01234567890123456789\n" +
	"012345678901234567890123456789\n" +
	"0123456789\n" +
	"\n" +
	"0123456789012345678901234567890123456789\n" +
	"012345678901234567890123456789\n" +
	"01234567890123456789\n" +
	"0123456789\n"

// runTestLineReader reproduces maintest.c's test_line_reader: it writes
// each fixture to a real temporary file, reads it back a line at a time
// with a shrunk read buffer, and confirms the lines reassemble into the
// original bytes exactly.
func runTestLineReader(logger *zap.Logger, stdout io.Writer) int {
	fixtures := []string{
		lineReaderStr,
		"abc",
		"abc\ndef",
		"abc\n\n\ndef",
		"\n",
		"",
	}

	for _, content := range fixtures {
		if err := lineReaderOneTest(content, 5); err != nil {
			logger.Error("test_line_reader failed", zap.Error(err))
			return 1
		}
	}

	fmt.Fprintln(stdout, "test_line_reader: OK")
	return 0
}

func lineReaderOneTest(content string, readBufSize int) error {
	f, err := os.CreateTemp("", "bueno-line-reader-*.txt")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	src := streamio.NewFileReader(afero.NewOsFs(), path, streamio.WithReadBufferSize(readBufSize))
	lr := streamio.NewLineReader(src)
	if err := lr.Open(); err != nil {
		return fmt.Errorf("open line reader: %w", err)
	}

	var rebuilt []byte
	for {
		line, err := lr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		rebuilt = append(rebuilt, line...)
	}

	if string(rebuilt) != content {
		return fmt.Errorf("round-trip mismatch: got %q want %q", rebuilt, content)
	}
	return nil
}

// runTestBintree reproduces maintest.c's test_bintree: insert a batch of
// random values, validate, then remove by random probe until empty,
// validating after every mutation.
func runTestBintree(logger *zap.Logger, stdout io.Writer) int {
	rng := rand.New(rand.NewSource(1))
	var root rbtree.Root[int]
	less := func(a, b int) bool { return a < b }

	var nodes []*rbtree.Node[int]
	for i := 0; i < 100; i++ {
		n := rbtree.NewNode(rng.Intn(1000))
		nodes = append(nodes, n)
		root.Insert(n, less)
		if err := root.Validate(less); err != nil {
			logger.Error("test_bintree: insert validation failed", zap.Error(err))
			return 1
		}
	}

	for len(nodes) > 0 {
		idx := rng.Intn(len(nodes))
		n := nodes[idx]
		nodes = append(nodes[:idx], nodes[idx+1:]...)
		root.Remove(n)
		if err := root.Validate(less); err != nil {
			logger.Error("test_bintree: remove validation failed", zap.Error(err))
			return 1
		}
	}

	fmt.Fprintln(stdout, "test_bintree: OK")
	return 0
}

// runTestJSON smoke-tests the value parser against a handful of
// canonical value shapes.
func runTestJSON(logger *zap.Logger, stdout io.Writer) int {
	cases := []string{
		`"hello"`,
		`2.30e-2`,
		`true`,
		`false`,
		`nullXXX`,
	}
	for _, in := range cases {
		v := json.NewValueParser()
		_, status, err := v.Feed([]byte(in))
		if status == json.NeedMore {
			if _, _, err := v.Feed([]byte(" ")); err != nil {
				logger.Error("test_json failed", zap.String("input", in), zap.Error(err))
				return 1
			}
		} else if err != nil {
			logger.Error("test_json failed", zap.String("input", in), zap.Error(err))
			return 1
		}
	}
	fmt.Fprintln(stdout, "test_json: OK")
	return 0
}
