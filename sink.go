package godbf

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"
)

const fileExtension = ".DBF"

// fileSink exclusively owns the output file for the duration of one write.
type fileSink struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// TablePath returns the file a table named tableName is written to.
func TablePath(dir, tableName string) (string, error) {
	if tableName == "" || strings.ContainsAny(tableName, `/\`) || tableName == "." || tableName == ".." {
		return "", errors.Errorf("%q: %w", tableName, ErrInvalidTableName)
	}
	return filepath.Join(dir, tableName+fileExtension), nil
}

func openFileSink(dir, tableName string) (*fileSink, error) {
	path, err := TablePath(dir, tableName)
	if err != nil {
		return nil, err
	}
	// 覆盖写入，先删除旧文件
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	return &fileSink{
		path: path,
		f:    f,
		w:    bufio.NewWriter(f),
	}, nil
}

// release flushes and closes the file. When cause is not nil, or finishing the
// file fails, the partial file is removed and the first error is returned.
func (s *fileSink) release(cause error) error {
	if cause == nil {
		cause = s.w.Flush()
	}
	if cause == nil {
		cause = s.f.Sync()
	}
	if err := s.f.Close(); cause == nil {
		cause = err
	}
	if cause != nil {
		_ = os.Remove(s.path)
	}
	return cause
}

// withFileSink runs write against a freshly created dir/tableName.DBF and
// releases the file on every exit path.
func withFileSink(dir, tableName string, write func(w io.Writer) error) (err error) {
	sink, err := openFileSink(dir, tableName)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = sink.release(errors.Errorf("panic while writing %s: %v", sink.path, r))
			panic(r)
		}
		err = sink.release(err)
	}()
	return write(sink.w)
}
