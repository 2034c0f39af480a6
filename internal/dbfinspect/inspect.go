// Package dbfinspect reads back the structure of DBF files produced by the
// writer. It is used by tests and the inspect command, it is not a general
// purpose DBF reader.
package dbfinspect

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-errors/errors"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
)

var ErrMalformed = errors.New("malformed dbf file")

type File struct {
	Header  godbf.DBFHeader
	Fields  []godbf.FieldDescriptor
	Columns []string

	r        io.ReaderAt
	size     int64
	codepage *godbf.Codepage
}

// Record is the raw content of one record.
type Record struct {
	Deleted bool
	Fields  [][]byte
}

type workerArgs struct {
	index  uint32
	values *[]string
}

// OpenFile reads the complete file at path.
func OpenFile(path string, codepage *godbf.Codepage) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, codepage)
}

func Parse(data []byte, codepage *godbf.Codepage) (*File, error) {
	return Read(bytes.NewReader(data), int64(len(data)), codepage)
}

// Read parses the header and field descriptors of a DBF image of size bytes.
func Read(r io.ReaderAt, size int64, codepage *godbf.Codepage) (*File, error) {
	f := &File{
		r:        r,
		size:     size,
		codepage: codepage,
	}
	if err := f.initHeader(); err != nil {
		return nil, err
	}
	if err := f.initFields(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) initHeader() error {
	section := io.NewSectionReader(f.r, 0, f.size)
	if err := binary.Read(section, binary.LittleEndian, &f.Header); err != nil {
		return errors.Errorf("reading header: %w", err)
	}
	if f.Header.HeaderLength < 33 || (f.Header.HeaderLength-33)%32 != 0 {
		return errors.Errorf("header length %d: %w", f.Header.HeaderLength, ErrMalformed)
	}
	return nil
}

func (f *File) initFields() error {
	fieldNum := int((f.Header.HeaderLength - 1 - 32) / 32)
	section := io.NewSectionReader(f.r, 32, int64(fieldNum)*32)
	f.Fields = make([]godbf.FieldDescriptor, fieldNum)
	if err := binary.Read(section, binary.LittleEndian, f.Fields); err != nil {
		return errors.Errorf("reading field descriptors: %w", err)
	}
	f.Columns = make([]string, fieldNum)
	for i, descriptor := range f.Fields {
		f.Columns[i] = strings.TrimSpace(f.codepage.Decode([]byte(descriptor.ColumnName())))
	}

	terminator := make([]byte, 1)
	if _, err := f.r.ReadAt(terminator, int64(f.Header.HeaderLength)-1); err != nil {
		return errors.Errorf("reading header terminator: %w", err)
	}
	if terminator[0] != godbf.HeaderTerminator {
		return errors.Errorf("header terminator 0x%02x: %w", terminator[0], ErrMalformed)
	}
	return nil
}

func (f *File) NumRecords() uint32 {
	return f.Header.NumRecords
}

// Record returns the raw bytes of the record at index.
func (f *File) Record(index uint32) (Record, error) {
	if index >= f.Header.NumRecords {
		return Record{}, errors.New("index out of range")
	}
	start := int64(f.Header.HeaderLength) + int64(f.Header.RecordLength)*int64(index)
	data := make([]byte, f.Header.RecordLength)
	if _, err := f.r.ReadAt(data, start); err != nil {
		return Record{}, errors.Errorf("reading record %d: %w", index, err)
	}

	record := Record{
		Deleted: data[0] != godbf.SPACE,
		Fields:  make([][]byte, len(f.Fields)),
	}
	pos := 1
	for i, field := range f.Fields {
		next := pos + int(field.Length)
		if next > len(data) {
			return Record{}, errors.Errorf("record %d field %d: %w", index, i, ErrMalformed)
		}
		record.Fields[i] = data[pos:next]
		pos = next
	}
	return record, nil
}

// Values returns the decoded field values of the record at index with the
// space and zero byte padding removed.
func (f *File) Values(index uint32) ([]string, error) {
	record, err := f.Record(index)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(record.Fields))
	for i, raw := range record.Fields {
		values[i] = strings.TrimRight(f.codepage.Decode(raw), " \x00")
	}
	return values, nil
}

// HasEOFMarker reports whether the byte after the last record is 0x1A and
// nothing follows it.
func (f *File) HasEOFMarker() bool {
	offset := int64(f.Header.HeaderLength) + int64(f.Header.RecordLength)*int64(f.Header.NumRecords)
	if offset != f.size-1 {
		return false
	}
	marker := make([]byte, 1)
	if _, err := f.r.ReadAt(marker, offset); err != nil {
		return false
	}
	return marker[0] == godbf.EOF
}

// AllValues decodes every record, spreading the work over workerNums goroutines.
func (f *File) AllValues(workerNums int) ([][]string, error) {
	if workerNums < 1 {
		workerNums = 1
	}
	total := int(f.Header.NumRecords)
	rows := make([][]string, total)

	wg := sync.WaitGroup{}
	workerChan := make([]chan workerArgs, workerNums)
	errChan := make(chan error, total)
	for i := range workerChan {
		workerChan[i] = make(chan workerArgs, 16)
		go f.work(workerChan[i], errChan, &wg)
	}
	for i := 0; i < total; i++ {
		wg.Add(1)
		workerChan[i%workerNums] <- workerArgs{
			index:  uint32(i),
			values: &rows[i],
		}
	}
	wg.Wait()
	// 关闭通道，关闭worker
	for i := range workerChan {
		close(workerChan[i])
	}
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (f *File) work(taskChan <-chan workerArgs, errChan chan<- error, wg *sync.WaitGroup) {
	for args := range taskChan {
		values, err := f.Values(args.index)
		*args.values = values
		errChan <- err
		wg.Done()
	}
}
