package godbf

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/go-errors/errors"
)

// encodeHeader writes the table descriptor, one descriptor per field and the
// header terminator.
func encodeHeader(w io.Writer, schema *Schema, numRecords int, codepage *Codepage, lastUpdate time.Time) error {
	if uint64(numRecords) > math.MaxUint32 {
		return errors.Errorf("%d rows: %w", numRecords, ErrRowCountOverflow)
	}
	header := DBFHeader{
		Version:          VersionDBaseIII,
		NumRecords:       uint32(numRecords),
		HeaderLength:     schema.HeaderLength(),
		RecordLength:     schema.RecordLength(),
		LanguageDriverID: codepage.LanguageDriverID,
	}
	header.LastUpdateYear, header.LastUpdateMonth, header.LastUpdateDay = updateDate(lastUpdate)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, schema.fields); err != nil {
		return err
	}
	_, err := w.Write([]byte{HeaderTerminator})
	return err
}

// updateDate returns the three date bytes of the header, years counted from 1900.
func updateDate(t time.Time) (year, month, day byte) {
	if t.IsZero() {
		return placeholderDate[0], placeholderDate[1], placeholderDate[2]
	}
	yearInt, monthInt, dayInt := t.Date()
	return byte(yearInt - 1900), byte(monthInt), byte(dayInt)
}
