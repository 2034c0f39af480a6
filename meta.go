package godbf

// DBFHeader represents the 32 byte table descriptor at the start of a DBF file.
type DBFHeader struct {
	Version          byte
	LastUpdateYear   byte
	LastUpdateMonth  byte
	LastUpdateDay    byte
	NumRecords       uint32
	HeaderLength     uint16
	RecordLength     uint16
	Reserved         [2]byte
	Flag             byte
	EncryptFlag      byte
	Reserved2        [12]byte
	MDXFlag          byte
	LanguageDriverID byte
	Reserved3        [2]byte
}

// FieldDescriptor represents the 32 byte descriptor of a single field.
type FieldDescriptor struct {
	Name       [11]byte
	Type       FieldType
	Reserved1  [4]byte
	Length     byte
	Decimal    byte
	Reserved2  [2]byte
	WorkAreaID byte
	Reserved3  [10]byte
	Flag       byte
}

// FieldType is the single byte type tag of a field descriptor.
type FieldType byte

const (
	FieldCharacter FieldType = 'C'
	FieldNumeric   FieldType = 'N'
	FieldFloat     FieldType = 'F'
	FieldLogical   FieldType = 'L'
	FieldDate      FieldType = 'D'
)

func (t FieldType) String() string {
	switch t {
	case FieldCharacter:
		return "character"
	case FieldNumeric:
		return "numeric"
	case FieldFloat:
		return "float"
	case FieldLogical:
		return "logical"
	case FieldDate:
		return "date"
	}
	return "unknown(" + string(rune(t)) + ")"
}

const (
	// dBASE III without memo file
	VersionDBaseIII byte = 0x03

	headerSize     = 32
	descriptorSize = 32
	fieldNameSize  = 10
	maxCharLength  = 255
)

// placeholder last-update date (1999-04-04), written unless a stamp is requested
var placeholderDate = [3]byte{0x63, 0x04, 0x04}

// ColumnName returns the codepage encoded field name without its zero padding.
func (fd FieldDescriptor) ColumnName() string {
	for i, b := range fd.Name {
		if b == NUL {
			return string(fd.Name[:i])
		}
	}
	return string(fd.Name[:])
}
