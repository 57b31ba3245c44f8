package domain

import "fmt"

// DataType is the type of the value stored at a key.
type DataType uint8

const (
	TypeNone DataType = iota
	TypeString
	TypeList
	TypeSet
	TypeZSet
	TypeHash
	TypeStream
)

var dataTypeTags = map[string]DataType{
	"none":   TypeNone,
	"string": TypeString,
	"list":   TypeList,
	"set":    TypeSet,
	"zset":   TypeZSet,
	"hash":   TypeHash,
	"stream": TypeStream,
}

func ParseDataType(tag string) (DataType, error) {
	if dataType, exists := dataTypeTags[tag]; exists {
		return dataType, nil
	}

	return TypeNone, fmt.Errorf("%w: %q", ErrUnknownDataType, tag)
}

func (dataType DataType) String() string {
	for tag, known := range dataTypeTags {
		if known == dataType {
			return tag
		}
	}

	return fmt.Sprintf("DataType(%d)", uint8(dataType))
}
