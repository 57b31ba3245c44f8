package script

import (
	"embed"
	"io/fs"
	"strings"
)

// Name is the logical name of a script; it is never a path.
type Name string

const (
	Expire      Name = "EXPIRE"
	PExpire     Name = "PEXPIRE"
	ExpireAt    Name = "EXPIREAT"
	PExpireAt   Name = "PEXPIREAT"
	TTL         Name = "TTL"
	PTTL        Name = "PTTL"
	ExpireTime  Name = "EXPIRETIME"
	PExpireTime Name = "PEXPIRETIME"
	Unlink      Name = "UNLINK"

	Set   Name = "SET"
	GetEx Name = "GETEX"
)

const (
	categoryKey    = "key"
	categoryString = "string"

	pathPrefix = "lua"
	pathSuffix = ".lua"
)

//go:embed lua
var embedded embed.FS

var categories = map[Name]string{
	Expire:      categoryKey,
	PExpire:     categoryKey,
	ExpireAt:    categoryKey,
	PExpireAt:   categoryKey,
	TTL:         categoryKey,
	PTTL:        categoryKey,
	ExpireTime:  categoryKey,
	PExpireTime: categoryKey,
	Unlink:      categoryKey,

	Set:   categoryString,
	GetEx: categoryString,
}

// Path maps a logical name to its location inside the script file system.
func Path(name Name) (string, bool) {
	category, exists := categories[name]

	if !exists {
		return "", false
	}

	return pathPrefix + "/" + category + "/" + strings.ToLower(string(name)) + pathSuffix, true
}

func Names() []Name {
	names := make([]Name, 0, len(categories))

	for name := range categories {
		names = append(names, name)
	}

	return names
}

// Embedded returns the scripts compiled into the binary.
func Embedded() fs.FS {
	return embedded
}
