// Package migrations embebe los archivos SQL del esquema.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql
var sqlFS embed.FS

// FS devuelve el filesystem con los .sql en la raíz.
func FS() fs.FS {
	sub, err := fs.Sub(sqlFS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
