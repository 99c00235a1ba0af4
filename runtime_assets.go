package schemagen

import (
	"io/fs"

	"github.com/goliatone/go-schemagen/pkg/emitters/dart"
)

// RuntimeAssetsFS exposes the Dart validation runtime sources that the dart
// emitter bundles with every generation run, so applications can serve or
// vendor them without running the generator.
//
// Typical use:
//
//	data, _ := fs.ReadFile(schemagen.RuntimeAssetsFS(), "validators.dart")
func RuntimeAssetsFS() fs.FS {
	fsys := dart.RuntimeFS()
	sub, err := fs.Sub(fsys, "runtime")
	if err != nil {
		return fsys
	}
	return sub
}
