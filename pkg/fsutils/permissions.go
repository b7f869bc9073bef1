package fsutils

import "io/fs"

// NoPermissions is shown when metadata could not be read.
const NoPermissions = "----------"

// PermissionsText renders a mode as a type character followed by rwx triplets,
// e.g. "drwxr-xr-x". Unknown modes render as NoPermissions.
func PermissionsText(mode fs.FileMode, known bool) string {
	if !known {
		return NoPermissions
	}
	t := byte('-')
	switch {
	case mode.IsDir():
		t = 'd'
	case mode&fs.ModeSymlink != 0:
		t = 'l'
	}
	bits := mode.Perm().String() // "-rwxr-xr-x"
	return string(t) + bits[1:]
}
