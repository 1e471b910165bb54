// Package common holds small helpers shared by the fudge-schema packages.
package common

import "path"

// PkgAlias returns the last element of a package path, the qualifier
// reflect uses in type strings. It is empty for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}
