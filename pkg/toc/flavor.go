// SPDX-License-Identifier: MPL-2.0

package toc

// FileExt is the manifest file extension.
const FileExt = ".toc"

const (
	// FlavorFallback is the flavor-less "<name>.toc" manifest loaded by any client.
	FlavorFallback Flavor = ""
	// FlavorMainline is the retail client manifest.
	FlavorMainline Flavor = "Mainline"
	// FlavorWrath is the Wrath of the Lich King classic manifest.
	FlavorWrath Flavor = "Wrath"
	// FlavorTBC is the Burning Crusade classic manifest.
	FlavorTBC Flavor = "TBC"
	// FlavorVanilla is the classic era manifest.
	FlavorVanilla Flavor = "Vanilla"
)

// Flavor selects one of the manifest file name variants an add-on may ship,
// one per supported game client.
type Flavor string

// Flavors returns all flavors in resolution priority order, fallback first.
func Flavors() []Flavor {
	return []Flavor{FlavorFallback, FlavorMainline, FlavorWrath, FlavorTBC, FlavorVanilla}
}

// FileName returns the manifest file name of this flavor for an add-on.
func (f Flavor) FileName(addOnName string) string {
	if f == FlavorFallback {
		return addOnName + FileExt
	}
	return addOnName + "_" + string(f) + FileExt
}

// String returns the flavor name, "fallback" for the flavor-less manifest.
func (f Flavor) String() string {
	if f == FlavorFallback {
		return "fallback"
	}
	return string(f)
}
