package catalog

import (
	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"
)

// Icon keys stored on descriptors.
const (
	IconUsersThree      = "users-three"
	IconTreeStructure   = "tree-structure"
	IconGauge           = "gauge"
	IconBuildings       = "buildings"
	IconUserCircle      = "user-circle"
	IconMagnifyingGlass = "magnifying-glass"
	IconPuzzlePiece     = "puzzle-piece"
)

var iconComponents = map[string]func(icons.Props) templ.Component{
	IconUsersThree:      icons.UsersThree,
	IconTreeStructure:   icons.TreeStructure,
	IconGauge:           icons.Gauge,
	IconBuildings:       icons.Buildings,
	IconUserCircle:      icons.UserCircle,
	IconMagnifyingGlass: icons.MagnifyingGlass,
	IconPuzzlePiece:     icons.PuzzlePiece,
}

// Icon resolves an icon key to its SVG component. Unknown keys fall back to
// a generic puzzle piece so a bad catalog row never breaks a page.
func Icon(key string, size string) templ.Component {
	fn, ok := iconComponents[key]
	if !ok {
		fn = icons.PuzzlePiece
	}
	return fn(icons.Props{Size: size})
}

// HasIcon reports whether key maps to a known icon.
func HasIcon(key string) bool {
	_, ok := iconComponents[key]
	return ok
}
