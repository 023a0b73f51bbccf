package app

import "github.com/nhle/eventcal/internal/keys"

// KeyMap is re-exported from the keys package so callers of app need not
// import it.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
