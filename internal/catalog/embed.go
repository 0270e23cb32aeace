package catalog

import _ "embed"

// Default card database, bundled so the game works offline out of the box.
//
//go:embed db.json
var defaultDB []byte
