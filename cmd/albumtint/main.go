// Albumtint - colour palettes from album artwork
//
// Albumtint finds album cover art, clusters it into colour palettes and
// keeps the results in a local index.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/albumtint/internal/cli"
)

func main() {
	cli.Execute()
}
