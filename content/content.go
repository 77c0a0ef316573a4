// Package content embeds the default Dragon's Quest world, written in Lua.
package content

import "embed"

// FS holds game.lua, world.lua, items.lua and enemies.lua.
//
//go:embed *.lua
var FS embed.FS
