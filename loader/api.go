package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the content constructors as globals.
//
//	Game { ... }
//	Location "id" { ... }
//	Item "id" { ... }
//	Enemy "id" { ... }
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Location", curried(L, func(d rawDef) { coll.locations = append(coll.locations, d) }))
	L.SetGlobal("Item", curried(L, func(d rawDef) { coll.items = append(coll.items, d) }))
	L.SetGlobal("Enemy", curried(L, func(d rawDef) { coll.enemies = append(coll.enemies, d) }))
}

// curried builds a constructor of the form Name "id" { ... }: the first call
// takes the id and returns a function that takes the table.
func curried(L *lua.LState, add func(rawDef)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(rawDef{id: id, table: L.CheckTable(1), where: L.Where(1)})
			return 0
		}))
		return 1
	})
}
