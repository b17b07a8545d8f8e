package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua content constructors as globals.
// Most are curried: Constructor("id") returns a function taking a table,
// so content reads as `Quest "feed_the_hungry" { ... }`.
func registerAPI(L *lua.LState, coll *collector) {
	// World { title = "...", ... }
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.world = tbl
		return 0
	}))

	// YugaProfile "satya" { ... } — curried.
	L.SetGlobal("YugaProfile", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.yugas = append(coll.yugas, rawYuga{yuga: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Scripture "id" { ... } — curried.
	L.SetGlobal("Scripture", L.NewFunction(curried(&coll.scriptures)))

	// Dilemma "id" { ... } — curried.
	L.SetGlobal("Dilemma", L.NewFunction(curried(&coll.dilemmas)))

	// Quest "id" { ... } — curried.
	L.SetGlobal("Quest", L.NewFunction(curried(&coll.quests)))

	// Temple "id" { ... } — curried.
	L.SetGlobal("Temple", L.NewFunction(curried(&coll.temples)))

	// Practice "id" { ... } — curried.
	L.SetGlobal("Practice", L.NewFunction(curried(&coll.practices)))

	// ScoringRules { actions = {...}, contexts = {...}, ... }
	L.SetGlobal("ScoringRules", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.rules = tbl
		return 0
	}))
}

// curried builds a two-step Lua constructor appending to the given slice.
func curried(dest *[]rawBlock) lua.LGFunction {
	return func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*dest = append(*dest, rawBlock{id: id, table: tbl})
			return 0
		}))
		return 1
	}
}
