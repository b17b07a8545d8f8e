// Package loader loads Lua content tables into Go structs at load time.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"

	"github.com/sanat/karmaverse/engine"
	"github.com/sanat/karmaverse/engine/scoring"
	"github.com/sanat/karmaverse/types"
	lua "github.com/yuin/gopher-lua"
)

// rawBlock holds an id-keyed content table before compilation.
type rawBlock struct {
	id    string
	table *lua.LTable
}

// rawYuga holds a yuga profile table before compilation.
type rawYuga struct {
	yuga  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringSlice converts an array-style Lua table to []string.
func stringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	tbl.ForEach(func(k, v lua.LValue) {
		if _, ok := k.(lua.LNumber); !ok {
			return
		}
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

// tables converts an array-style Lua table to its element tables.
func tables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	tbl.ForEach(func(k, v lua.LValue) {
		if _, ok := k.(lua.LNumber); !ok {
			return
		}
		if t, ok := v.(*lua.LTable); ok {
			out = append(out, t)
		}
	})
	return out
}

// gunaDelta compiles a {sattva=..., rajas=..., tamas=...} table.
func gunaDelta(tbl *lua.LTable) types.GunaDelta {
	if tbl == nil {
		return types.GunaDelta{}
	}
	return types.GunaDelta{
		Sattva: getNumber(tbl, "sattva"),
		Rajas:  getNumber(tbl, "rajas"),
		Tamas:  getNumber(tbl, "tamas"),
	}
}

// virtueDelta compiles a partial virtue table.
func virtueDelta(tbl *lua.LTable) types.VirtueDelta {
	if tbl == nil {
		return types.VirtueDelta{}
	}
	return types.VirtueDelta{
		Compassion:   getNumber(tbl, "compassion"),
		Wisdom:       getNumber(tbl, "wisdom"),
		Courage:      getNumber(tbl, "courage"),
		Temperance:   getNumber(tbl, "temperance"),
		Justice:      getNumber(tbl, "justice"),
		Devotion:     getNumber(tbl, "devotion"),
		Detachment:   getNumber(tbl, "detachment"),
		Truthfulness: getNumber(tbl, "truthfulness"),
	}
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*engine.Defs, error) {
	defs := &engine.Defs{
		YugaProfiles: map[types.Yuga]types.YugaProfile{},
	}

	// World.
	if coll.world == nil {
		return nil, fmt.Errorf("no World{} definition found")
	}
	defs.World = engine.WorldDef{
		Title:   getString(coll.world, "title"),
		Author:  getString(coll.world, "author"),
		Version: getString(coll.world, "version"),
		Intro:   getString(coll.world, "intro"),
	}
	defs.JournalPrompts = stringSlice(getTable(coll.world, "journal_prompts"))

	// Yuga profiles.
	for _, raw := range coll.yugas {
		profile, err := compileYuga(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling yuga %s: %w", raw.yuga, err)
		}
		defs.YugaProfiles[types.Yuga(raw.yuga)] = profile
	}

	// Scriptures.
	for _, raw := range coll.scriptures {
		defs.Scriptures = append(defs.Scriptures, types.ScriptureQuote{
			ID:          raw.id,
			Text:        getString(raw.table, "text"),
			Source:      getString(raw.table, "source"),
			Translation: getString(raw.table, "translation"),
			Context:     getString(raw.table, "context"),
			Situations:  stringSlice(getTable(raw.table, "situations")),
		})
	}

	// Dilemmas.
	for _, raw := range coll.dilemmas {
		dilemma, err := compileDilemma(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling dilemma %s: %w", raw.id, err)
		}
		defs.Dilemmas = append(defs.Dilemmas, dilemma)
	}

	// Quests.
	for _, raw := range coll.quests {
		defs.Quests = append(defs.Quests, compileQuest(raw))
	}

	// Temples.
	for _, raw := range coll.temples {
		defs.Temples = append(defs.Temples, types.Temple{
			ID:           raw.id,
			Name:         getString(raw.table, "name"),
			Deity:        getString(raw.table, "deity"),
			Location:     getString(raw.table, "location"),
			Significance: getString(raw.table, "significance"),
			Yuga:         types.Yuga(getString(raw.table, "yuga")),
		})
	}

	// Practices.
	for _, raw := range coll.practices {
		benefits := getTable(raw.table, "benefits")
		practice := types.MeditationPractice{
			ID:          raw.id,
			Name:        getString(raw.table, "name"),
			Description: getString(raw.table, "description"),
		}
		if benefits != nil {
			practice.Benefits = types.MeditationReward{
				Sattva: getInt(benefits, "sattva"),
				Focus:  getInt(benefits, "focus"),
				Peace:  getInt(benefits, "peace"),
			}
		}
		defs.Practices = append(defs.Practices, practice)
	}

	// Scoring rules override.
	if coll.rules != nil {
		defs.Rules = compileRules(coll.rules)
		defs.HasRules = true
	}

	return defs, nil
}

func compileYuga(raw rawYuga) (types.YugaProfile, error) {
	tbl := raw.table
	profile := types.YugaProfile{
		Name:            getString(tbl, "name"),
		Description:     getString(tbl, "description"),
		Characteristics: stringSlice(getTable(tbl, "characteristics")),
	}

	env := getTable(tbl, "environment")
	if env == nil {
		return profile, fmt.Errorf("environment block is required")
	}
	profile.Environment = types.EnvironmentState{
		Harmony:      getInt(env, "harmony"),
		Prosperity:   getInt(env, "prosperity"),
		Spirituality: getInt(env, "spirituality"),
		Conflict:     getInt(env, "conflict"),
	}
	if colors := getTable(env, "colors"); colors != nil {
		profile.Environment.Colors = types.EnvironmentColors{
			Sky:        getString(colors, "sky"),
			Earth:      getString(colors, "earth"),
			Water:      getString(colors, "water"),
			Vegetation: getString(colors, "vegetation"),
		}
	}
	return profile, nil
}

func compileDilemma(raw rawBlock) (types.Dilemma, error) {
	tbl := raw.table
	dilemma := types.Dilemma{
		ID:              raw.id,
		Title:           getString(tbl, "title"),
		Scenario:        getString(tbl, "scenario"),
		Yuga:            types.Yuga(getString(tbl, "yuga")),
		YogaPath:        types.YogaPath(getString(tbl, "yoga_path")),
		PersonalContext: getString(tbl, "personal_context"),
	}

	for _, optTbl := range tables(getTable(tbl, "options")) {
		dilemma.Options = append(dilemma.Options, types.DilemmaOption{
			ID:                 getString(optTbl, "id"),
			Text:               getString(optTbl, "text"),
			Karma:              getInt(optTbl, "karma"),
			GunaChanges:        gunaDelta(getTable(optTbl, "gunas")),
			Description:        getString(optTbl, "description"),
			ScriptureReference: getString(optTbl, "scripture"),
		})
	}
	if len(dilemma.Options) == 0 {
		return dilemma, fmt.Errorf("at least one option is required")
	}
	return dilemma, nil
}

func compileQuest(raw rawBlock) types.Quest {
	tbl := raw.table
	quest := types.Quest{
		ID:            raw.id,
		Title:         getString(tbl, "title"),
		Description:   getString(tbl, "description"),
		Kind:          getString(tbl, "kind"),
		Difficulty:    getString(tbl, "difficulty"),
		YogaPathBonus: types.YogaPath(getString(tbl, "yoga_path_bonus")),
	}

	if rewards := getTable(tbl, "rewards"); rewards != nil {
		quest.Rewards = types.QuestReward{
			Karma:        getInt(rewards, "karma"),
			GunaChanges:  gunaDelta(getTable(rewards, "gunas")),
			VirtuePoints: virtueDelta(getTable(rewards, "virtues")),
			Items:        stringSlice(getTable(rewards, "items")),
		}
	}

	for _, reqTbl := range tables(getTable(tbl, "requirements")) {
		quest.Requirements = append(quest.Requirements, types.QuestRequirement{
			Kind:       getString(reqTbl, "kind"),
			Value:      getInt(reqTbl, "value"),
			Comparison: getString(reqTbl, "comparison"),
		})
	}
	return quest
}

func compileRules(tbl *lua.LTable) scoring.Rules {
	rules := scoring.Rules{
		Contemplative: stringSlice(getTable(tbl, "contemplative")),
		Violent:       stringSlice(getTable(tbl, "violent")),
		Compassion:    stringSlice(getTable(tbl, "compassion")),
		Truthfulness:  stringSlice(getTable(tbl, "truthfulness")),
		Courage:       stringSlice(getTable(tbl, "courage")),
	}

	for _, ruleTbl := range tables(getTable(tbl, "actions")) {
		rules.Action = append(rules.Action, scoring.KarmaRule{
			Name:     getString(ruleTbl, "name"),
			Keywords: stringSlice(getTable(ruleTbl, "keywords")),
			Base:     getInt(ruleTbl, "base"),
		})
	}
	for _, ruleTbl := range tables(getTable(tbl, "contexts")) {
		rules.Context = append(rules.Context, scoring.ContextRule{
			Name:       getString(ruleTbl, "name"),
			Keywords:   stringSlice(getTable(ruleTbl, "keywords")),
			Multiplier: getNumber(ruleTbl, "multiplier"),
		})
	}
	return rules
}

// sortedLuaFiles returns .lua files with world.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var worldFile string
	var others []string
	for _, f := range files {
		if f == "world.lua" {
			worldFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if worldFile != "" {
		return append([]string{worldFile}, others...)
	}
	return others
}
