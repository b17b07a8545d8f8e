package store

import "github.com/sanat/karmaverse/types"

// yugaOrder is the strict cycle of world ages.
var yugaOrder = []types.Yuga{
	types.YugaSatya, types.YugaTreta, types.YugaDvapara, types.YugaKali,
}

// NextYuga returns the age that follows the given one in the cycle.
// Kali wraps back to Satya.
func NextYuga(yuga types.Yuga) types.Yuga {
	for i, y := range yugaOrder {
		if y == yuga {
			return yugaOrder[(i+1)%len(yugaOrder)]
		}
	}
	return types.YugaSatya
}

// builtinProfiles is the default environment lookup table, one fixed
// profile per age. Content may override it via YugaProfile blocks.
func builtinProfiles() map[types.Yuga]types.YugaProfile {
	return map[types.Yuga]types.YugaProfile{
		types.YugaSatya: {
			Name:        "Satya Yuga",
			Description: "The age of truth and perfection. Humans are honest, vigorous, and virtuous; the earth yields its riches on its own.",
			Environment: types.EnvironmentState{
				Harmony: 90, Prosperity: 85, Spirituality: 95, Conflict: 5,
				Colors: types.EnvironmentColors{
					Sky: "#87CEEB", Earth: "#8FBC8F", Water: "#4682B4", Vegetation: "#228B22",
				},
			},
		},
		types.YugaTreta: {
			Name:        "Treta Yuga",
			Description: "Virtue diminishes slightly. Agriculture and labor become necessary; emperors rise to defend dharma.",
			Environment: types.EnvironmentState{
				Harmony: 70, Prosperity: 75, Spirituality: 80, Conflict: 20,
				Colors: types.EnvironmentColors{
					Sky: "#B0C4DE", Earth: "#9ACD32", Water: "#5F9EA0", Vegetation: "#32CD32",
				},
			},
		},
		types.YugaDvapara: {
			Name:        "Dvapara Yuga",
			Description: "Virtue is reduced by half. Greed and dishonesty taint the people; knowledge becomes divided and conflicts arise.",
			Environment: types.EnvironmentState{
				Harmony: 50, Prosperity: 65, Spirituality: 60, Conflict: 40,
				Colors: types.EnvironmentColors{
					Sky: "#D3D3D3", Earth: "#BDB76B", Water: "#708090", Vegetation: "#6B8E23",
				},
			},
		},
		types.YugaKali: {
			Name:        "Kali Yuga",
			Description: "The age of darkness and ignorance. Lifespans shorten and the environment deteriorates, yet liberation is most accessible.",
			Environment: types.EnvironmentState{
				Harmony: 20, Prosperity: 40, Spirituality: 30, Conflict: 80,
				Colors: types.EnvironmentColors{
					Sky: "#696969", Earth: "#A0522D", Water: "#2F4F4F", Vegetation: "#556B2F",
				},
			},
		},
	}
}
