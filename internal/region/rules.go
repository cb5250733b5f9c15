package region

import "regexp"

// Currency and measurement patterns shared across regions.
var (
	dollarAmount = regexp.MustCompile(`\$([0-9]+)`)
	usdAmount    = regexp.MustCompile(`USD\s*([0-9]+)`)
	milesAmount  = regexp.MustCompile(`([0-9]+)\s*miles`)
	feetAmount   = regexp.MustCompile(`([0-9]+)\s*feet`)
)

// ruleSets is the static per-region rule table. Read-only at runtime.
var ruleSets = map[string]RuleSet{
	"tamilnadu": {
		places: placeRules([][2]string{
			{"Delhi", "Chennai"},
			{"Mumbai", "Chennai"},
			{"Kolkata", "Chennai"},
			{"Bangalore", "Coimbatore"},
		}),
		currency: []ConversionRule{
			{Pattern: dollarAmount, Multiplier: 80, Format: "₹%s"},
			{Pattern: usdAmount, Multiplier: 80, Format: "₹%s"},
		},
		measurements: []ConversionRule{
			{Pattern: milesAmount, Multiplier: 1.6, Format: "%s kilometers"},
			{Pattern: feetAmount, Multiplier: 0.3, Format: "%s meters"},
		},
	},
	"kerala": {
		places: placeRules([][2]string{
			{"Mumbai", "Kochi"},
			{"Delhi", "Thiruvananthapuram"},
			{"Chennai", "Kochi"},
		}),
		currency: []ConversionRule{
			{Pattern: dollarAmount, Multiplier: 79, Format: "₹%s"},
		},
	},
	"maharashtra": {
		places: placeRules([][2]string{
			{"Delhi", "Mumbai"},
			{"Chennai", "Pune"},
			{"Bangalore", "Pune"},
		}),
		currency: []ConversionRule{
			{Pattern: dollarAmount, Multiplier: 80, Format: "₹%s"},
		},
	},
	"karnataka": {
		places: placeRules([][2]string{
			{"Delhi", "Bangalore"},
			{"Mumbai", "Mysore"},
			{"Chennai", "Mangalore"},
		}),
		currency: []ConversionRule{
			{Pattern: dollarAmount, Multiplier: 80, Format: "₹%s"},
		},
	},
	"west_bengal": {
		places: placeRules([][2]string{
			{"Delhi", "Kolkata"},
			{"Mumbai", "Kolkata"},
		}),
		currency: []ConversionRule{
			{Pattern: dollarAmount, Multiplier: 80, Format: "₹%s"},
		},
	},
}

var regionNames = []string{"tamilnadu", "kerala", "maharashtra", "karnataka", "west_bengal"}
