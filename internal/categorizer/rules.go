package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/spend-insights/internal/models"
)

// CategoryRule maps a category to the merchant keywords that select it.
// Keywords are lower-case substrings of the normalized merchant.
type CategoryRule struct {
	Category models.Category
	Keywords []string
}

// RuleTable is evaluated top to bottom and the first rule with a matching
// keyword wins. Precedence is category declaration order, never keyword
// length, so DefaultRuleTable declares dining ahead of transportation to
// send "uber eats" to dining while "uber" alone stays transportation.
type RuleTable []CategoryRule

// Match returns the first rule whose keywords contain a substring of
// merchant, which must already be normalized and lower-cased.
func (rt RuleTable) Match(merchant string) (models.Category, string, bool) {
	if merchant == "" {
		return "", "", false
	}
	for _, rule := range rt {
		for _, kw := range rule.Keywords {
			if strings.Contains(merchant, kw) {
				return rule.Category, kw, true
			}
		}
	}
	return "", "", false
}

// Configs converts the table to its YAML representation.
func (rt RuleTable) Configs() []models.CategoryConfig {
	out := make([]models.CategoryConfig, 0, len(rt))
	for _, r := range rt {
		kws := make([]string, len(r.Keywords))
		copy(kws, r.Keywords)
		out = append(out, models.CategoryConfig{Name: r.Category.String(), Keywords: kws})
	}
	return out
}

// RuleTableFromConfigs builds a table from YAML entries, keeping order.
func RuleTableFromConfigs(configs []models.CategoryConfig) (RuleTable, error) {
	rt := make(RuleTable, 0, len(configs))
	for _, c := range configs {
		cat, err := models.ParseCategory(c.Name)
		if err != nil {
			return nil, err
		}
		if cat == models.CategoryOther {
			return nil, fmt.Errorf("category %q cannot be assigned by a rule", cat)
		}
		kws := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		rt = append(rt, CategoryRule{Category: cat, Keywords: kws})
	}
	return rt, nil
}

// DefaultRuleTable returns a fresh copy of the built-in merchant table.
func DefaultRuleTable() RuleTable {
	rt := make(RuleTable, len(defaultRules))
	for i, r := range defaultRules {
		kws := make([]string, len(r.Keywords))
		copy(kws, r.Keywords)
		rt[i] = CategoryRule{Category: r.Category, Keywords: kws}
	}
	return rt
}

var defaultRules = RuleTable{
	{
		Category: models.CategoryGroceries,
		Keywords: []string{
			"whole foods", "trader joe", "safeway", "kroger", "publix", "wegmans", "aldi", "costco",
			"walmart", "target", "sprouts", "fresh market", "food lion", "giant", "stop & shop",
			"albertsons", "vons", "ralphs", "fred meyer", "qfc", "harris teeter", "hy-vee",
			"meijer", "winco", "grocery", "market", "erewhon", "gelson",
		},
	},
	{
		Category: models.CategoryDining,
		Keywords: []string{
			"restaurant", "cafe", "coffee", "starbucks", "dunkin", "chipotle", "panera", "subway",
			"mcdonald", "burger king", "wendy", "taco bell", "kfc", "pizza", "domino", "papa john",
			"doordash", "uber eats", "grubhub", "postmates", "seamless", "caviar", "dine", "bistro",
			"grill", "bar", "pub", "kitchen", "eatery", "food", "sweetgreen", "cava", "shake shack",
			"five guys", "in-n-out", "chick-fil-a", "panda express", "olive garden", "applebee",
			"chili", "outback", "red lobster", "cheesecake factory", "nobu", "catch", "tao",
			"blue bottle", "peet", "caribou", "dutch bros",
		},
	},
	{
		Category: models.CategoryTransportation,
		Keywords: []string{
			"uber", "lyft", "taxi", "cab", "transit", "metro", "subway", "bus", "train", "parking",
			"gas", "shell", "chevron", "exxon", "bp", "mobil", "arco", "valero", "76", "citgo",
			"speedway", "wawa", "sheetz", "getaround", "zipcar", "turo", "lime", "bird", "spin",
		},
	},
	{
		Category: models.CategoryShopping,
		Keywords: []string{
			"amazon", "ebay", "etsy", "shop", "store", "retail", "mall", "nordstrom", "macy",
			"bloomingdale", "saks", "neiman marcus", "dillard", "jcpenney", "kohl", "tj maxx",
			"marshalls", "ross", "burlington", "h&m", "zara", "uniqlo", "gap", "old navy",
			"banana republic", "urban outfitters", "anthropologie", "free people", "lululemon",
			"nike", "adidas", "foot locker", "dick sporting", "rei", "best buy", "apple store",
			"microsoft store", "gamestop", "sephora", "ulta", "cvs", "walgreens", "rite aid",
			"revolve", "asos", "shein", "fashion nova", "pretty little thing",
		},
	},
	{
		Category: models.CategoryEntertainment,
		Keywords: []string{
			"theater", "cinema", "movie", "amc", "regal", "cinemark", "spotify", "apple music",
			"youtube", "twitch", "concert", "ticketmaster", "stubhub", "eventbrite", "live nation",
			"bowling", "arcade", "golf", "gym", "fitness", "planet fitness", "la fitness", "24 hour",
			"equinox", "crunch", "anytime fitness", "orange theory", "crossfit", "soulcycle",
			"peloton", "classpass",
		},
	},
	{
		Category: models.CategorySubscriptions,
		Keywords: []string{
			"netflix", "hulu", "disney+", "hbo", "amazon prime", "paramount", "peacock", "apple tv",
			"spotify premium", "youtube premium", "adobe", "microsoft 365", "icloud", "dropbox",
			"google one", "patreon", "onlyfans", "substack", "medium", "new york times", "wsj",
			"washington post", "audible", "kindle unlimited", "scribd",
		},
	},
	{
		Category: models.CategoryUtilities,
		Keywords: []string{
			"electric", "gas company", "water", "internet", "comcast", "xfinity", "verizon", "at&t",
			"t-mobile", "sprint", "spectrum", "cox", "frontier", "centurylink", "optimum", "rcn",
			"phone bill", "utility", "pge", "con edison", "duke energy", "southern company",
		},
	},
	{
		Category: models.CategoryHealthcare,
		Keywords: []string{
			"pharmacy", "doctor", "hospital", "clinic", "medical", "dental", "dentist", "vision",
			"optometry", "urgent care", "kaiser", "cvs pharmacy", "walgreens pharmacy", "rite aid pharmacy",
			"health", "therapy", "counseling", "psychiatry", "psychology",
		},
	},
	{
		Category: models.CategoryInsurance,
		Keywords: []string{
			"insurance", "geico", "state farm", "allstate", "progressive", "liberty mutual",
			"farmers insurance", "usaa", "nationwide", "travelers",
		},
	},
}
