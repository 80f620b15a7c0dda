// Package category reconciles source-local feed categories into the fixed
// set of standard briefing categories.
package category

// Standard is one of the five canonical buckets every article lands in.
type Standard string

const (
	DomesticGeneral      Standard = "domestic_general"
	DomesticEconomy      Standard = "domestic_economy"
	DomesticPolitics     Standard = "domestic_politics"
	WorldGeneral         Standard = "world_general"
	WorldEconomyPolitics Standard = "world_economy_politics"
)

// order is the tie-breaking order for tags that belong to several buckets.
var order = []Standard{
	DomesticGeneral,
	DomesticEconomy,
	DomesticPolitics,
	WorldGeneral,
	WorldEconomyPolitics,
}

// Source-local tags grouped per standard category.
var membership = map[Standard][]string{
	DomesticGeneral:      {"top"},
	DomesticEconomy:      {"economy"},
	DomesticPolitics:     {"politics", "society"},
	WorldGeneral:         {"world"},
	WorldEconomyPolitics: {"business", "politics_world"},
}

type pair struct {
	category string
	tag      string
}

// sourceTags lists, per source, which source categories are aggregated and
// the tag each one carries. Slice order is processing order.
var sourceTags = map[string][]pair{
	"naver": {
		{"top", "top"},
		{"economy", "economy"},
		{"politics", "politics"},
		{"society", "society"},
		{"world", "world"},
	},
	"daum": {
		{"top", "top"},
		{"economic", "economy"},
		{"politics", "politics"},
		{"society", "society"},
		{"world", "world"},
	},
	// Foreign politics is international news, so it gets its own tag and
	// lands next to business instead of in domestic_politics.
	"bbc": {
		{"world", "world"},
		{"business", "business"},
		{"politics", "politics_world"},
	},
	"nyt": {
		{"world", "world"},
		{"business", "business"},
		{"politics", "politics_world"},
	},
}

var labels = map[Standard]string{
	DomesticGeneral:      "국내 종합 뉴스",
	DomesticEconomy:      "국내 경제 뉴스",
	DomesticPolitics:     "국내 정치/시사 뉴스",
	WorldGeneral:         "세계 종합 뉴스",
	WorldEconomyPolitics: "세계 경제/정치/시사 뉴스",
}

var emojis = map[Standard]string{
	DomesticGeneral:      "🇰🇷",
	DomesticEconomy:      "💰",
	DomesticPolitics:     "🏛️",
	WorldGeneral:         "🌍",
	WorldEconomyPolitics: "🌐",
}

// All returns the standard categories in their fixed order.
func All() []Standard {
	out := make([]Standard, len(order))
	copy(out, order)
	return out
}

// MapToStandard resolves a (source, source category) pair. The first
// standard category in All() order whose membership contains the pair's
// tag wins. Unconfigured pairs report false.
func MapToStandard(sourceID, sourceCategory string) (Standard, bool) {
	tag, ok := tagFor(sourceID, sourceCategory)
	if !ok {
		return "", false
	}
	for _, std := range order {
		for _, member := range membership[std] {
			if member == tag {
				return std, true
			}
		}
	}
	return "", false
}

// SourceCategories returns the source categories aggregated for sourceID,
// in processing order.
func SourceCategories(sourceID string) []string {
	pairs := sourceTags[sourceID]
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.category)
	}
	return out
}

func tagFor(sourceID, sourceCategory string) (string, bool) {
	for _, p := range sourceTags[sourceID] {
		if p.category == sourceCategory {
			return p.tag, true
		}
	}
	return "", false
}

// Label is the human-readable Korean name of the category.
func Label(s Standard) string {
	return labels[s]
}

// Emoji returns the category marker used in pages and messages.
func Emoji(s Standard) string {
	if e, ok := emojis[s]; ok {
		return e
	}
	return "📌"
}

// FileName is the page name the category renders to.
func FileName(s Standard) string {
	return string(s) + ".html"
}

// Valid reports whether s is one of the standard categories.
func (s Standard) Valid() bool {
	_, ok := membership[s]
	return ok
}
