package rss

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the static description of one upstream provider.
type Definition struct {
	ID       string
	Name     string
	Domestic bool
	Language string
	Default  string // category used for unknown keys
	Limit    int    // entries kept per fetch
	Feeds    map[string]string
}

func Naver() Definition {
	const base = "https://news.naver.com/officelist/rss.nhn?type=ranking&office=001"
	return Definition{
		ID:       "naver",
		Name:     "네이버 뉴스",
		Domestic: true,
		Language: "ko",
		Default:  "top",
		Limit:    15,
		Feeds: map[string]string{
			"top":      base,
			"politics": base + "&section=100",
			"economy":  base + "&section=101",
			"society":  base + "&section=102",
			"world":    base + "&section=104",
			"it":       base + "&section=105",
		},
	}
}

func Daum() Definition {
	return Definition{
		ID:       "daum",
		Name:     "다음 뉴스",
		Domestic: true,
		Language: "ko",
		Default:  "top",
		Limit:    15,
		Feeds: map[string]string{
			"top":      "https://news.daum.net/rss/newsview",
			"politics": "https://news.daum.net/rss/politics",
			"economic": "https://news.daum.net/rss/economic",
			"society":  "https://news.daum.net/rss/society",
			"world":    "https://news.daum.net/rss/foreign",
			"culture":  "https://news.daum.net/rss/culture",
			"digital":  "https://news.daum.net/rss/digital",
		},
	}
}

func BBC() Definition {
	return Definition{
		ID:       "bbc",
		Name:     "BBC News",
		Language: "en",
		Default:  "world",
		Limit:    10,
		Feeds: map[string]string{
			"world":      "http://feeds.bbci.co.uk/news/world/rss.xml",
			"business":   "http://feeds.bbci.co.uk/news/business/rss.xml",
			"politics":   "http://feeds.bbci.co.uk/news/politics/rss.xml",
			"technology": "http://feeds.bbci.co.uk/news/technology/rss.xml",
			"top":        "http://feeds.bbci.co.uk/news/rss.xml",
		},
	}
}

func NYT() Definition {
	const base = "https://rss.nytimes.com/services/xml/rss/nyt/"
	return Definition{
		ID:       "nyt",
		Name:     "New York Times",
		Language: "en",
		Default:  "world",
		Limit:    10,
		Feeds: map[string]string{
			"world":      base + "World.xml",
			"business":   base + "Business.xml",
			"politics":   base + "Politics.xml",
			"technology": base + "Technology.xml",
			"top":        base + "HomePage.xml",
		},
	}
}

// Builtin returns the default providers in aggregation order.
func Builtin() []Definition {
	return []Definition{Naver(), Daum(), BBC(), NYT()}
}

// SourcesConfig is YAML config structure
// sources:
//   - id: bbc
//     limit: 5
//     feeds:
//       world: https://...
type SourcesConfig struct {
	Sources []SourceOverride `yaml:"sources"`
}

// SourceOverride replaces parts of a built-in definition.
type SourceOverride struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Limit    int               `yaml:"limit"`
	Disabled bool              `yaml:"disabled"`
	Feeds    map[string]string `yaml:"feeds"`
}

// LoadSources reads overrides from a YAML file. A missing or empty file is
// not an error and yields no overrides.
func LoadSources(path string) ([]SourceOverride, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i, o := range cfg.Sources {
		if o.ID == "" {
			return nil, fmt.Errorf("decode %s: sources[%d] has no id", path, i)
		}
	}
	return cfg.Sources, nil
}

// Apply merges overrides into defs, keeping defs order. Disabled sources
// are dropped; overrides for unknown ids are ignored.
func Apply(defs []Definition, overrides []SourceOverride) []Definition {
	byID := make(map[string]SourceOverride, len(overrides))
	for _, o := range overrides {
		byID[o.ID] = o
	}

	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		o, ok := byID[d.ID]
		if !ok {
			out = append(out, d)
			continue
		}
		if o.Disabled {
			continue
		}
		if o.Name != "" {
			d.Name = o.Name
		}
		if o.Limit > 0 {
			d.Limit = o.Limit
		}
		if len(o.Feeds) > 0 {
			feeds := make(map[string]string, len(d.Feeds)+len(o.Feeds))
			for k, v := range d.Feeds {
				feeds[k] = v
			}
			for k, v := range o.Feeds {
				feeds[k] = v
			}
			d.Feeds = feeds
		}
		out = append(out, d)
	}
	return out
}
