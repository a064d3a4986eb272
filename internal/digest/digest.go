// Package digest groups the balanced article list into ordered
// sections and builds the table of contents handed to the renderer.
package digest

import (
	"time"

	"github.com/deusflow/newsdigest/internal/article"
)

// SectionOrder is the fixed priority order sections appear in.
var SectionOrder = []article.Section{
	article.SectionUSNews,
	article.SectionPolitics,
	article.SectionWorldNews,
	article.SectionBusiness,
	article.SectionTechnology,
	article.SectionLocal,
	article.SectionPersonalized,
	article.SectionLeftLeaning,
	article.SectionCenter,
	article.SectionRightLeaning,
}

var sectionTitles = map[article.Section]string{
	article.SectionUSNews:       "U.S. News",
	article.SectionPolitics:     "Politics",
	article.SectionWorldNews:    "World News",
	article.SectionBusiness:     "Business",
	article.SectionTechnology:   "Technology",
	article.SectionLocal:        "Local News",
	article.SectionPersonalized: "For You",
	article.SectionLeftLeaning:  "From the Left",
	article.SectionCenter:       "From the Center",
	article.SectionRightLeaning: "From the Right",
}

var sectionEmojis = map[article.Section]string{
	article.SectionUSNews:       "🇺🇸",
	article.SectionPolitics:     "🏛️",
	article.SectionWorldNews:    "🌍",
	article.SectionBusiness:     "💼",
	article.SectionTechnology:   "💻",
	article.SectionLocal:        "🏙️",
	article.SectionPersonalized: "⭐",
	article.SectionLeftLeaning:  "🔵",
	article.SectionCenter:       "⚪",
	article.SectionRightLeaning: "🔴",
}

// SectionGroup is one non-empty digest section with its articles in
// balancer order.
type SectionGroup struct {
	Section  article.Section
	Title    string
	Emoji    string
	Articles []article.Article
}

// TOCEntry summarizes one included section.
type TOCEntry struct {
	Section article.Section
	Title   string
	Emoji   string
	Count   int
}

// Digest is the structured result handed to the renderer.
type Digest struct {
	GeneratedAt time.Time
	Sections    []SectionGroup
	TOC         []TOCEntry
	Total       int
}

// Assemble groups articles by section in priority order, keeping at
// most perSection articles per section (0 means unlimited). Empty
// sections are omitted.
func Assemble(articles []article.Article, perSection int) Digest {
	bySection := make(map[article.Section][]article.Article)
	for _, a := range articles {
		bySection[a.Section] = append(bySection[a.Section], a)
	}

	d := Digest{GeneratedAt: time.Now()}
	for _, s := range SectionOrder {
		group := bySection[s]
		if len(group) == 0 {
			continue
		}
		if perSection > 0 && len(group) > perSection {
			group = group[:perSection]
		}
		d.Sections = append(d.Sections, SectionGroup{
			Section:  s,
			Title:    sectionTitles[s],
			Emoji:    sectionEmojis[s],
			Articles: group,
		})
		d.TOC = append(d.TOC, TOCEntry{
			Section: s,
			Title:   sectionTitles[s],
			Emoji:   sectionEmojis[s],
			Count:   len(group),
		})
		d.Total += len(group)
	}
	return d
}
