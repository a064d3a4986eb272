// Package article defines the record that flows through the digest
// pipeline. Absent optional fields are represented by zero values: an
// empty string means the feed did not provide the field, a zero
// time.Time means the publish date is unknown.
package article

import "time"

// Section is the single primary digest category an article is placed
// into by the categorizer.
type Section string

const (
	SectionUSNews       Section = "US_NEWS"
	SectionPolitics     Section = "POLITICS"
	SectionWorldNews    Section = "WORLD_NEWS"
	SectionBusiness     Section = "BUSINESS"
	SectionTechnology   Section = "TECHNOLOGY"
	SectionLocal        Section = "LOCAL"
	SectionPersonalized Section = "PERSONALIZED"
	SectionLeftLeaning  Section = "LEFT_LEANING"
	SectionCenter       Section = "CENTER"
	SectionRightLeaning Section = "RIGHT_LEANING"
)

// Source describes where an article came from.
type Source struct {
	Name        string
	Category    string  // feed-declared leaning/topic, may be empty
	Reliability float64 // [0,1], 0 means not rated
}

// Article is one news item. The fetch stage creates it, pipeline
// stages annotate it (Section, Tags, Age), the summarizer fills
// Summary, and the renderer consumes it. Dedup and balancing remove
// whole records but never clear individual fields.
type Article struct {
	Title       string
	Description string
	URL         string
	Published   time.Time
	Source      Source
	Content     string   // full body when the scraper succeeded
	Summary     string   // filled by the summarize stage
	Tags        []string // assigned by the categorizer, never empty after it ran
	Section     Section  // assigned by the categorizer
	Age         string   // derived from Published, see AgeOf
}

// Age buckets derived from the publish time.
const (
	AgeBreaking = "Breaking"
	AgeToday    = "Today"
	AgeRecent   = "Recent"
	AgeOlder    = "Older"
	AgeUnknown  = "Unknown"
)

// AgeOf buckets a publish time relative to now. A zero publish time
// yields AgeUnknown.
func AgeOf(published, now time.Time) string {
	if published.IsZero() {
		return AgeUnknown
	}
	switch d := now.Sub(published); {
	case d < 2*time.Hour:
		return AgeBreaking
	case d < 24*time.Hour:
		return AgeToday
	case d < 72*time.Hour:
		return AgeRecent
	default:
		return AgeOlder
	}
}

// HasDate reports whether the article carries a usable publish time.
func (a *Article) HasDate() bool {
	return !a.Published.IsZero()
}
