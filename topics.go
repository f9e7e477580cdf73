package main

import "regexp"

const fallbackTopicTitle = "Practice Quiz"

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

func validSlug(s string) bool {
	return slugPattern.MatchString(s)
}

var defaultTopics = []QuizTopic{
	{Slug: "gdpr", Title: "General Data Protection Regulation (GDPR)", Category: "Data protection"},
	{Slug: "nis2", Title: "NIS2 Directive", Category: "Cybersecurity"},
	{Slug: "dora", Title: "Digital Operational Resilience Act (DORA)", Category: "Financial regulation"},
	{Slug: "ai-act", Title: "EU Artificial Intelligence Act", Category: "Technology regulation"},
}

// TopicCatalog is the static slug -> title mapping used for display.
type TopicCatalog struct {
	topics []QuizTopic
	bySlug map[string]QuizTopic
}

func NewTopicCatalog(topics []QuizTopic) *TopicCatalog {
	if len(topics) == 0 {
		topics = defaultTopics
	}
	c := &TopicCatalog{bySlug: make(map[string]QuizTopic, len(topics))}
	for _, t := range topics {
		if _, dup := c.bySlug[t.Slug]; dup {
			continue
		}
		c.bySlug[t.Slug] = t
		c.topics = append(c.topics, t)
	}
	return c
}

func (c *TopicCatalog) Lookup(slug string) (QuizTopic, bool) {
	t, ok := c.bySlug[slug]
	return t, ok
}

// Title never fails: unknown slugs get the generic label.
func (c *TopicCatalog) Title(slug string) string {
	if t, ok := c.bySlug[slug]; ok && t.Title != "" {
		return t.Title
	}
	return fallbackTopicTitle
}

func (c *TopicCatalog) All() []QuizTopic {
	return append([]QuizTopic(nil), c.topics...)
}

// Merge appends slugs that exist in a store but not in the catalog, titled
// with the fallback label.
func (c *TopicCatalog) Merge(slugs []string) []QuizTopic {
	out := c.All()
	for _, s := range slugs {
		if _, ok := c.bySlug[s]; ok {
			continue
		}
		out = append(out, QuizTopic{Slug: s, Title: c.Title(s)})
	}
	return out
}
