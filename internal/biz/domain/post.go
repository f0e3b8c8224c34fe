package domain

import "time"

// Topic is a generated blog topic idea
type Topic struct {
	Text string
}

// Brief is a content brief for a topic
type Brief struct {
	Topic string
	Body  string
}

// Post is a blog post ready for publishing
type Post struct {
	Title   string
	Content string
	Tags    []string
}

// PublishResult records where a post landed after publishing
type PublishResult struct {
	ID       string
	URL      string
	Platform string
}

// FeedItem is a published blog post read from the RSS feed
type FeedItem struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
}

// Teaser is a social media snippet for a published post
type Teaser struct {
	Text      string
	ProfileID string
	At        time.Time
}

// TopicReport is a dated batch of generated topics
type TopicReport struct {
	ID          string
	GeneratedAt time.Time
	Topics      []Topic
}
