package model

// InboxEntry is an unread feed entry that points to a YouTube video.
type InboxEntry struct {
	EntryID   int64
	FeedID    int64
	Title     string
	URL       string
	YoutubeID YoutubeVideoID
}
