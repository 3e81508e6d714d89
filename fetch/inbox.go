package fetch

import "ewintr.nl/tubesum/model"

type FeedReader interface {
	Unread() ([]model.InboxEntry, error)
	MarkRead(entryID int64) error
}
