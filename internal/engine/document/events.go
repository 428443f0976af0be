package document

import "github.com/dshills/blockdoc/internal/event"

// Topics published by a Store.
const (
	// TopicChange carries a ChangeEvent after every Replace, empty
	// edits included.
	TopicChange event.Topic = "document.change"

	// TopicLoad carries a LoadEvent after every Load.
	TopicLoad event.Topic = "document.load"
)

// ChangeEvent announces a committed edit.
type ChangeEvent struct {
	Name   string
	Change *Change
}

// EventTopic implements event.TopicProvider.
func (e ChangeEvent) EventTopic() event.Topic { return TopicChange }

// LoadEvent announces a wholesale document load.
type LoadEvent struct {
	Name   string
	Length int
	Blocks int
}

// EventTopic implements event.TopicProvider.
func (e LoadEvent) EventTopic() event.Topic { return TopicLoad }
