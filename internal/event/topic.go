package event

import "strings"

// Topic names an event category as dot-separated segments, such as
// "document.change". Subscription patterns may use "*" for exactly one
// segment and "**" for any run of segments, including none.
type Topic string

const (
	wildcardOne = "*"
	wildcardAny = "**"
)

// String returns the topic text.
func (t Topic) String() string { return string(t) }

// Segments splits the topic at the dots. The empty topic has no
// segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ".")
}

// IsValid reports whether the topic is non-empty with no empty
// segments. Wildcard segments are valid; they make the topic a pattern.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether the topic matches pattern, segment by
// segment.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(topic, pattern []string) bool {
	for {
		if len(pattern) == 0 {
			return len(topic) == 0
		}
		if pattern[0] == wildcardAny {
			// Try every split of the remaining topic against the rest
			// of the pattern.
			for i := 0; i <= len(topic); i++ {
				if match(topic[i:], pattern[1:]) {
					return true
				}
			}
			return false
		}
		if len(topic) == 0 {
			return false
		}
		if pattern[0] != wildcardOne && pattern[0] != topic[0] {
			return false
		}
		topic, pattern = topic[1:], pattern[1:]
	}
}
