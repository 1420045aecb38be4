package scorer

import (
	"regexp"
	"strings"
)

var (
	urgencyPattern = regexp.MustCompile(`(?i)limited|now|today|hurry|exclusive|don't miss`)
	benefitPattern = regexp.MustCompile(`(?i)save|free|discount|offer|bonus|reward`)
	emojiPattern   = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)
	numericPattern = regexp.MustCompile(`(?i)\d+%|\d+\s*(off|discount|save)`)
)

// Word-count window that earns the length bonus (exclusive bounds).
const (
	sweetSpotMin = 200
	sweetSpotMax = 400
)

// Signals are the text features the heuristic reacts to.
type Signals struct {
	Urgency      bool `json:"urgency"`
	Benefit      bool `json:"benefit"`
	Emoji        bool `json:"emoji"`
	Numeric      bool `json:"numeric"`
	Exclamations int  `json:"exclamations"`
	WordCount    int  `json:"word_count"`
}

// Detect scans text for scoring signals.
func Detect(text string) Signals {
	return Signals{
		Urgency:      urgencyPattern.MatchString(text),
		Benefit:      benefitPattern.MatchString(text),
		Emoji:        emojiPattern.MatchString(text),
		Numeric:      numericPattern.MatchString(text),
		Exclamations: strings.Count(text, "!"),
		WordCount:    len(strings.Fields(text)),
	}
}

// PunchyPunctuation reports whether the copy uses a few, but not too many,
// exclamation marks.
func (s Signals) PunchyPunctuation() bool {
	return s.Exclamations > 0 && s.Exclamations < 4
}

// SweetSpotLength reports whether the word count sits in the preferred window.
func (s Signals) SweetSpotLength() bool {
	return s.WordCount > sweetSpotMin && s.WordCount < sweetSpotMax
}

// Hits counts how many signals fire.
func (s Signals) Hits() int {
	n := 0
	for _, on := range []bool{s.Urgency, s.Benefit, s.Emoji, s.Numeric, s.PunchyPunctuation(), s.SweetSpotLength()} {
		if on {
			n++
		}
	}
	return n
}
