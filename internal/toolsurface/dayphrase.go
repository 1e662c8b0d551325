package toolsurface

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dayPhraseParser = newDayPhraseParser()

func newDayPhraseParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ResolveDayNumber turns a free-text day reference a Device Collaborator or
// an interactive caller might produce ("day three", "tomorrow", "in 2 days")
// into the 1-7 day number GetMigrationStatus expects, relative to since (normally the migration's started_at). It never
// calls the Tool Surface itself; callers still run the result through the
// same argument validation every other int day number goes through.
func ResolveDayNumber(phrase string, since time.Time) (int, bool) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return 0, false
	}
	if n, ok := ordinalDayWord(phrase); ok {
		return n, true
	}

	r, err := dayPhraseParser.Parse(phrase, since)
	if err != nil || r == nil {
		return 0, false
	}
	days := int(r.Time.Sub(since).Hours()/24) + 1
	if days < 1 || days > 7 {
		return 0, false
	}
	return days, true
}

var dayWords = map[string]int{
	"one": 1, "first": 1, "two": 2, "second": 2, "three": 3, "third": 3,
	"four": 4, "fourth": 4, "five": 5, "fifth": 5, "six": 6, "sixth": 6,
	"seven": 7, "seventh": 7, "last": 7,
}

// ordinalDayWord handles phrasing like "day three" or "day 3" that when's
// date-grammar rules don't model as a relative offset from since.
func ordinalDayWord(phrase string) (int, bool) {
	fields := strings.Fields(strings.ToLower(phrase))
	for i, f := range fields {
		if f != "day" || i+1 >= len(fields) {
			continue
		}
		word := strings.TrimSuffix(fields[i+1], ",")
		if n, ok := dayWords[word]; ok {
			return n, true
		}
		switch word {
		case "1", "2", "3", "4", "5", "6", "7":
			return int(word[0] - '0'), true
		}
	}
	return 0, false
}
