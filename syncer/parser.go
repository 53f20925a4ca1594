package syncer

import (
	"errors"
	"regexp"
	"strings"
)

var ErrIssueNotMatched = errors.New("no issue id matched in description")

// issuePattern captures an issue id like ABC-42: a run of non-whitespace
// characters terminated at the last hyphen-digits group, then free text.
var issuePattern = regexp.MustCompile(`^(\S+-\d+)\s*(.*)`)

// ParseEntryDescription splits a raw time entry description into the issue
// id and the trimmed free text. The free text may be empty.
func ParseEntryDescription(description string) (issueID string, freeText string, err error) {
	match := issuePattern.FindStringSubmatch(strings.TrimSpace(description))
	if match == nil {
		return "", "", ErrIssueNotMatched
	}
	return match[1], strings.TrimSpace(match[2]), nil
}

// IssueProjectShortName returns the project code of an issue id, the part
// before the last hyphen: ABC-42 => ABC.
func IssueProjectShortName(issueID string) string {
	idx := strings.LastIndex(issueID, "-")
	if idx < 0 {
		return issueID
	}
	return issueID[0:idx]
}
