package syncer_test

import (
	"testing"

	"cloyt/syncer"

	. "github.com/onsi/gomega"
)

func TestParseEntryDescription(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should split issue id and free text", func(t *testing.T) {
		issueID, freeText, err := syncer.ParseEntryDescription("ABC-42 fix the login form")
		Expect(err).To(BeNil())
		Expect(issueID).To(Equal("ABC-42"))
		Expect(freeText).To(Equal("fix the login form"))
	})

	t.Run("should accept an issue id without free text", func(t *testing.T) {
		issueID, freeText, err := syncer.ParseEntryDescription("ABC-42")
		Expect(err).To(BeNil())
		Expect(issueID).To(Equal("ABC-42"))
		Expect(freeText).To(BeEmpty())
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		issueID, freeText, err := syncer.ParseEntryDescription("   ABC-42   review pull request  \n")
		Expect(err).To(BeNil())
		Expect(issueID).To(Equal("ABC-42"))
		Expect(freeText).To(Equal("review pull request"))
	})

	t.Run("should keep free text after the first line", func(t *testing.T) {
		issueID, freeText, err := syncer.ParseEntryDescription("ABC-42 first line")
		Expect(err).To(BeNil())
		Expect(issueID).To(Equal("ABC-42"))
		Expect(freeText).To(Equal("first line"))
	})

	t.Run("should accept project codes containing hyphens", func(t *testing.T) {
		issueID, freeText, err := syncer.ParseEntryDescription("SUB-PROJ-7 tuning")
		Expect(err).To(BeNil())
		Expect(issueID).To(Equal("SUB-PROJ-7"))
		Expect(freeText).To(Equal("tuning"))
	})

	t.Run("should reject descriptions without an issue id", func(t *testing.T) {
		_, _, err := syncer.ParseEntryDescription("no ticket here")
		Expect(err).To(Equal(syncer.ErrIssueNotMatched))

		_, _, err = syncer.ParseEntryDescription("")
		Expect(err).To(Equal(syncer.ErrIssueNotMatched))

		_, _, err = syncer.ParseEntryDescription("ABC-x nope")
		Expect(err).To(Equal(syncer.ErrIssueNotMatched))
	})
}

func TestIssueProjectShortName(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should return the part before the last hyphen", func(t *testing.T) {
		Expect(syncer.IssueProjectShortName("ABC-42")).To(Equal("ABC"))
		Expect(syncer.IssueProjectShortName("SUB-PROJ-7")).To(Equal("SUB-PROJ"))
	})

	t.Run("should return the input when no hyphen exists", func(t *testing.T) {
		Expect(syncer.IssueProjectShortName("ABC")).To(Equal("ABC"))
	})
}
