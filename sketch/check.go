package sketch

import (
	"fmt"
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/reoring/sketchkit/model"
)

// Check verifies that the document page list, the pages, the metadata page
// index and the user state name the same pages. The user state entry of the
// document itself is not a page.
func (f *File) Check() error {
	var problems []string

	docIDs := f.Document.PageIDs()
	doc := map[model.ObjectID]bool{}
	for _, id := range docIDs {
		if doc[id] {
			problems = append(problems, fmt.Sprintf("page %s is listed twice in the document", id))
		}
		doc[id] = true
	}
	if n := len(f.Document.Pages) - len(docIDs); n > 0 {
		problems = append(problems, fmt.Sprintf("%d document page references are not page references", n))
	}

	loaded := map[model.ObjectID]bool{}
	for _, p := range f.pages {
		loaded[p.ID()] = true
	}
	for entry := range f.rejected {
		loaded[pageIDOf(entry)] = true
	}
	meta := map[model.ObjectID]bool{}
	for id := range f.Meta.PagesAndArtboards {
		meta[id] = true
	}
	user := map[model.ObjectID]bool{}
	for id := range f.User {
		if id != f.Document.ID() {
			user[id] = true
		}
	}

	problems = append(problems, compare(doc, "the document", loaded, "the pages")...)
	problems = append(problems, compare(doc, "the document", meta, "the metadata")...)
	problems = append(problems, compare(doc, "the document", user, "the user state")...)
	if len(problems) == 0 {
		return nil
	}
	return errors.Errorf("%w: %s", ErrInconsistent, strings.Join(problems, "; "))
}

// compare lists the identifiers found in only one of a and b.
func compare(a map[model.ObjectID]bool, aName string, b map[model.ObjectID]bool, bName string) []string {
	var out []string
	for _, id := range sortedIDs(a) {
		if !b[id] {
			out = append(out, fmt.Sprintf("page %s is in %s but not in %s", id, aName, bName))
		}
	}
	for _, id := range sortedIDs(b) {
		if !a[id] {
			out = append(out, fmt.Sprintf("page %s is in %s but not in %s", id, bName, aName))
		}
	}
	return out
}

func sortedIDs(m map[model.ObjectID]bool) []model.ObjectID {
	out := make([]model.ObjectID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
