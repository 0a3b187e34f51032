// Package extract turns PDF documents into plain text, page by page.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrDocumentUnreadable matches every error returned when the input is not a
// parseable PDF.
var ErrDocumentUnreadable = errors.New("document unreadable")

// DocumentUnreadableError carries the parser's reason for rejecting a document.
type DocumentUnreadableError struct {
	Reason error
}

func (e *DocumentUnreadableError) Error() string {
	if e.Reason == nil {
		return ErrDocumentUnreadable.Error()
	}
	return e.Reason.Error()
}

func (e *DocumentUnreadableError) Unwrap() error { return e.Reason }

func (e *DocumentUnreadableError) Is(target error) bool { return target == ErrDocumentUnreadable }

func unreadable(reason error) error {
	return &DocumentUnreadableError{Reason: reason}
}

// PDFBytes extracts the text of an in-memory PDF.
func PDFBytes(data []byte) (string, error) {
	return PDF(bytes.NewReader(data), int64(len(data)))
}

// PDF extracts the text of every page, joined by newlines in page order and
// trimmed. Pages without text contribute an empty line. A document that parses
// but holds no text yields "" and a nil error.
func PDF(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = unreadable(fmt.Errorf("malformed pdf: %v", p))
		}
	}()

	if size <= 0 {
		return "", unreadable(errors.New("empty document"))
	}
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", unreadable(err)
	}

	pages, err := pageLeaves(reader, size)
	if err != nil {
		return "", unreadable(err)
	}
	var parts []string
	for _, page := range pages {
		parts = append(parts, pageText(page))
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// pageLeaves walks the page tree in document order and returns its /Page
// leaves. The declared /Count is only sanity checked; the walk is bounded by
// the document size and fails on a /Pages node that is its own descendant.
func pageLeaves(reader *pdf.Reader, size int64) ([]pdf.Page, error) {
	root := reader.Trailer().Key("Root").Key("Pages")
	if root.Key("Type").Name() != "Pages" {
		return nil, nil
	}
	if count := root.Key("Count").Int64(); count < 0 || count > size {
		return nil, fmt.Errorf("page count %d out of range", count)
	}

	// Every reference in a /Kids array takes at least four bytes of input.
	budget := size/4 + 1
	seen := make(map[string]struct{})
	var leaves []pdf.Page
	stack := []pdf.Value{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if budget--; budget < 0 {
			return nil, errors.New("page tree exceeds document size")
		}
		switch node.Key("Type").Name() {
		case "Page":
			leaves = append(leaves, pdf.Page{V: node})
		case "Pages":
			kids := node.Key("Kids")
			if kids.Len() == 0 {
				continue
			}
			// A node's serialized dict fixes its whole subtree, so meeting
			// it again means the tree loops.
			key := node.String()
			if _, ok := seen[key]; ok {
				return nil, errors.New("page tree contains a cycle")
			}
			seen[key] = struct{}{}
			for i := kids.Len() - 1; i >= 0; i-- {
				stack = append(stack, kids.Index(i))
			}
		}
	}
	return leaves, nil
}

func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	if page.V.IsNull() {
		return ""
	}
	t, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return t
}
