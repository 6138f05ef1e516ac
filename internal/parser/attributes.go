package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"

	"github.com/Belphemur/GogoResolver/internal/apperrors"
)

// attr reads an attribute of the first node in sel.
func attr(sel *goquery.Selection, name string) mo.Option[string] {
	value, ok := sel.Attr(name)
	return mo.TupleToOption(value, ok)
}

// firstNode returns the first node matching selector or an ErrNotFound naming resource.
func firstNode(doc *goquery.Document, selector, resource string) (*goquery.Selection, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, apperrors.NewNotFoundError(resource, "")
	}
	return sel, nil
}

// requiredAttr reads a non-blank attribute or fails with ErrMalformedOrigin.
func requiredAttr(sel *goquery.Selection, resource, name string) (string, error) {
	value := strings.TrimSpace(attr(sel, name).OrEmpty())
	if value == "" {
		return "", &apperrors.ErrMalformedOrigin{Resource: resource, Attribute: name}
	}
	return value, nil
}

// requiredIntAttr reads an integer attribute or fails with ErrMalformedOrigin.
func requiredIntAttr(sel *goquery.Selection, resource, name string) (int, error) {
	raw, err := requiredAttr(sel, resource, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &apperrors.ErrMalformedOrigin{Resource: resource, Attribute: name, Value: raw}
	}
	return n, nil
}
