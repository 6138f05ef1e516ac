package parser

import "io"

// Parser defines a generic interface for parsing a list of items out of an HTML page
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// SingleResultParser defines a generic interface for parsing one value out of an HTML page
type SingleResultParser[T any] interface {
	ParseHtml(body io.Reader) (T, error)
}
