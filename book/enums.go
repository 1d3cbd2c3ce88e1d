package book

//go:generate go tool go-enum --marshal --nocomments

// How admonition blocks are transformed for one processing run.
// ENUM(preserve, strip, html)
type RenderMode int

// What to do when a block fails to parse. The zero value keeps going and
// renders the failure inline.
// ENUM(continue, bail)
type OnFailure int
