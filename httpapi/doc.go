// Package httpapi exposes a single net/http handler accepting a
// multipart PDF upload, running it through pdfdoc and pdftable per
// page, and rendering an HTML results page.
//
// The results page is built the way the teacher's htmldoc package
// consumes HTML — as a golang.org/x/net/html node tree — except
// here the tree is constructed and rendered with html.Render rather
// than parsed, giving the "drag-and-drop UI" collaborator a genuine
// home for that dependency.
package httpapi
