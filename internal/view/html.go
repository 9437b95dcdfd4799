package view

import (
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// classAttr writes a class attribute unless class is empty.
func (h *htmlWriter) classAttr(class string) {
	if class != "" {
		h.attr("class", class)
	}
}

func (h *htmlWriter) jsonAttr(name string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		if h.err == nil {
			h.err = err
		}
		return
	}
	h.attr(name, string(b))
}

// JSString quotes s as a JavaScript string literal. JSON escaping also
// covers the line separators and the "<" of "</script>".
func JSString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// ViewHeader carries the view id on form submissions.
const ViewHeader = "X-Contacts-View"

// postForm returns the datastar expression submitting the enclosing form
// to path on behalf of the current view.
func postForm(path string) string {
	return "@post(" + JSString(path) + ", {contentType: 'form', headers: {'" + ViewHeader + "': $view}})"
}
