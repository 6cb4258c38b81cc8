package comps

import (
	"html"

	"github.com/rohanthewiz/element"
)

type Heading struct {
	Title string
	Note  string // optional line under the title
}

func (h Heading) Render(b *element.Builder) (x any) {
	b.DivClass("page-heading").R(
		b.H2Class("page-heading__title").T(html.EscapeString(h.Title)),
		b.Wrap(func() {
			if h.Note != "" {
				b.PClass("page-heading__note").T(html.EscapeString(h.Note))
			}
		}),
	)
	return
}
