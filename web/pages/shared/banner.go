package shared

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Banner is the page header with the site title
type Banner struct {
	Title    string
	Subtitle string
}

func (bn Banner) Render(b *element.Builder) any {
	b.Header("class", "banner").R(
		b.H1Class("banner__title").R(
			b.A("href", "/").T(html.EscapeString(bn.Title)),
		),
		b.Wrap(func() {
			if bn.Subtitle != "" {
				b.PClass("banner__subtitle").T(html.EscapeString(bn.Subtitle))
			}
		}),
	)
	return nil
}
