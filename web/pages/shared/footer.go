package shared

import "github.com/rohanthewiz/element"

// Footer is stateless; it only renders the copyright line
type Footer struct{}

func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "site-footer").R(
		b.P().T("Copyright &copy; 2025 mealbox"),
	)
	return nil
}
