// Package authors maps the author identifiers used in post frontmatter to
// the name and portrait shown on the post page.
package authors

// UnknownImage is the portrait used for authors missing from the table.
const UnknownImage = "/assets/unknown.png"

// Details is the display record for a post author.
type Details struct {
	Name  string
	Image string
}

// known is read-only after package initialization.
var known = map[string]Details{
	"Симоненко": {
		Name:  "Василь Симоненко",
		Image: "/assets/Symonenko.png",
	},
	"Леся": {
		Name:  "Леся Українка",
		Image: "/assets/Lesya.png",
	},
}

// Resolve returns the display record for author. Unknown identifiers, the
// empty string included, resolve to the identifier itself with UnknownImage.
func Resolve(author string) Details {
	if d, ok := known[author]; ok {
		return d
	}
	return Details{Name: author, Image: UnknownImage}
}

// Known reports whether author has an entry in the table.
func Known(author string) bool {
	_, ok := known[author]
	return ok
}
