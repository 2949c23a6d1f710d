package calc

import "strings"

var glyphs = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"π", "PI",
)

// Normalize replaces the glyphs a calculator display uses for
// multiplication, division, minus, and pi with the ASCII forms the tokenizer
// accepts. Other text is unchanged.
func Normalize(raw string) string {
	return glyphs.Replace(raw)
}
