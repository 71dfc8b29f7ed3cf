package decoder

import (
	"fmt"
	"io"
	"strings"

	"github.com/hnimtadd/vtcore/terminal/character"
)

// HTMLDecoder renders cells as an XHTML document: one outer monospace span
// and an inner span per run of identical rendition and colors. Runs of
// consecutive spaces after the first become &#160; so the markup survives
// HTML whitespace collapsing.
type HTMLDecoder struct {
	output io.Writer

	colorTable *character.Palette

	innerSpanOpen bool
	lastRendition character.RenditionFlags
	lastForeColor character.CharacterColor
	lastBackColor character.CharacterColor
}

var _ TerminalCharacterDecoder = (*HTMLDecoder)(nil)

func NewHTMLDecoder(colorTable *character.Palette) *HTMLDecoder {
	return &HTMLDecoder{colorTable: colorTable}
}

// SetColorTable changes the palette used to resolve span colors.
func (d *HTMLDecoder) SetColorTable(colorTable *character.Palette) {
	d.colorTable = colorTable
}

func (d *HTMLDecoder) Begin(w io.Writer) {
	d.output = w
	d.innerSpanOpen = false
	d.lastRendition = character.DefaultRendition
	d.lastForeColor = character.CharacterColor{}
	d.lastBackColor = character.CharacterColor{}

	var text strings.Builder
	text.WriteString("<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0 Strict//EN\"\n")
	text.WriteString("\"http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd\">\n")
	text.WriteString("<html xmlns=\"http://www.w3.org/1999/xhtml\" lang=\"en\" xml:lang=\"en\">\n")
	text.WriteString("<head>\n")
	text.WriteString("<title>Terminal output</title>\n")
	text.WriteString("<meta http-equiv=\"Content-Type\" content=\"text/html;charset=utf-8\" />\n")
	text.WriteString("</head>\n")
	text.WriteString("<body>\n")
	text.WriteString("<div>\n")
	openSpan(&text, "font-family:monospace")

	io.WriteString(d.output, text.String())
}

func (d *HTMLDecoder) End() error {
	var text strings.Builder
	closeSpan(&text)
	text.WriteString("</div>\n")
	text.WriteString("</body>\n")
	text.WriteString("</html>\n")

	_, err := io.WriteString(d.output, text.String())
	d.output = nil
	return err
}

func (d *HTMLDecoder) DecodeLine(cells []character.Character, _ character.LineProperty) error {
	var text strings.Builder

	spaceCount := 0

	for _, cell := range cells {
		// check if the appearance of the character differs from the previous
		if cell.Rendition != d.lastRendition ||
			cell.ForegroundColor != d.lastForeColor ||
			cell.BackgroundColor != d.lastBackColor {
			if d.innerSpanOpen {
				closeSpan(&text)
				d.innerSpanOpen = false
			}

			d.lastRendition = cell.Rendition
			d.lastForeColor = cell.ForegroundColor
			d.lastBackColor = cell.BackgroundColor

			var style strings.Builder
			if d.colorTable != nil {
				if d.lastRendition&character.ReBold != 0 {
					style.WriteString("font-weight:bold;")
				}
				if d.lastRendition&character.ReUnderline != 0 {
					style.WriteString("font-decoration:underline;")
				}
				if fore, ok := d.lastForeColor.Color(d.colorTable); ok {
					fmt.Fprintf(&style, "color:%s;", fore.Hex())
				}
				if back, ok := d.lastBackColor.Color(d.colorTable); ok {
					fmt.Fprintf(&style, "background-color:%s;", back.Hex())
				}
			}

			openSpan(&text, style.String())
			d.innerSpanOpen = true
		}

		if cell.IsSpace() {
			spaceCount++
		} else {
			spaceCount = 0
		}

		if spaceCount < 2 {
			if cell.Rendition&character.ReExtendedChar != 0 {
				if chars, ok := character.Table.LookupExtendedChar(cell.Character); ok {
					for _, c := range chars {
						text.WriteRune(c)
					}
				}
			} else {
				if cell.Character == 0 && !cell.IsRealCharacter {
					continue
				}
				// escape the markup characters, pass everything else through
				switch cell.Character {
				case '<':
					text.WriteString("&lt;")
				case '>':
					text.WriteString("&gt;")
				case '&':
					text.WriteString("&amp;")
				default:
					text.WriteRune(cell.Character)
				}
			}
		} else {
			// HTML collapses multiple spaces, so use a space marker instead.
			// &#160; rather than &nbsp; so xmllint will work.
			text.WriteString("&#160;")
		}
	}

	if d.innerSpanOpen {
		closeSpan(&text)
		d.innerSpanOpen = false
	}

	text.WriteString("<br>")

	_, err := io.WriteString(d.output, text.String())
	return err
}

func openSpan(text *strings.Builder, style string) {
	fmt.Fprintf(text, "<span style=\"%s\">", style)
}

func closeSpan(text *strings.Builder) {
	text.WriteString("</span>")
}
