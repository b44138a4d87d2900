package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/stypes"
)

// Style ids from the default godocx template.
const (
	styleHeading    = "Heading2"
	styleListBullet = "ListBullet"
	styleTable      = "LightGrid-Accent1"

	headingSizePt = 14
)

// picture is a header image on disk, sized in inches.
type picture struct {
	path          string
	width, height units.Inch
}

// document is a thin layer over a godocx RootDoc; the circular template
// lives in renderer.go.
type document struct {
	root *docx.RootDoc
}

func newDocument() (*document, error) {
	root, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}
	return &document{root: root}, nil
}

func (d *document) spacer() { d.root.AddEmptyParagraph() }

// text appends a body paragraph. Newlines become line breaks within it.
func (d *document) text(s string) {
	appendLines(d.root.AddEmptyParagraph(), s)
}

func (d *document) heading(title string) {
	p := d.root.AddEmptyParagraph()
	p.Style(styleHeading)
	p.AddText(title).Bold(true).Size(headingSizePt)
}

func (d *document) bullet(s string) {
	p := d.root.AddEmptyParagraph()
	p.Style(styleListBullet)
	appendLines(p, s)
}

// table appends a two-column table with bold labels on the left.
func (d *document) table(rows [][2]string) {
	tbl := d.root.AddTable()
	tbl.Style(styleTable)
	for _, r := range rows {
		row := tbl.AddRow()
		row.AddCell().AddParagraph("").AddText(r[0]).Bold(true)
		row.AddCell().AddParagraph(r[1])
	}
}

// centeredPicture appends the image in its own centered paragraph.
func (d *document) centeredPicture(p *picture) error {
	pic, err := d.root.AddPicture(p.path, p.width, p.height)
	if err != nil {
		return fmt.Errorf("add picture: %w", err)
	}
	pic.Para.Justification(stypes.JustificationCenter)
	return nil
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.root.Write(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func appendLines(p *docx.Paragraph, s string) {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		r := p.AddText(line)
		if i < len(lines)-1 {
			br := stypes.BreakTypeTextWrapping
			r.AddBreak(&br)
		}
	}
}
