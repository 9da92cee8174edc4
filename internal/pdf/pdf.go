package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

func Open(file string) (*os.File, *pdf.Reader, error) {
	return pdf.Open(file)
}

// NewReader wraps an in-memory document, e.g. an uploaded file.
func NewReader(r io.ReaderAt, size int64) (*pdf.Reader, error) {
	rd, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return rd, nil
}

var AllPages = PageRange{}

type PageRange struct {
	Start int
	End   int
}

// clamp resolves AllPages and keeps the range inside [1, pages].
func (pr PageRange) clamp(pages int) PageRange {
	if pr == AllPages {
		return PageRange{Start: 1, End: pages}
	}
	if pr.Start < 1 {
		pr.Start = 1
	}
	if pr.End > pages || pr.End < 1 {
		pr.End = pages
	}
	return pr
}

// Mode selects how text is pulled out of a page.
type Mode int

const (
	// Stream interprets the raw content stream in drawing order.
	Stream Mode = iota
	// Columns uses the layout analysis of the pdf package.
	Columns
)

// PlainText returns the text of the pages in range, pages joined by a single
// space. A page that yields no text contributes nothing; it is never an error.
func PlainText(r *pdf.Reader, pageRange PageRange, mode Mode) string {
	pr := pageRange.clamp(r.NumPage())
	fonts := make(map[string]*pdf.Font)
	parts := make([]string, 0, pr.End-pr.Start+1)
	for i := pr.Start; i <= pr.End; i++ {
		text, err := pageText(r.Page(i), fonts, mode)
		if err != nil {
			logrus.Debugf("page %d: no text extracted: %v", i, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

func pageText(p pdf.Page, fonts map[string]*pdf.Font, mode Mode) (string, error) {
	if p.V.IsNull() || p.V.Key("Contents").IsNull() {
		return "", nil
	}
	for _, name := range p.Fonts() { // cache fonts so we don't continually parse charmap
		if _, ok := fonts[name]; !ok {
			f := p.Font(name)
			logrus.Debugf("font: %s %s", name, f.BaseFont())
			fonts[name] = &f
		}
	}
	if mode == Columns {
		return GetTextByColumns(p)
	}
	return GetPlainText(p, fonts)
}

func GetTextByColumns(p pdf.Page) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = errors.New(fmt.Sprint(r))
		}
	}()

	cols, err := p.GetTextByColumn()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, col := range cols {
		for _, t := range col.Content {
			sb.WriteString(t.S)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// GetPlainText returns all unformatted text of a pdf page.
// fonts can be passed in (to improve parsing performance) or left nil
func GetPlainText(p pdf.Page, fonts map[string]*pdf.Font) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = errors.New(fmt.Sprint(r))
		}
	}()

	strm := p.V.Key("Contents")
	var enc pdf.TextEncoding = &nopEncoder{}

	var sb strings.Builder
	showText := func(s string) {
		sb.WriteString(enc.Decode(s))
	}

	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		default:
			return
		case "BT", "ET", "Td", "TD", "Tm", "T*": // text positioning separates words
			showText(" ")
		case "Tf": // set text font and size
			if len(args) != 2 {
				panic("bad Tf")
			}
			if font, ok := fonts[args[0].Name()]; ok {
				enc = font.Encoder()
			} else {
				enc = &nopEncoder{}
			}
		case "\"": // set spacing, move to next line, and show text
			if len(args) != 3 {
				logrus.Warnf("bad \" operator")
				return
			}
			showText(" ")
			showText(args[2].RawString())
		case "'":
			if len(args) != 1 {
				logrus.Warnf("bad ' operator")
				return
			}
			showText(" ")
			showText(args[0].RawString())
		case "Tj":
			if len(args) != 1 {
				logrus.Warnf("bad Tj operator")
				return
			}
			showText(args[0].RawString())
		case "TJ": // show text, allowing individual glyph positioning
			v := args[0]
			for i := 0; i < v.Len(); i++ {
				x := v.Index(i)
				if x.Kind() == pdf.String {
					showText(x.RawString())
				}
			}
		}
	})
	return sb.String(), nil
}

type nopEncoder struct {
}

func (e *nopEncoder) Decode(raw string) (text string) {
	return raw
}
