package render

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/encoding/charmap"

	"resume-platform/internal/shared/metrics"
	"resume-platform/internal/shared/telemetry"
	"resume-platform/resume/model"
)

const (
	fontFamily         = "Helvetica"
	marginSide         = 72.0
	marginTop          = 36.0
	marginBottom       = 72.0
	headingSpaceBefore = 20.0
)

// Renderer writes resumes as Letter-sized PDF documents.
type Renderer struct {
	policy *bluemonday.Policy
	now    func() time.Time
}

// NewRenderer returns a renderer that strips markup from every text field.
func NewRenderer() *Renderer {
	return &Renderer{policy: bluemonday.StrictPolicy(), now: time.Now}
}

// Render lays out and writes resume. Any failure, including a panic inside the
// PDF writer, is reported as ErrRenderFailure.
func (r *Renderer) Render(resume model.Resume) (out []byte, err error) {
	start := time.Now()
	metrics.IncPDFRender()
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrRenderFailure, rec)
		}
		metrics.ObservePDFRenderDurationMs(metrics.SinceMillis(start))
		if err != nil {
			metrics.IncPDFRenderFailed()
		}
	}()

	blocks, err := Layout(resume)
	if err != nil {
		return nil, err
	}
	return r.write(blocks)
}

func (r *Renderer) write(blocks []Block) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(marginSide, marginTop, marginSide)
	doc.SetAutoPageBreak(true, marginBottom)
	doc.SetCreator("resume-platform", false)
	doc.SetCreationDate(r.now().UTC())
	// Core fonts are cp1252; runes outside it are replaced by the translator.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	replaced := 0
	text := func(s string) string {
		s = r.clean(s)
		replaced += unencodable(s)
		return tr(s)
	}

	for _, b := range blocks {
		if b.Kind == KindTitle {
			doc.SetTitle(tr(r.clean(b.Text)), false)
			break
		}
	}
	doc.AddPage()

	for _, b := range blocks {
		style := StyleMap[b.Kind]
		switch b.Kind {
		case KindSpacer:
			doc.Ln(b.Height)
		case KindHeading:
			doc.Ln(headingSpaceBefore)
			applyStyle(doc, style, style.Bold)
			doc.SetDrawColor(style.Color[0], style.Color[1], style.Color[2])
			doc.CellFormat(0, style.LineHeight, text(b.Text), "B", 1, style.Align, false, 0, "")
			doc.Ln(style.SpaceAfter)
		case KindEntryHeader:
			if b.Emphasis != "" {
				applyStyle(doc, style, true)
				doc.Write(style.LineHeight, text(b.Emphasis))
			}
			applyStyle(doc, style, false)
			doc.Write(style.LineHeight, text(b.Text))
			doc.Ln(style.LineHeight)
		default:
			applyStyle(doc, style, style.Bold)
			doc.MultiCell(0, style.LineHeight, text(b.Text), "", style.Align, false)
			if style.SpaceAfter > 0 {
				doc.Ln(style.SpaceAfter)
			}
		}
		if doc.Err() {
			break
		}
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	if replaced > 0 {
		telemetry.Warn("render.lossy_text", map[string]any{"replaced_runes": replaced})
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return buf.Bytes(), nil
}

// clean strips markup and collapses the entities the sanitizer leaves behind.
func (r *Renderer) clean(s string) string {
	return html.UnescapeString(r.policy.Sanitize(s))
}

// unencodable counts the runes of s that have no cp1252 encoding.
func unencodable(s string) int {
	n := 0
	for _, c := range s {
		if _, ok := charmap.Windows1252.EncodeRune(c); !ok {
			n++
		}
	}
	return n
}

func applyStyle(doc *fpdf.Fpdf, style TextStyle, bold bool) {
	fontStyle := ""
	if bold {
		fontStyle = "B"
	}
	doc.SetFont(fontFamily, fontStyle, style.Size)
	doc.SetTextColor(style.Color[0], style.Color[1], style.Color[2])
}
