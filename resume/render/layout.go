package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"resume-platform/resume/model"
)

// ErrRenderFailure reports resume data that cannot be laid out or written as a document.
var ErrRenderFailure = errors.New("render failure")

// BlockKind identifies how a block is drawn.
type BlockKind string

const (
	KindTitle       BlockKind = "title"
	KindContact     BlockKind = "contact"
	KindHeading     BlockKind = "heading"
	KindEntryHeader BlockKind = "entry_header"
	KindMeta        BlockKind = "meta"
	KindParagraph   BlockKind = "paragraph"
	KindSpacer      BlockKind = "spacer"
)

const (
	HeadingSummary    = "Professional Summary"
	HeadingExperience = "Professional Experience"
	HeadingEducation  = "Education"
	HeadingSkills     = "Skills"

	defaultTitle = "Resume"
	presentLabel = "Present"
	fieldSep     = " | "
	dateSep      = " – "
)

// Block is one laid-out unit of the document. Emphasis, when set, is drawn bold before Text.
type Block struct {
	Kind     BlockKind
	Emphasis string
	Text     string
	Height   float64
}

// String returns the visible text of the block.
func (b Block) String() string {
	return b.Emphasis + b.Text
}

// Layout turns a resume into the ordered list of blocks to draw.
// Sections whose source data is empty are omitted. Structured fields that
// could not be decoded from storage make the resume unrenderable.
func Layout(resume model.Resume) ([]Block, error) {
	if len(resume.Undecoded) > 0 {
		fields := make([]string, 0, len(resume.Undecoded))
		for field := range resume.Undecoded {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return nil, fmt.Errorf("%w: undecodable fields %s", ErrRenderFailure, strings.Join(fields, ", "))
	}

	var blocks []Block
	add := func(kind BlockKind, text string) {
		blocks = append(blocks, Block{Kind: kind, Text: text})
	}
	space := func(h float64) {
		blocks = append(blocks, Block{Kind: KindSpacer, Height: h})
	}

	personal := resume.PersonalDetails
	title := personal.Get(model.DetailFullName)
	if title == "" {
		title = defaultTitle
	}
	add(KindTitle, title)

	if contact := contactLine(personal); contact != "" {
		add(KindContact, contact)
		space(20)
	}

	if summary := resume.SummaryText(); summary != "" {
		add(KindHeading, HeadingSummary)
		add(KindParagraph, summary)
		space(15)
	}

	if len(resume.Experience) > 0 {
		add(KindHeading, HeadingExperience)
		for _, exp := range resume.Experience {
			blocks = append(blocks, Block{
				Kind:     KindEntryHeader,
				Emphasis: strings.TrimSpace(exp.Position),
				Text:     " at " + strings.TrimSpace(exp.Company),
			})
			var meta []string
			if dates := dateRange(exp.StartDate, exp.EndDate); dates != "" {
				meta = append(meta, dates)
			}
			if loc := model.Deref(exp.Location); loc != "" {
				meta = append(meta, loc)
			}
			if len(meta) > 0 {
				add(KindMeta, strings.Join(meta, fieldSep))
			}
			if desc := strings.TrimSpace(exp.Description); desc != "" {
				add(KindParagraph, desc)
			}
			space(10)
		}
	}

	if len(resume.Education) > 0 {
		add(KindHeading, HeadingEducation)
		for _, edu := range resume.Education {
			blocks = append(blocks, Block{
				Kind:     KindEntryHeader,
				Emphasis: strings.TrimSpace(edu.Degree),
				Text:     " in " + strings.TrimSpace(edu.FieldOfStudy),
			})
			var meta []string
			if inst := strings.TrimSpace(edu.Institution); inst != "" {
				meta = append(meta, inst)
			}
			if dates := dateRange(edu.StartDate, edu.EndDate); dates != "" {
				meta = append(meta, dates)
			}
			if len(meta) > 0 {
				add(KindMeta, strings.Join(meta, fieldSep))
			}
			if grade := model.Deref(edu.Grade); grade != "" {
				add(KindParagraph, "Grade: "+grade)
			}
			space(10)
		}
	}

	if skills := nonEmpty(resume.Skills); len(skills) > 0 {
		add(KindHeading, HeadingSkills)
		add(KindParagraph, strings.Join(skills, ", "))
	}

	return blocks, nil
}

func contactLine(personal model.PersonalDetails) string {
	var parts []string
	if v := personal.Get(model.DetailEmail); v != "" {
		parts = append(parts, "Email: "+v)
	}
	if v := personal.Get(model.DetailPhone); v != "" {
		parts = append(parts, "Phone: "+v)
	}
	if v := personal.Get(model.DetailLocation); v != "" {
		parts = append(parts, "Location: "+v)
	}
	return strings.Join(parts, fieldSep)
}

// dateRange is empty without a start date; a missing end date reads "Present".
func dateRange(start string, end *string) string {
	start = strings.TrimSpace(start)
	if start == "" {
		return ""
	}
	to := model.Deref(end)
	if to == "" {
		to = presentLabel
	}
	return start + dateSep + to
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
