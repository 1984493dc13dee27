package render

// TextStyle captures the font settings used for one kind of block.
type TextStyle struct {
	Bold       bool
	Size       float64
	Color      [3]int
	Align      string
	LineHeight float64
	SpaceAfter float64
}

var (
	darkBlue = [3]int{0, 0, 139}
	black    = [3]int{0, 0, 0}
)

const (
	TitleSize   = 24
	HeadingSize = 14
	BodySize    = 10
)

// StyleMap centralizes the formatting for every block kind.
var StyleMap = map[BlockKind]TextStyle{
	KindTitle: {
		Bold:       true,
		Size:       TitleSize,
		Color:      darkBlue,
		Align:      "C",
		LineHeight: 29,
		SpaceAfter: 30,
	},
	KindContact: {
		Size:       BodySize,
		Color:      black,
		Align:      "L",
		LineHeight: 12,
	},
	KindHeading: {
		Bold:       true,
		Size:       HeadingSize,
		Color:      darkBlue,
		Align:      "L",
		LineHeight: 20,
		SpaceAfter: 10,
	},
	KindEntryHeader: {
		Size:       BodySize,
		Color:      black,
		Align:      "L",
		LineHeight: 12,
	},
	KindMeta: {
		Size:       BodySize,
		Color:      black,
		Align:      "L",
		LineHeight: 12,
	},
	KindParagraph: {
		Size:       BodySize,
		Color:      black,
		Align:      "L",
		LineHeight: 12,
	},
}
