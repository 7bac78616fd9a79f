package common

// TimestampLayout is the text format used for event start/end times in
// serialized records and in console input.
const TimestampLayout = "2006-01-02T15:04"

// Default event colors.
const (
	DefaultBgColor  = "#e1e1e1"
	DefaultTxtColor = "#000000"
)

// Color is a named swatch offered to callers that render color pickers.
type Color struct {
	Hex  string
	Name string
}

// BgColors lists the background colors offered for events.
var BgColors = []Color{
	{"#dc2127", "Alizarin Crimson"},
	{"#51b749", "Apple"},
	{"#5484ed", "Cornflower Blue"},
	{"#fbd75b", "Dandelion"},
	{"#ffb878", "Mac n Cheese"},
	{"#dbadff", "Mauve"},
	{"#a4bdfc", "Melrose"},
	{"#e1e1e1", "Mercury"},
	{"#7ae7bf", "Riptide"},
	{"#46d6db", "Turquoise"},
	{"#ff887c", "Vivid Tangerine"},
}

// TxtColors lists the text colors offered for events.
var TxtColors = []Color{
	{"#ffffff", "White"},
	{"#808080", "Gray"},
	{"#000000", "Black"},
}
