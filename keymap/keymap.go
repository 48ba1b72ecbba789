// Package keymap translates physical key codes into HUD display strings.
//
// Codes follow the macOS virtual key-code scheme (kVK_ANSI_*), which is
// what the event tap delivers. Other platforms convert into this scheme
// before calling Translate.
package keymap

// Placeholder is returned for any code without a table entry.
const Placeholder = "?"

// Escape is the display string for the escape key.
const Escape = "Esc"

// entry pairs a key code with its display string.
type entry struct {
	code int64
	name string
}

// table is ordered by display name so Names is stable.
var table = []entry{
	{0, "a"},
	{11, "b"},
	{8, "c"},
	{2, "d"},
	{14, "e"},
	{3, "f"},
	{5, "g"},
	{4, "h"},
	{34, "i"},
	{38, "j"},
	{40, "k"},
	{37, "l"},
	{46, "m"},
	{45, "n"},
	{31, "o"},
	{35, "p"},
	{12, "q"},
	{15, "r"},
	{1, "s"},
	{17, "t"},
	{32, "u"},
	{9, "v"},
	{13, "w"},
	{7, "x"},
	{16, "y"},
	{6, "z"},
	{53, Escape},
}

var (
	byCode = make(map[int64]string, len(table))
	byName = make(map[string]int64, len(table))
)

func init() {
	for _, e := range table {
		byCode[e.code] = e.name
		byName[e.name] = e.code
	}
}

// Translate returns the display string for code, or Placeholder.
// It never returns an empty string.
func Translate(code int64) string {
	if name, ok := byCode[code]; ok {
		return name
	}
	return Placeholder
}

// Code returns the key code for a display string produced by Translate.
func Code(name string) (int64, bool) {
	code, ok := byName[name]
	return code, ok
}

// Names lists every display string in the table: the letters a-z, then Esc.
func Names() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.name
	}
	return names
}
