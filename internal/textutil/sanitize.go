package textutil

import "strings"

// dirNameReplacer replaces characters that are unsafe in a folder name or
// that Obsidian rejects in note paths.
var dirNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"#", "",
	"^", "",
	"[", "",
	"]", "",
)

// SanitizeDirName turns user input into a single safe directory name.
// Path separators and colons become dashes, other unsafe characters are
// dropped, whitespace runs collapse to one space, and leading dots are
// trimmed so the folder is never hidden. The result may be empty.
func SanitizeDirName(name string) string {
	name = dirNameReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return strings.TrimLeft(name, ".")
}
