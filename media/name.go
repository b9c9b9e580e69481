package media

import "strings"

func ExtractExtension(filename string) string {
	segments := strings.Split(strings.Trim(filename, " "), ".")
	if len(segments) < 2 {
		return ""
	}

	return strings.ToLower(segments[len(segments)-1])
}

// PNGName derives the output file name: original extension stripped,
// ".png" appended. Names without an extension just gain the suffix.
func PNGName(filename string) string {
	filename = strings.Trim(filename, " ")

	ext := ExtractExtension(filename)
	if ext == "" {
		return filename + ".png"
	}

	return filename[:len(filename)-len(ext)-1] + ".png"
}
