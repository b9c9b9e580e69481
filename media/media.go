package media

// SourceImage is the file the user selected: the raw bytes together with the
// name and media type they arrived with. Pixel dimensions are unknown until
// the preparer decodes the content. A new selection replaces the value
// wholesale, nothing is mutated in place.
type SourceImage struct {
	Name    string
	Mime    string
	Content []byte
}

func (s *SourceImage) Size() int {
	return len(s.Content)
}

// PreparedImage is the upload payload: either the untouched source bytes
// (pass-through) or a downscaled PNG re-encode. Resized tells the two apart.
type PreparedImage struct {
	Name    string
	Mime    string
	Content []byte
	Width   int
	Height  int
	Resized bool
}

func (p *PreparedImage) Size() int {
	return len(p.Content)
}

// LongestSide - max(width, height) in pixels
func (p *PreparedImage) LongestSide() int {
	if p.Width > p.Height {
		return p.Width
	}

	return p.Height
}
