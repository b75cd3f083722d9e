package content

// PlaceholderText is shown for projects without a video.
const PlaceholderText = "Project video coming soon."

// Preview is an open project preview.
type Preview struct {
	Key   string
	Title string
	// Video is the video path, empty when the project has none.
	Video string
}

// Text returns the line shown for the preview.
func (p Preview) Text() string {
	if p.Video == "" {
		return p.Title + ": " + PlaceholderText
	}
	return p.Title + ": " + p.Video
}

// Session tracks the video lookup and the currently open preview.
type Session struct {
	videos  map[string]string
	current *Preview
}

// NewSession builds the video lookup from projects. Projects without a key
// or a video are skipped.
func NewSession(projects []Project) *Session {
	s := &Session{videos: make(map[string]string)}
	for _, p := range projects {
		key := p.Key()
		if key != "" && p.Video != "" {
			s.videos[key] = p.Video
		}
	}
	return s
}

// Video returns the video for key.
func (s *Session) Video(key string) (string, bool) {
	v, ok := s.videos[key]
	return v, ok
}

// Open opens the preview for key, replacing any open preview.
func (s *Session) Open(key, title string) Preview {
	p := Preview{Key: key, Title: title, Video: s.videos[key]}
	s.current = &p
	return p
}

// Close closes the open preview. It reports whether one was open.
func (s *Session) Close() bool {
	open := s.current != nil
	s.current = nil
	return open
}

// Current returns the open preview.
func (s *Session) Current() (Preview, bool) {
	if s.current == nil {
		return Preview{}, false
	}
	return *s.current, true
}
