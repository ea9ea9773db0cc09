// Package editor holds the document/tab model. File dialogs and disk access
// are injected so the session can be driven without a terminal.
package editor

// Filter narrows what a save dialog offers, e.g. {"Text file", ["txt"]}.
type Filter struct {
	Name       string
	Extensions []string
}

// TextFilter is suggested by SaveAs.
var TextFilter = Filter{Name: "Text file", Extensions: []string{"txt"}}

// FilePicker asks the user for a path. ok=false means the user cancelled.
type FilePicker interface {
	PickOpen() (path string, ok bool)
	PickSave(filter Filter) (path string, ok bool)
}

// Filesystem reads and writes whole files as text.
type Filesystem interface {
	ReadText(path string) (string, error)
	WriteText(path, text string) error
}

const appTitle = "Notepad"

// Session is the editor state: open documents in tab order, the active
// tab, and the theme flag. It is owned by a single goroutine.
type Session struct {
	Picker FilePicker
	FS     Filesystem

	DarkMode bool

	docs   []*Document
	active int
}

// NewSession returns a session holding one empty untitled document.
func NewSession(picker FilePicker, fs Filesystem) *Session {
	s := &Session{Picker: picker, FS: fs}
	s.NewTab()
	return s
}

func (s *Session) Len() int { return len(s.docs) }

// Index returns the active tab index. It is meaningless when Len() == 0.
func (s *Session) Index() int { return s.active }

// Documents returns the open documents in tab order. The slice is a copy;
// the documents are shared.
func (s *Session) Documents() []*Document {
	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Active returns the active document, or nil when every tab is closed.
func (s *Session) Active() *Document {
	if len(s.docs) == 0 {
		return nil
	}
	return s.docs[s.active]
}

func (s *Session) AnyModified() bool {
	for _, d := range s.docs {
		if d.Modified() {
			return true
		}
	}
	return false
}

// Title is "Notepad", or "Notepad - <path>" when the active document has a path.
func (s *Session) Title() string {
	d := s.Active()
	if d == nil || d.Untitled() {
		return appTitle
	}
	return appTitle + " - " + d.Path
}

func (s *Session) ToggleTheme() { s.DarkMode = !s.DarkMode }

// NewTab appends an empty untitled document and activates it.
func (s *Session) NewTab() {
	s.docs = append(s.docs, &Document{})
	s.active = len(s.docs) - 1
}

// CloseTab removes the document at i. Closing a tab before the active one,
// or the active one when it is not the first, moves the selection left by
// one; otherwise the index stays and is clamped to the new length.
func (s *Session) CloseTab(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)

	if i < s.active || (i == s.active && i != 0) {
		s.active--
	}
	if s.active >= len(s.docs) {
		s.active = len(s.docs) - 1
	}
	if s.active < 0 {
		s.active = 0
	}
	return nil
}

func (s *Session) ActivateTab(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.active = i
	return nil
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.docs) {
		return tabIndexError{index: i, len: len(s.docs)}
	}
	return nil
}

// OpenFile asks the picker for a file and opens it in a new tab.
// Cancelling is a no-op.
func (s *Session) OpenFile() error {
	path, ok := s.Picker.PickOpen()
	if !ok || path == "" {
		return nil
	}
	return s.OpenPath(path)
}

// OpenPath reads path into a new, active document. Existing documents are
// never touched, even when one already holds the same path.
func (s *Session) OpenPath(path string) error {
	text, err := s.FS.ReadText(path)
	if err != nil {
		return &IOError{Op: "read", Path: path, Err: err}
	}
	d := &Document{Path: path, Text: text, LineEnding: DetectLineEnding(text)}
	d.markSaved()
	s.docs = append(s.docs, d)
	s.active = len(s.docs) - 1
	return nil
}

// SaveActive writes the active document to its path, or falls back to
// SaveAs for untitled documents.
func (s *Session) SaveActive() error {
	d := s.Active()
	if d == nil {
		return ErrNoDocument
	}
	if d.Untitled() {
		return s.SaveAs()
	}
	return s.write(d, d.Path)
}

// SaveAs asks for a destination, writes the active document there and
// adopts the path. Cancelling is a no-op.
func (s *Session) SaveAs() error {
	d := s.Active()
	if d == nil {
		return ErrNoDocument
	}
	path, ok := s.Picker.PickSave(TextFilter)
	if !ok || path == "" {
		return nil
	}
	if err := s.write(d, path); err != nil {
		return err
	}
	d.Path = path
	return nil
}

func (s *Session) write(d *Document, path string) error {
	if err := s.FS.WriteText(path, d.Text); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	d.markSaved()
	return nil
}
