package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notepad/internal/editor"
	"notepad/internal/store"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type memFS struct {
	files    map[string]string
	writeErr error
}

func newMemFS() *memFS { return &memFS{files: map[string]string{}} }

func (fs *memFS) ReadText(path string) (string, error) {
	s, ok := fs.files[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return s, nil
}

func (fs *memFS) WriteText(path, text string) error {
	if fs.writeErr != nil {
		return fs.writeErr
	}
	fs.files[path] = text
	return nil
}

func newTestModel(t *testing.T, fs *memFS, files ...string) appModel {
	t.Helper()
	return newAppModel(Options{Theme: "light", FS: fs, Files: files, StartDir: "/work"})
}

func send(t *testing.T, m appModel, msgs ...tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var mm tea.Model
		mm, cmd = m.Update(msg)
		m = mm.(appModel)
	}
	return m, cmd
}

func keyType(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func altRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true} }

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewAppModel_StartsWithOneUntitledTab(t *testing.T) {
	m := newTestModel(t, newMemFS())
	if m.session.Len() != 1 || !m.session.Active().Untitled() {
		t.Fatalf("expected one untitled tab")
	}
	if m.lastTitle != "Notepad" {
		t.Fatalf("title = %q", m.lastTitle)
	}
}

func TestNewAppModel_OpensStartupFiles(t *testing.T) {
	fs := newMemFS()
	fs.files["/work/a.txt"] = "alpha"
	fs.files["/work/b.txt"] = "beta"

	m := newTestModel(t, fs, "/work/a.txt", "/work/missing.txt", "/work/b.txt")
	if m.session.Len() != 2 {
		t.Fatalf("expected 2 tabs, got %d", m.session.Len())
	}
	if m.session.Active().Path != "/work/b.txt" || m.textarea.Value() != "beta" {
		t.Fatalf("expected last file active and loaded, got %q / %q", m.session.Active().Path, m.textarea.Value())
	}
	if !m.minibufferErr || !strings.Contains(m.minibufferText, "missing.txt") {
		t.Fatalf("expected open failure in status line, got %q", m.minibufferText)
	}
	if m.lastTitle != "Notepad - /work/b.txt" {
		t.Fatalf("title = %q", m.lastTitle)
	}
}

func TestUpdate_TypingEditsActiveDocument(t *testing.T) {
	m := newTestModel(t, newMemFS())
	m, _ = send(t, m, runes("h"), runes("i"))
	if got := m.session.Active().Text; got != "hi" {
		t.Fatalf("document text = %q", got)
	}
	if !m.session.Active().Modified() {
		t.Fatalf("expected modified")
	}
}

func TestUpdate_NewCloseAndSwitchTabs(t *testing.T) {
	m := newTestModel(t, newMemFS())
	m, _ = send(t, m, runes("one"), keyType(tea.KeyCtrlN), runes("two"), keyType(tea.KeyCtrlN))
	if m.session.Len() != 3 || m.session.Index() != 2 {
		t.Fatalf("len=%d active=%d", m.session.Len(), m.session.Index())
	}
	if m.textarea.Value() != "" {
		t.Fatalf("new tab should start empty, got %q", m.textarea.Value())
	}

	m, _ = send(t, m, altRune('1'))
	if m.session.Index() != 0 || m.textarea.Value() != "one" {
		t.Fatalf("alt+1: active=%d text=%q", m.session.Index(), m.textarea.Value())
	}

	m, _ = send(t, m, altRune(']'))
	if m.session.Index() != 1 || m.textarea.Value() != "two" {
		t.Fatalf("next tab: active=%d text=%q", m.session.Index(), m.textarea.Value())
	}

	m, _ = send(t, m, keyType(tea.KeyCtrlW))
	if m.session.Len() != 2 || m.session.Index() != 0 || m.textarea.Value() != "one" {
		t.Fatalf("after close: len=%d active=%d text=%q", m.session.Len(), m.session.Index(), m.textarea.Value())
	}

	m, _ = send(t, m, keyType(tea.KeyCtrlW), keyType(tea.KeyCtrlW))
	if m.session.Len() != 0 || m.session.Active() != nil {
		t.Fatalf("expected all tabs closed")
	}
	// Typing with no document is ignored, and the view still renders.
	m, _ = send(t, m, runes("x"))
	if !strings.Contains(m.View(), "No document open") {
		t.Fatalf("expected empty-state view")
	}
}

func TestUpdate_MouseClosesAndActivatesTabs(t *testing.T) {
	m := newTestModel(t, newMemFS())
	m, _ = send(t, m, keyType(tea.KeyCtrlN), keyType(tea.KeyCtrlN))

	labels := labelsFor(m.session.Documents())
	spans := layoutTabs(labels, m.session.Index(), m.width)

	click := func(x int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	m, _ = send(t, m, click(spans[0].x+1))
	if m.session.Index() != 0 {
		t.Fatalf("expected first tab active, got %d", m.session.Index())
	}

	m, _ = send(t, m, click(spans[2].closeX))
	if m.session.Len() != 2 || m.session.Index() != 0 {
		t.Fatalf("after close click: len=%d active=%d", m.session.Len(), m.session.Index())
	}

	// Clicks below the strip are not tab events.
	m, _ = send(t, m, tea.MouseMsg{X: spans[1].x + 1, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.session.Index() != 0 {
		t.Fatalf("click outside strip changed tabs")
	}
}

func TestUpdate_SaveUntitledPromptsAndAdoptsPath(t *testing.T) {
	fs := newMemFS()
	m := newTestModel(t, fs)
	m, _ = send(t, m, runes("body"), keyType(tea.KeyCtrlS))
	if m.modal != modalSaveAs {
		t.Fatalf("expected save-as dialog, got %s", modalToString(m.modal))
	}
	if got := m.saveInput.Value(); got != filepath.Join("/work", "untitled.txt") {
		t.Fatalf("suggested path = %q", got)
	}

	m.saveInput.SetValue("/work/notes")
	m, _ = send(t, m, keyType(tea.KeyEnter))
	if m.modal != modalNone {
		t.Fatalf("dialog should close after save")
	}
	if fs.files["/work/notes.txt"] != "body" {
		t.Fatalf("files = %v", fs.files)
	}
	if m.session.Active().Path != "/work/notes.txt" || m.session.Active().Modified() {
		t.Fatalf("unexpected document: %+v", m.session.Active())
	}
	if m.lastTitle != "Notepad - /work/notes.txt" {
		t.Fatalf("title = %q", m.lastTitle)
	}

	// Plain save now writes in place without a dialog.
	m, _ = send(t, m, runes("!"), keyType(tea.KeyCtrlS))
	if m.modal != modalNone || fs.files["/work/notes.txt"] != "body!" {
		t.Fatalf("in-place save failed: modal=%s files=%v", modalToString(m.modal), fs.files)
	}
}

func TestUpdate_SaveAsCancelLeavesDocument(t *testing.T) {
	fs := newMemFS()
	m := newTestModel(t, fs)
	m, _ = send(t, m, runes("draft"), altRune('s'), keyType(tea.KeyEsc))
	if m.modal != modalNone {
		t.Fatalf("expected dialog closed")
	}
	if len(fs.files) != 0 {
		t.Fatalf("expected no writes, got %v", fs.files)
	}
	if !m.session.Active().Untitled() || m.session.Active().Text != "draft" {
		t.Fatalf("document changed: %+v", m.session.Active())
	}
}

func TestUpdate_SaveFailureIsReportedAndNonFatal(t *testing.T) {
	fs := newMemFS()
	fs.files["/work/a.txt"] = "a"
	m := newTestModel(t, fs, "/work/a.txt")
	m, _ = send(t, m, keyType(tea.KeyCtrlN), runes("other"), altRune('1'), runes("X"))
	fs.writeErr = errors.New("disk full")

	m, cmd := send(t, m, keyType(tea.KeyCtrlS))
	if isQuit(cmd) {
		t.Fatalf("save failure must not quit")
	}
	if !m.minibufferErr || !strings.Contains(m.minibufferText, "disk full") {
		t.Fatalf("expected error in status line, got %q", m.minibufferText)
	}
	docs := m.session.Documents()
	if len(docs) != 2 || docs[0].Text != "aX" || docs[1].Text != "other" {
		t.Fatalf("documents changed after failed save: %q %q", docs[0].Text, docs[1].Text)
	}
}

func TestUpdate_SaveAsFailureKeepsDialogOpen(t *testing.T) {
	fs := newMemFS()
	fs.writeErr = os.ErrPermission
	m := newTestModel(t, fs)
	m, _ = send(t, m, runes("x"), altRune('s'))
	m.saveInput.SetValue("/ro/x.txt")
	m, _ = send(t, m, keyType(tea.KeyEnter))
	if m.modal != modalSaveAs || m.saveErr == "" {
		t.Fatalf("expected dialog to stay open with an error, modal=%s err=%q", modalToString(m.modal), m.saveErr)
	}
	if !m.session.Active().Untitled() {
		t.Fatalf("path adopted despite failure")
	}
}

func TestUpdate_RecentFilesReopen(t *testing.T) {
	fs := newMemFS()
	fs.files["/work/a.txt"] = "alpha"
	recent := &store.Recent{Dir: t.TempDir()}
	m := newAppModel(Options{Theme: "light", FS: fs, Recent: recent, Files: []string{"/work/a.txt"}})

	m, _ = send(t, m, keyType(tea.KeyCtrlR))
	if m.modal != modalRecent {
		t.Fatalf("expected recent dialog, got %s (status %q)", modalToString(m.modal), m.minibufferText)
	}
	m, _ = send(t, m, keyType(tea.KeyEnter))
	if m.modal != modalNone {
		t.Fatalf("expected dialog closed")
	}
	docs := m.session.Documents()
	if len(docs) != 2 || docs[1].Path != "/work/a.txt" || m.session.Index() != 1 {
		t.Fatalf("expected reopen into a new tab, got %d docs active=%d", len(docs), m.session.Index())
	}
}

// settle runs cmd and feeds list filter results back into the model, the
// way the runtime would. Other messages are dropped.
func settle(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(t, m, c)
		}
	case list.FilterMatchesMsg:
		var next tea.Cmd
		m, next = send(t, m, msg)
		m = settle(t, m, next)
	}
	return m
}

func TestUpdate_ForgetRecentUnderFilter(t *testing.T) {
	ctx := context.Background()
	recent := &store.Recent{Dir: t.TempDir()}
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, p := range []string{"/work/alpha.txt", "/work/beta.md", "/work/gamma.md"} {
		if err := recent.Touch(ctx, p, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Touch: %v", err)
		}
	}
	m := newAppModel(Options{Theme: "light", FS: newMemFS(), Recent: recent})

	m, _ = send(t, m, keyType(tea.KeyCtrlR))
	if m.modal != modalRecent || len(m.recentList.Items()) != 3 {
		t.Fatalf("expected recent dialog with 3 rows, got %s (status %q)", modalToString(m.modal), m.minibufferText)
	}
	_ = m.recentList.FilterInput.Cursor.SetMode(cursor.CursorStatic)

	// Newest first, so alpha is the last row unfiltered and the only match.
	var cmd tea.Cmd
	m, _ = send(t, m, runes("/"))
	m, cmd = send(t, m, runes("alpha"))
	m = settle(t, m, cmd)
	m, _ = send(t, m, keyType(tea.KeyEnter))
	if m.recentList.FilterState() != list.FilterApplied {
		t.Fatalf("filter state = %v", m.recentList.FilterState())
	}
	it, ok := m.recentList.SelectedItem().(recentItem)
	if !ok || it.file.Path != "/work/alpha.txt" {
		t.Fatalf("selected %+v", m.recentList.SelectedItem())
	}

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	m = settle(t, m, cmd)

	var rows []string
	for _, it := range m.recentList.Items() {
		rows = append(rows, it.(recentItem).file.Path)
	}
	if strings.Join(rows, ",") != "/work/gamma.md,/work/beta.md" {
		t.Fatalf("dialog rows = %v", rows)
	}
	if n := len(m.recentList.VisibleItems()); n != 0 {
		t.Fatalf("expected no rows left matching the filter, got %d", n)
	}
	files, err := recent.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 2 || files[0].Path != "/work/gamma.md" || files[1].Path != "/work/beta.md" {
		t.Fatalf("history = %+v", files)
	}

	m, _ = send(t, m, keyType(tea.KeyEsc))
	if m.modal != modalRecent || len(m.recentList.VisibleItems()) != 2 {
		t.Fatalf("esc should clear the filter and keep the dialog open")
	}
}

func TestUpdate_QuitAsksWhenModified(t *testing.T) {
	m := newTestModel(t, newMemFS())
	if _, cmd := send(t, m, keyType(tea.KeyCtrlQ)); !isQuit(cmd) {
		t.Fatalf("expected immediate quit with no changes")
	}

	m, _ = send(t, m, runes("x"))
	m, cmd := send(t, m, keyType(tea.KeyCtrlQ))
	if isQuit(cmd) || m.modal != modalConfirmQuit {
		t.Fatalf("expected confirmation, modal=%s", modalToString(m.modal))
	}
	m, cmd = send(t, m, keyType(tea.KeyEnter))
	if isQuit(cmd) || m.modal != modalNone {
		t.Fatalf("enter on default Cancel should close the dialog")
	}
	m, _ = send(t, m, keyType(tea.KeyCtrlQ), keyType(tea.KeyTab))
	if _, cmd = send(t, m, keyType(tea.KeyEnter)); !isQuit(cmd) {
		t.Fatalf("expected quit after confirming")
	}
}

func TestUpdate_ThemeToggle(t *testing.T) {
	m := newTestModel(t, newMemFS())
	if m.session.DarkMode {
		t.Fatalf("expected light theme from options")
	}
	m, _ = send(t, m, keyType(tea.KeyCtrlT))
	if !m.session.DarkMode {
		t.Fatalf("expected dark after toggle")
	}
}

func TestUpdate_StatusTickClearsOldMinibuffer(t *testing.T) {
	m := newTestModel(t, newMemFS())
	(&m).showMinibuffer("Hello")
	m.minibufferSetAt = time.Now().Add(-minibufferAutoClearAfter - 100*time.Millisecond)
	m, _ = send(t, m, statusTickMsg{})
	if m.minibufferText != "" {
		t.Fatalf("expected minibuffer cleared, got %q", m.minibufferText)
	}

	(&m).showMinibuffer("Fresh")
	m, _ = send(t, m, statusTickMsg{})
	if m.minibufferText == "" {
		t.Fatalf("expected recent minibuffer to remain")
	}
}

func TestUpdate_LargeDocumentIsEditable(t *testing.T) {
	fs := newMemFS()
	big := strings.Repeat("line\n", 15000) + "end"
	fs.files["/work/big.log"] = big
	m := newTestModel(t, fs, "/work/big.log")
	if m.readOnly {
		t.Fatalf("large document opened read-only: %q", m.minibufferText)
	}
	m, _ = send(t, m, runes("!"))
	if got := m.session.Active().Text; got != big+"!" {
		t.Fatalf("expected the edit at the end, got tail %q", got[len(got)-8:])
	}
}

func TestUpdate_KeepsLineEndingsAndTabsOnSave(t *testing.T) {
	fs := newMemFS()
	fs.files["/work/Makefile"] = "all:\r\n\tgo build\r\n"
	m := newTestModel(t, fs, "/work/Makefile")
	if m.readOnly {
		t.Fatalf("unexpected read-only: %q", m.minibufferText)
	}

	m, _ = send(t, m, keyType(tea.KeyCtrlHome), runes("x"), keyType(tea.KeyCtrlS))
	if got := fs.files["/work/Makefile"]; got != "xall:\r\n\tgo build\r\n" {
		t.Fatalf("saved %q", got)
	}
	if m.session.Active().Modified() {
		t.Fatalf("expected document to be clean after save")
	}
	if !strings.Contains(m.View(), "→go build") {
		t.Fatalf("expected the tab to be drawn as an arrow")
	}
}

func TestUpdate_TabKeyInsertsTab(t *testing.T) {
	m := newTestModel(t, newMemFS())
	m, _ = send(t, m, runes("a"), keyType(tea.KeyTab), runes("b"))
	if got := m.session.Active().Text; got != "a\tb" {
		t.Fatalf("Text = %q", got)
	}

	// Pasted tabs and CRLF pairs are kept as a tab and a single newline.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\tc\r\nd"), Paste: true})
	if got := m.session.Active().Text; got != "a\tb\tc\nd" {
		t.Fatalf("Text after paste = %q", got)
	}
}

func TestUpdate_UnrepresentableTextOpensReadOnly(t *testing.T) {
	fs := newMemFS()
	raw := "form\ffeed\n"
	fs.files["/work/raw.txt"] = raw
	m := newTestModel(t, fs, "/work/raw.txt")
	if !m.readOnly || !strings.Contains(m.minibufferText, "opened read-only") {
		t.Fatalf("expected read-only with a reason, got readOnly=%v %q", m.readOnly, m.minibufferText)
	}
	m, _ = send(t, m, runes("x"), keyType(tea.KeyTab))
	if m.session.Active().Text != raw {
		t.Fatalf("read-only document was modified")
	}
}

func TestEditableRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		eol     string
		wantErr bool
	}{
		{text: "plain\nlines\n", eol: editor.LF},
		{text: "a\r\n\tb\r\n", eol: editor.CRLF},
		{text: "\t\t", eol: editor.LF},
		{text: "mixed\r\nends\n", eol: editor.LF, wantErr: true},
		{text: "bell\a", eol: editor.LF, wantErr: true},
		{text: "mark\ue000", eol: editor.LF, wantErr: true},
		{text: "bad\ufffd", eol: editor.LF, wantErr: true},
	}
	for _, tt := range tests {
		v, err := toEditable(tt.text, tt.eol)
		if (err != nil) != tt.wantErr {
			t.Fatalf("toEditable(%q) err=%v, wantErr=%v", tt.text, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		if strings.ContainsAny(v, "\t\r") {
			t.Fatalf("toEditable(%q) = %q still holds tabs or CRs", tt.text, v)
		}
		if got := fromEditable(v, tt.eol); got != tt.text {
			t.Fatalf("round trip of %q gave %q", tt.text, got)
		}
	}
}

func TestResolveSavePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "notes", want: "/base/notes.txt"},
		{in: "notes.md", want: "/base/notes.md"},
		{in: "/abs/x.txt", want: "/abs/x.txt"},
		{in: "sub/../y", want: "/base/y.txt"},
		{in: "   ", wantErr: true},
		{in: "dir/", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolveSavePath(tt.in, "/base", editor.TextFilter)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("resolveSavePath(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("resolveSavePath(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestModalPicker_ConsumesQueuedPathOnce(t *testing.T) {
	t.Parallel()

	p := &modalPicker{}
	if _, ok := p.PickOpen(); ok {
		t.Fatalf("expected cancel with nothing queued")
	}
	p.queue("/a.txt")
	if path, ok := p.PickSave(editor.TextFilter); !ok || path != "/a.txt" || p.picked != "/a.txt" {
		t.Fatalf("unexpected pick: %q %v", path, ok)
	}
	if _, ok := p.PickOpen(); ok {
		t.Fatalf("queued path should be consumed")
	}
}
