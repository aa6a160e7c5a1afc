package game

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/ncruces/zenity"
)

// Prompter shows the native dialogs. Calls block until the user answers, the same way
// the game loop waits on a file picker.
type Prompter interface {
	Confirm(title, message string) bool
	Alert(title, message string)
	// SaveFile asks for a destination. ok is false when the user cancelled.
	SaveFile(title, filename string) (path string, ok bool, err error)
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// Sounds are the interaction cues.
type Sounds interface {
	Click()
	Success()
	Feedback()
	Level() float64
}

type zenityPrompter struct{}

// NewZenityPrompter returns a Prompter backed by native dialogs.
func NewZenityPrompter() Prompter { return zenityPrompter{} }

func (zenityPrompter) Confirm(title, message string) bool {
	err := zenity.Question(message,
		zenity.Title(title),
		zenity.QuestionIcon,
		zenity.OKLabel("Yes"),
		zenity.CancelLabel("No"),
	)
	return err == nil
}

func (zenityPrompter) Alert(title, message string) {
	_ = zenity.Info(message, zenity.Title(title), zenity.InfoIcon)
}

func (zenityPrompter) SaveFile(title, filename string) (string, bool, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title(title),
		zenity.Filename(filename),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "CSV",
			Patterns: []string{"*.csv"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, err
	}
	return path, true, nil
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(string) error

func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// SystemClipboard writes to the OS clipboard.
var SystemClipboard Clipboard = ClipboardFunc(clipboard.WriteAll)
