package tview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Command is an abstract presenter command decoded from a key.
type Command int

const (
	CommandNone Command = iota
	CommandNext
	CommandPrevious
	CommandJumpForward
	CommandJumpBackward
	CommandReset
	CommandFadeToBlack
	CommandAskGoto
	CommandEditNote
	CommandHistoryBack
	CommandHistoryForward
	CommandToggleIgnore
)

// DecodeKey maps a key event to a command.
func DecodeKey(event *tcell.EventKey) Command {
	key := event.Key()

	// alt+Left / alt+Right history navigation.
	if event.Modifiers()&tcell.ModAlt != 0 {
		switch key {
		case tcell.KeyLeft:
			return CommandHistoryBack
		case tcell.KeyRight:
			return CommandHistoryForward
		}
	}

	switch key {
	case tcell.KeyRight, tcell.KeyPgDn, tcell.KeyEnter:
		return CommandNext
	case tcell.KeyLeft, tcell.KeyPgUp, tcell.KeyBackspace, tcell.KeyBackspace2:
		return CommandPrevious
	case tcell.KeyDown:
		return CommandJumpForward
	case tcell.KeyUp:
		return CommandJumpBackward
	case tcell.KeyHome:
		return CommandReset
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ', 'n':
			return CommandNext
		case 'p':
			return CommandPrevious
		case 'b', '.':
			return CommandFadeToBlack
		case 'g':
			return CommandAskGoto
		case 'e':
			return CommandEditNote
		case 'i':
			return CommandToggleIgnore
		}
	}
	return CommandNone
}

// Execute runs a command against the controller. It returns false for
// CommandNone. While input is ignored every command but the toggle is
// swallowed.
func (v *SlideView) Execute(cmd Command) bool {
	if cmd == CommandNone {
		return false
	}
	if cmd == CommandToggleIgnore {
		v.SetIgnoreInput(!v.ignoreInput)
		return true
	}
	if v.ignoreInput {
		return true
	}

	switch cmd {
	case CommandNext:
		v.ctrl.NextPage()
	case CommandPrevious:
		v.ctrl.PreviousPage()
	case CommandJumpForward:
		v.ctrl.JumpForward(0)
	case CommandJumpBackward:
		v.ctrl.JumpBackward(0)
	case CommandReset:
		v.ctrl.Reset()
	case CommandFadeToBlack:
		v.ctrl.FadeToBlack()
	case CommandAskGoto:
		v.ctrl.AskGotoPage()
	case CommandEditNote:
		v.ctrl.EditNote()
	case CommandHistoryBack:
		v.ctrl.GoBack()
	case CommandHistoryForward:
		v.ctrl.GoForward()
	}
	return true
}

// InputHandler returns the input handler for this component. Keys that do
// not decode to a command fall through to the TextView (scrolling).
func (v *SlideView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	base := v.TextView.InputHandler()
	return v.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if v.Execute(DecodeKey(event)) {
			return
		}
		if !v.ignoreInput {
			base(event, setFocus)
		}
	})
}
