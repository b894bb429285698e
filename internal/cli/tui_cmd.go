package cli

import (
	"errors"
	"sync/atomic"

	tui "timetracker/internal"
	"timetracker/internal/timer"
	"timetracker/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

func runTUI(app *App) error {
	if !app.IsInteractive() {
		return errors.New("the interactive tracker needs a terminal; see 'timetracker --help'")
	}

	var program atomic.Pointer[tea.Program]
	ticker := timer.New(
		timer.WithInterval(app.Config.Tick),
		timer.WithOnTick(func(string) {
			if p := program.Load(); p != nil {
				p.Send(tui.MsgTick{})
			}
		}),
	)

	toasts := &tui.ToastBoard{}
	logged := tracker.LogNotifier{Logger: app.Logger}
	notify := tracker.NotifierFunc(func(title, message string, variant tracker.Variant) {
		toasts.Notify(title, message, variant)
		logged.Notify(title, message, variant)
	})
	tr := tracker.New(tracker.Deps{
		Backend:  app.Backend,
		Notifier: notify,
		Ticker:   ticker,
		Logger:   app.Logger,
	})
	defer tr.Close()

	p := tea.NewProgram(tui.NewModel(tr, toasts), tea.WithAltScreen())
	program.Store(p)

	_, err := p.Run()
	return err
}
