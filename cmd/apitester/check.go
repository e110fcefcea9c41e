package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/natsuyasai/api-tester-sub003/pkg/notify"
	"github.com/natsuyasai/api-tester-sub003/pkg/request"
)

var checkCmd = &cobra.Command{
	Use:   "check <request-file>...",
	Short: "Validate request definitions and report problems",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	manager := notify.NewManager()

	// The subscriber keeps the latest snapshot; findings are printed once all
	// files have been checked. Auto-close timers fire on their own goroutine,
	// so the snapshot is mutex-guarded.
	var (
		mu     sync.Mutex
		latest []notify.Notification
	)
	unsubscribe := manager.Subscribe(func(list []notify.Notification) {
		mu.Lock()
		latest = list
		mu.Unlock()
	})
	defer unsubscribe()

	for _, arg := range args {
		checkFile(manager, arg)
	}

	mu.Lock()
	defer mu.Unlock()

	// The list is newest first; print in the order the findings occurred.
	problems := 0
	for i := len(latest) - 1; i >= 0; i-- {
		n := latest[i]
		fmt.Println(renderNotification(n))
		if n.Type == notify.TypeError {
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}

func checkFile(manager *notify.Manager, arg string) {
	req, err := loadRequestFile(arg)
	if err != nil {
		manager.Add(notify.TypeError, arg, notify.UserMessage(err), errorOptions())
		return
	}

	errs := request.Validate(req)
	if len(errs) == 0 {
		manager.Add(notify.TypeSuccess, arg, "OK", &notify.Options{
			AutoClose: autoCloseFor(notify.TypeSuccess),
		})
		return
	}
	for _, err := range errs {
		manager.Add(notify.TypeError, arg, notify.UserMessage(err), errorOptions())
	}
}

func errorOptions() *notify.Options {
	return &notify.Options{AutoClose: autoCloseFor(notify.TypeError)}
}
