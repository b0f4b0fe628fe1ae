// Package notify sends the end-of-run desktop notification.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/getupkeep/upkeep-cli/config"
	"github.com/getupkeep/upkeep-cli/report"
)

// Notifier delivers a desktop notification.
type Notifier interface {
	Send(title, body string) error
}

func NewDesktop() Notifier {
	return desktopNotifier{}
}

type desktopNotifier struct{}

func (desktopNotifier) Send(title, body string) error {
	return beeep.Notify(title, body, "")
}

// ShouldNotify reports whether the settings ask for a notification given
// how the run went. success_only suppresses it when any step failed.
func ShouldNotify(settings config.NotificationSettings, sum report.Summary) bool {
	if !settings.Enabled {
		return false
	}
	if settings.SuccessOnly && sum.Failed > 0 {
		return false
	}
	return true
}

func Title(sum report.Summary) string {
	if sum.Failed > 0 {
		return "upkeep: maintenance finished with failures"
	}
	return "upkeep: maintenance complete"
}

func Body(settings config.NotificationSettings, sum report.Summary) string {
	if settings.IncludeStats {
		return sum.String()
	}
	if sum.Failed > 0 {
		return "Some maintenance steps failed; check the log for details."
	}
	return "Your system has been updated and cleaned successfully."
}

// Deliver sends the notification when the settings call for one.
func Deliver(n Notifier, settings config.NotificationSettings, sum report.Summary) error {
	if !ShouldNotify(settings, sum) {
		return nil
	}
	return n.Send(Title(sum), Body(settings, sum))
}
