package step

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/getupkeep/upkeep-cli/config"
)

// Catalog returns the built-in maintenance steps in their canonical order.
// The order is a design constant; skip_steps is the supported way to opt out
// of a step. Cleanup thresholds and cache/log toggles from cfg are baked
// into the returned commands.
func Catalog(cfg *config.Config) []Step {
	cleanup := cfg.Cleanup

	cacheCmds := []string{
		"sudo dscacheutil -flushcache",
		"sudo killall -HUP mDNSResponder",
	}
	if cleanup.ClearBrowserCaches {
		cacheCmds = append(cacheCmds,
			"rm -rf ~/Library/Caches/com.apple.Safari/WebKitCache 2>/dev/null || true",
			"rm -rf ~/Library/Caches/Google/Chrome/Default/Cache 2>/dev/null || true",
			"rm -rf ~/Library/Caches/Firefox/Profiles/*/cache2 2>/dev/null || true",
		)
	}

	// When log clearing is off the step stays in the pipeline and trivially
	// succeeds, so run numbering is stable across configurations.
	var logCmds []string
	if cleanup.ClearSystemLogs {
		logCmds = []string{
			"sudo rm -rf /private/var/log/asl/*.asl 2>/dev/null || true",
			"sudo rm -rf /Library/Logs/DiagnosticReports/* 2>/dev/null || true",
			"sudo rm -rf /var/folders/*/*/*/C/* 2>/dev/null || true",
			"rm -rf ~/Library/Application\\ Support/CrashReporter/* 2>/dev/null || true",
		}
	}

	return []Step{
		builtIn("update-homebrew", "Update Homebrew",
			"brew update",
			"brew upgrade",
			"brew cleanup",
		),
		builtIn("update-homebrew-casks", "Update Homebrew Casks",
			"brew upgrade --cask",
		),
		builtIn("update-app-store-apps", "Update App Store Apps",
			"mas upgrade",
		),
		builtIn("update-npm-packages", "Update Npm Packages",
			"npm update -g",
		),
		builtIn("update-composer-packages", "Update Composer Packages",
			"composer global update",
		),
		builtIn("install-system-updates", "Install System Updates",
			"softwareupdate -ia",
		),
		builtIn("update-rust-tools", "Update Rust Tools",
			"cargo install-update -a",
		),
		builtIn("update-oh-my-zsh", "Update Oh My Zsh",
			ohMyZshUpgradeScript(),
		),
		builtIn("clear-system-caches", "Clear System Caches", cacheCmds...),
		builtIn("cleanup-downloads-folder", "Cleanup Downloads Folder",
			fmt.Sprintf("[ -d ~/Downloads ] && find ~/Downloads -type f -mtime +%d -delete 2>/dev/null || true", daysOld(cleanup.DownloadsDaysOld)),
			fmt.Sprintf("[ -d ~/Desktop ] && find ~/Desktop -name '*.dmg' -mtime +%d -delete 2>/dev/null || true", daysOld(cleanup.DmgFilesDaysOld)),
			fmt.Sprintf("[ -d ~/Desktop ] && find ~/Desktop -name 'Screenshot*' -mtime +%d -delete 2>/dev/null || true", daysOld(cleanup.ScreenshotsDaysOld)),
		),
		builtIn("optimize-disk-space", "Optimize Disk Space",
			"sudo tmutil thinlocalsnapshots / 10000000000 4 2>/dev/null || true",
			"sudo purge",
			"sudo periodic daily weekly monthly",
		),
		builtIn("update-ruby-gems", "Update Ruby Gems",
			"gem update",
			"gem cleanup",
		),
		builtIn("optimize-xcode", "Optimize Xcode",
			"rm -rf ~/Library/Developer/Xcode/DerivedData 2>/dev/null || true",
			"rm -rf ~/Library/Developer/Xcode/Archives 2>/dev/null || true",
			"xcrun simctl delete unavailable",
		),
		builtIn("clear-logs-and-temp-files", "Clear Logs And Temp Files", logCmds...),
		builtIn("rebuild-launch-services", "Rebuild Launch Services",
			"/System/Library/Frameworks/CoreServices.framework/Frameworks/LaunchServices.framework/Support/lsregister -kill -r -domain local -domain system -domain user 2>/dev/null || true",
			"killall Finder 2>/dev/null || true",
		),
		builtIn("optimize-spotlight-index", "Optimize Spotlight Index",
			"sudo mdutil -i off / 2>/dev/null || true",
			"sudo mdutil -E / 2>/dev/null || true",
			"sudo mdutil -i on / 2>/dev/null || true",
		),
	}
}

// ohMyZshUpgradeScript returns the path to oh-my-zsh's upgrade script. The
// path doubles as the command's first token, so the usual tool probing
// skips the step when oh-my-zsh is not installed.
func ohMyZshUpgradeScript() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return filepath.Join(home, ".oh-my-zsh", "tools", "upgrade.sh")
}

func daysOld(n int) int {
	return max(n, 0)
}
