package wallpaper

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
)

// Set makes the image at path the desktop background of the current session.
func Set(ctx context.Context, path string, logger zerolog.Logger) error {
	logger.Info().Str("path", path).Msg("setting desktop background")

	switch runtime.GOOS {
	case "linux":
		return run(ctx, "gsettings", "set", "org.gnome.desktop.background",
			"picture-uri", "file://"+path)
	case "darwin":
		script := fmt.Sprintf(`tell application "Finder" to set desktop picture to POSIX file %q`, path)
		return run(ctx, "osascript", "-e", script)
	case "windows":
		// Mirrors SystemParametersInfo(SPI_SETDESKWALLPAPER): point the
		// registry at the file, then ask the shell to reread its parameters.
		if err := run(ctx, "reg", "add", `HKCU\Control Panel\Desktop`,
			"/v", "Wallpaper", "/t", "REG_SZ", "/d", path, "/f"); err != nil {
			return err
		}
		return run(ctx, "rundll32.exe", "user32.dll,UpdatePerUserSystemParameters")
	default:
		return fmt.Errorf("setting the desktop background is not supported on %s", runtime.GOOS)
	}
}

func run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, out)
	}
	return nil
}
