package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// adbInstallCmd maps GOOS to the command that installs platform-tools.
var adbInstallCmd = map[string]string{
	"darwin":  "brew install android-platform-tools",
	"linux":   "sudo apt install android-tools-adb",
	"windows": "winget install Google.PlatformTools",
}

// checkDeps verifies the adb binary is reachable, offering to install
// it when it is not.
func checkDeps() error {
	if _, err := exec.LookPath("adb"); err == nil {
		return nil
	}

	fmt.Println("adbpick needs the Android Debug Bridge (adb), which is not installed.")

	install, ok := adbInstallCmd[runtime.GOOS]
	if !ok {
		return fmt.Errorf("adb is required: install Android platform-tools manually")
	}

	fmt.Printf("Install it with: %s\n", install)
	fmt.Print("Run now? [Y/n] ")
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "" && answer != "y" && answer != "yes" {
		return fmt.Errorf("adb is required but not installed")
	}

	parts := strings.Fields(install)
	run := exec.Command(parts[0], parts[1:]...)
	run.Stdout = os.Stdout
	run.Stderr = os.Stderr
	run.Stdin = os.Stdin
	if err := run.Run(); err != nil {
		return fmt.Errorf("install adb: %w", err)
	}

	if _, err := exec.LookPath("adb"); err != nil {
		return fmt.Errorf("adb is required but still not on PATH")
	}
	fmt.Println("adb installed successfully.")
	return nil
}
