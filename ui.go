// imagedate: interactive mode
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

// printBanner prints a colored banner for imagedate
func printBanner() {
	banner := `
  _                                 _       _
 (_)_ __ ___   __ _  __ _  ___  __| | __ _| |_ ___
 | | '_ ' _ \ / _' |/ _' |/ _ \/ _' |/ _' | __/ _ \
 | | | | | | | (_| | (_| |  __/ (_| | (_| | ||  __/
 |_|_| |_| |_|\__,_|\__, |\___|\__,_|\__,_|\__\___|
                    |___/
`
	color.New(color.FgBlack, color.Bold).Println(banner)
}

// validatePath accepts any existing file or directory
func validatePath(input string) error {
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("not a file or directory")
	}
	return nil
}

// interactivePrompt asks for the file or directory to resolve
func interactivePrompt() (string, error) {
	printBanner()

	color.New(color.FgWhite).Println("   I'll find the best known creation date of your images:")
	color.New(color.FgGreen).Println("   • EXIF capture date first")
	color.New(color.FgBlue).Println("   • Filesystem times when the image has no usable EXIF date")
	color.New(color.FgYellow).Println("   • 2031-05-11 when there is no evidence at all")
	fmt.Println()

	prompt := promptui.Prompt{
		Label:    "Image file or directory",
		Validate: validatePath,
	}
	path, err := prompt.Run()
	if err == promptui.ErrInterrupt {
		color.New(color.FgRed, color.Bold).Println("\nInterrupted during prompt. Exiting cleanly.")
		os.Exit(130)
	} else if err != nil {
		return "", fmt.Errorf("path prompt failed: %w", err)
	}
	return path, nil
}
