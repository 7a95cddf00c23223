package cli

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// interactive asks which screen to open, then hands off to the TUI.
func interactive() {
	prompt := promptui.Select{
		Label: "Select Action",
		Items: []string{"Settings", "Watch"},
	}

	_, result, err := prompt.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	switch result {
	case "Settings":
		runTUI(showSettings)
	case "Watch":
		runTUI(showOutput)
	}
}
