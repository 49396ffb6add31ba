package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/nibble/internal/services"
)

// PINResetter replaces the PIN without knowing the current one.
type PINResetter interface {
	ResetPIN(next string) (services.PINResult, error)
}

// Translator returns the message for key in the command's language.
type Translator func(key string) string

// RunResetPINCommand prompts twice for a new PIN and stores it. The data itself is untouched.
func RunResetPINCommand(auth PINResetter, prompt PINPrompt, translate Translator, out io.Writer) error {
	pin, err := prompt.ReadPIN(translate("cli.pin_prompt"))
	if err != nil {
		return fmt.Errorf("read PIN: %w", err)
	}
	confirmation, err := prompt.ReadPIN(translate("cli.pin_confirm"))
	if err != nil {
		return fmt.Errorf("read PIN confirmation: %w", err)
	}
	if pin != confirmation {
		return errors.New(translate("cli.pin_mismatch"))
	}

	result, err := auth.ResetPIN(pin)
	if err != nil {
		return fmt.Errorf("reset PIN: %w", err)
	}
	if !result.Success {
		return errors.New(result.Error)
	}

	fmt.Fprintln(out, translate("cli.pin_reset"))
	return nil
}
