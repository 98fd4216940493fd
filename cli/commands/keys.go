package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/runware/cli/config"
	"github.com/petal-labs/runware/cli/keystore"
)

func (a *App) newKeysCommand() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
		Long: `Manage Runware API keys. Keys are stored encrypted in ~/.runware/keys.enc.

Set RUNWARE_KEYSTORE_PASSPHRASE to protect the store with a passphrase.
The entry named by runware.api_key_ref in the config (default "runware") is
used when no other key source is set.`,
	}

	keysCmd.AddCommand(&cobra.Command{
		Use:   "set [name]",
		Short: "Store an API key",
		Long:  `Store an API key under name (default "runware"). The key is prompted without echo.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleError(a.runKeysSet(keyName(args)))
		},
	})
	keysCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored API keys",
		Long:  `List all stored key names. Key values are never shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleError(a.runKeysList())
		},
	})
	keysCmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.handleError(a.runKeysDelete(keyName(args)))
		},
	})

	return keysCmd
}

func keyName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultAPIKeyRef
}

func (a *App) runKeysSet(name string) error {
	fmt.Fprintf(a.stdout, "Enter API key for %s: ", name)

	apiKey, err := a.readSecret()
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}
	if apiKey == "" {
		return exitWithCode(ExitValidation, errors.New("API key cannot be empty"))
	}

	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	if err := ks.Set(name, apiKey); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key for %s stored successfully.\n", name)
	return nil
}

// readSecret reads a line from stdin, without echo when stdin is a terminal.
func (a *App) readSecret() (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stdout) // Newline after hidden input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	// Fallback for non-terminal (e.g., piped input)
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) runKeysList() error {
	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	names, err := ks.List()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No API keys stored.")
		return nil
	}

	fmt.Fprintln(a.stdout, "Stored keys:")
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  - %s\n", name)
	}
	return nil
}

func (a *App) runKeysDelete(name string) error {
	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	if err := ks.Delete(name); err != nil {
		var notFound *keystore.ErrKeyNotFound
		if errors.As(err, &notFound) {
			return exitWithCode(ExitValidation, fmt.Errorf("no key stored for %s", name))
		}
		return fmt.Errorf("failed to delete key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key for %s deleted.\n", name)
	return nil
}
