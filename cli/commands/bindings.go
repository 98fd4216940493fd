package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/runware/container"
)

func (a *App) newBindingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "List the container binding names",
		Long:  `List the names registered in the binding container. No API key is needed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.newContainer(container.Config{BaseURL: a.cfg.Runware.BaseURL})
			names := c.Names()

			if a.jsonOutput {
				return json.NewEncoder(a.stdout).Encode(names)
			}
			for _, name := range names {
				fmt.Fprintln(a.stdout, name)
			}
			return nil
		},
	}
}
