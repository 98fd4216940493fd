package commands

import (
	"github.com/spf13/cobra"

	"github.com/petal-labs/runware/core"
	"github.com/petal-labs/runware/runware"
)

func (a *App) newPhotoMakerCommand() *cobra.Command {
	var (
		flags    imageFlags
		inputs   []string
		style    string
		strength int
	)

	cmd := &cobra.Command{
		Use:   "photomaker [prompt]",
		Short: "Place a subject from reference photos into new scenes",
		Long: `Run the photoMaker task with one to four reference images.

Example:
  runware photomaker -i <uuid> -i https://example.com/face.jpg \
    --style Cinematic -p "rwre person as an astronaut"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openContainer()
			if err != nil {
				return a.handleError(err)
			}

			b := c.PhotoMaker().InputImages(inputs...)
			if cmd.Flags().Changed("style") {
				b.Style(runware.PhotoMakerStyle(style))
			}
			if cmd.Flags().Changed("strength") {
				b.Strength(strength)
			}
			applyCommon(a, b, cmd.Flags(), &flags, args)

			ctx, cancel := flags.context(cmd.Context())
			defer cancel()

			res, err := b.Run(ctx)
			if err != nil {
				return a.handleError(err)
			}
			return a.printRecords(core.NormalizeResult(res))
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "reference image (UUID, URL or data URI), repeat up to 4 times")
	cmd.Flags().StringVar(&style, "style", "", `preset style (e.g. "Cinematic", "Digital Art")`)
	cmd.Flags().IntVar(&strength, "strength", 0, "style strength (15-50)")

	return cmd
}
