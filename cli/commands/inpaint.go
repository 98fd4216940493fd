package commands

import (
	"github.com/spf13/cobra"

	"github.com/petal-labs/runware/core"
)

func (a *App) newInpaintCommand() *cobra.Command {
	var (
		flags     imageFlags
		seedImage string
		maskImage string
		strength  float64
	)

	cmd := &cobra.Command{
		Use:   "inpaint [prompt]",
		Short: "Repaint the masked area of an image",
		Long: `Repaint the white area of a mask image with the imageInference task.

Seed and mask images can be image UUIDs from 'runware upload', public URLs or
data URIs.

Example:
  runware inpaint --seed-image <uuid> --mask-image <uuid> -p "a red scarf"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openContainer()
			if err != nil {
				return a.handleError(err)
			}

			b := c.Inpainting().SeedImage(seedImage).MaskImage(maskImage)
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
	cmd.Flags().StringVar(&seedImage, "seed-image", "", "image to edit (UUID, URL or data URI)")
	cmd.Flags().StringVar(&maskImage, "mask-image", "", "mask whose white area is repainted")
	cmd.Flags().Float64Var(&strength, "strength", 0, "how much the masked area may change (0-1)")

	return cmd
}
