package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/petal-labs/runware/runware"
)

func (a *App) newUploadCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "upload <url|path|data-uri>",
		Short: "Upload an image and print its UUID",
		Long: `Upload an image for use as a seed, mask or reference in other tasks.

The argument may be a public http(s) URL, a data URI or a local file path.

Example:
  runware upload ./face.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openContainer()
			if err != nil {
				return a.handleError(err)
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			id, err := uploadSource(c.ImageUpload(), args[0]).Run(ctx)
			if err != nil {
				return a.handleError(err)
			}

			if a.jsonOutput {
				return json.NewEncoder(a.stdout).Encode(map[string]string{"imageUUID": id})
			}
			fmt.Fprintln(a.stdout, id)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (e.g. 60s)")
	return cmd
}

// uploadSource picks the upload mode from the shape of src.
func uploadSource(b *runware.ImageUpload, src string) *runware.ImageUpload {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return b.UploadFromURL(src)
	case strings.HasPrefix(src, "data:"):
		return b.UploadFromBase64(src)
	default:
		return b.UploadFromLocalPath(src)
	}
}
