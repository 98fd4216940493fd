// Package runware is a client for the Runware image generation API.
//
// A [Client] carries the API key and transport and hands out one builder per
// capability:
//
//	c := runware.New(os.Getenv("RUNWARE_API_KEY"))
//
//	res, err := c.ImageInference().
//	    PositivePrompt("a lighthouse at dusk").
//	    Width(768).
//	    Height(512).
//	    OutputFormat(core.OutputFormatWEBP).
//	    Run(ctx)
//
//	uuid, err := c.ImageUpload().UploadFromLocalPath("face.jpg").Run(ctx)
//
//	res, err = c.PhotoMaker().
//	    InputImages(uuid).
//	    Style(runware.PhotoMakerStyleCinematic).
//	    PositivePrompt("rwre man as an astronaut").
//	    Run(ctx)
//
// Builders are NOT safe for concurrent use; the Client is.
//
// [Service] adds the loose-parameter entry point used by applications:
//
//	svc := runware.NewService(c)
//	images, err := svc.ImageInferenceMap(ctx, map[string]any{
//	    "positivePrompt": "cat",
//	    "width":          "512",
//	    "outputFormat":   "jpeg",
//	})
//
// # Transport
//
// Every request goes through the [Doer] set with [WithHTTPClient], which
// defaults to http.DefaultClient. Point [WithBaseURL] at an httptest server to
// exercise the client without network access.
package runware
