// Package core holds the types shared by the Runware SDK, the binding container
// and the CLI.
//
// # Results
//
// Executing an image task yields a [Result]. With the direct-URL output type and a
// single image the API answer collapses to a [URLResult]; every other answer is a
// [Records] list carrying the raw task objects. [NormalizeResult] flattens both
// into a list of [Record] values, each with at least an "imageURL" key when the
// task produced a URL:
//
//	res, err := inference.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, rec := range core.NormalizeResult(res) {
//	    fmt.Println(rec.ImageURL())
//	}
//
// # Output formats
//
// [ParseOutputFormat] is case-insensitive and total: "jpeg" and "JPG" select
// [OutputFormatJPG], "webp" selects [OutputFormatWEBP], and anything else,
// including the empty string, falls back to [OutputFormatPNG]. Use
// [LookupOutputFormat] when the fallback should be detected instead of applied.
//
// # Error Handling
//
// Failures returned by the API are reported as *[ProviderError] wrapping one of
// the sentinel errors:
//   - [ErrUnauthorized]: Invalid or missing API key
//   - [ErrRateLimited]: Rate limit exceeded
//   - [ErrBadRequest]: The API rejected the task parameters
//   - [ErrServer]: Server error (5xx)
//   - [ErrNetwork]: Network connectivity issues
//   - [ErrDecode]: Response parsing failed
//
// Client-side validation failures wrap [ErrInvalidInput]. Use errors.Is to check:
//
//	if errors.Is(err, core.ErrRateLimited) {
//	    // back off
//	}
//
// # Telemetry
//
// Implement [TelemetryHook] to observe each HTTP round trip. Events carry the task
// type, model and timing, never prompts or credentials.
package core
