/*
Package operation runs a rename over a source tree.

	+-------------+
	|   Walker    |
	|  (Discover) |
	+------+------+
	       |
	+------+------+
	|  Rewriter   |
	| (Transform) |
	+------+------+
	       |
	+------+------+
	|  Reporter   |
	|  (Console)  |
	+-------------+

🎯 Purpose:
- Feeds every candidate file from the walker to the rewriter
- Reports each result as soon as it is known
- Aggregates results into a status.Summary for the caller

⚡ Key Responsibilities:
- Continue past per-file failures
- Return an error only when the root cannot be walked
- Optionally rewrite several files at once with a bounded pool

🔍 Example:

	runner, err := operation.NewRunner(operation.Options{
		Root:     ".",
		Walker:   walker,
		Rewriter: rewriter,
		Reporter: console,
	})
	if err != nil {
		return err
	}
	summary, err := runner.Run(ctx)
*/
package operation
