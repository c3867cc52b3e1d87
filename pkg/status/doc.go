/*
Package status tracks per-file rename outcomes and reports progress.

	            +-------------+
	            |   Status    |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Entries  |           | Console |
	| (Tracking)|           | (Rows)  |
	+-----------+           +---------+

🎯 Purpose:
- Records every file's plan entry as it moves through scan and rename
- Tallies outcomes into summary counts
- Renders a colored row per file on the console
- Mirrors each status change into the structured log

🔄 Flow:
1. Operations call Track for every entry they touch
2. The manager keeps entries keyed by original name, in insertion order
3. Each Track renders a console row and emits a log event
4. Counts summarizes the final state for the closing report

⚡ Key Responsibilities:
- Entry bookkeeping, safe under concurrent renames
- Progress tracking (StartOperation / UpdateProgress / FinishOperation)
- Console rendering of the scan and rename tables

🔍 Example:

	mgr := status.NewManager(os.Stdout)

	mgr.StartOperation(ctx, len(pending))
	mgr.Track(ctx, entry)
	mgr.UpdateProgress(ctx)
	mgr.FinishOperation(ctx)

	counts := mgr.Counts()
*/
package status
