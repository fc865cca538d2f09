/*
Package runner orchestrates a single rewrite run against one target file.

	+-------------+
	|   Runner    |
	| (Pipeline)  |
	+------+------+
	       |
	+------+------+     +------------+
	| BackupGuard | --> |  RuleSet   |
	| (Snapshot)  |     | (Rewrite)  |
	+-------------+     +------------+

🎯 Purpose:
- Drives the linear pipeline: load, backup, transform, save, report
- Guarantees a recoverable backup exists before the target is mutated
- Persists the result atomically (write-to-temp-then-rename)

🔄 Flow:
1. Load the target file fully into memory (Idle -> Loaded)
2. Snapshot it via the backup guard (Loaded -> BackedUp)
3. Apply every rule in order against the buffer (BackedUp -> Transforming)
4. Rename the transformed temp file over the target (Transforming -> Saved)

Any failure moves the run to Aborted. The target is overwritten only at the
rename, after all rules have completed, so content loss on failure is limited
to nothing: the original is either intact or fully replaced, and the backup
always holds the pre-run bytes.

📝 Design Philosophy:
The whole run is one synchronous pipeline with no I/O interleaving. The only
durable writes are the backup and the final rename. At most one run per
target at a time; concurrent runs against the same file are undefined.
*/
package runner
