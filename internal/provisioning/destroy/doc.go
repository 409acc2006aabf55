// Package destroy tears a deployment down.
//
// Resources are deleted in reverse creation order: container app, managed
// environment, database server, log workspace and, when requested and
// confirmed, the resource group. Absent resources are skipped. A failed
// delete is recorded in the Report and the walk continues, so every step is
// attempted even when an earlier one fails.
package destroy
