// Package naming provides consistent names for deployed Azure resources
// and the secrets and settings the container app is created with.
//
// Names that are not configured explicitly are derived from the
// environment or app name, so a rerun with the same inputs targets the
// same resources.
package naming
