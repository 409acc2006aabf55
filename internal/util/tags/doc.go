// Package tags provides consistent tagging for Azure resources.
//
// Every resource acadeploy creates carries a managed-by tag, the app it
// belongs to and its component kind, so resources can be found in the
// portal and told apart from resources created by hand.
package tags
