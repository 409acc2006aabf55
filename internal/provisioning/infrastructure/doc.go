// Package infrastructure provides one provisioning.Handler per resource
// kind of the deployment: resource group, Log Analytics workspace, Container
// Apps environment, PostgreSQL flexible server, database and container app.
//
// Deployment returns them in provisioning order and Teardown in deletion
// order. All resources are tagged for app association.
package infrastructure
