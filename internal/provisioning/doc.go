// Package provisioning provides shared types, interfaces, and orchestration for deploying
// the application topology.
//
// # Subpackages
//
//   - infrastructure/: one Handler per resource kind, in provisioning order
//   - image/: local image build, push and purge
//   - destroy/: resource teardown
//
// # Core Types
//
// Context carries configuration, state, cloud client, observer and metrics.
// Phase defines a deploy step with Name() and Provision() methods.
// Sequencer is the Phase that ensures each Handler in order; Execute runs
// the phases and hands a ProvisionError over to Rollback.
// State accumulates outputs of each step (workspace keys, environment id,
// database and app host names) and the per-resource Records.
package provisioning
