// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for resolved test configurations
//   - DeployFixture: FakeCloud plus a provisioning context for end-to-end runs
//   - RecordingObserver: Observer that keeps every event for assertions
//   - MockCompiler: testify mock of the image build step
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    With("AUTH_ENABLED", "true").
//	    With("AUTH_PASSWORD", "secret").
//	    Build(t)
//
//	fx := testing.NewDeployFixture(t, cfg)
//	_, outcome, err := fx.Deploy(infrastructure.Deployment()...)
package testing
