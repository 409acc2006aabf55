package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Handler ensures one resource kind of the topology.
type Handler interface {
	Kind() Kind

	// ResourceName is the name the resource has or will have.
	ResourceName(ctx *Context) string

	// Exists reports whether the resource is already present.
	Exists(ctx *Context) (bool, error)

	// Create creates the absent resource.
	Create(ctx *Context) error
}

// Updater is implemented by handlers whose existing resource is updated in
// place on every run instead of being reused untouched.
type Updater interface {
	Update(ctx *Context) error
}

// OutputResolver is implemented by handlers that publish values to State
// once their resource is present, whether it was created or reused.
type OutputResolver interface {
	ResolveOutputs(ctx *Context) error
}

// Deleter is implemented by handlers that teardown deletes.
type Deleter interface {
	Delete(ctx *Context) error
}

// DeletionGuard is implemented by handlers whose resource may only be
// deleted under some condition. A false result carries the reason.
type DeletionGuard interface {
	CanDelete(ctx *Context) (bool, string, error)
}

// Confirmer asks the operator to approve a destructive step.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }
