package provisioning

// Kind identifies one of the six resource kinds of the deployment
// topology.
type Kind string

// Resource kinds in provisioning order.
const (
	KindResourceGroup  Kind = "resource-group"
	KindLogWorkspace   Kind = "log-workspace"
	KindEnvironment    Kind = "environment"
	KindDatabaseServer Kind = "database-server"
	KindDatabase       Kind = "database"
	KindContainerApp   Kind = "container-app"
)

// Kinds returns all resource kinds in provisioning order.
func Kinds() []Kind {
	return []Kind{
		KindResourceGroup,
		KindLogWorkspace,
		KindEnvironment,
		KindDatabaseServer,
		KindDatabase,
		KindContainerApp,
	}
}

// Stage is the progress of a deploy run through the fixed topology.
type Stage string

const (
	StageNotStarted          Stage = "not-started"
	StageResourceGroupReady  Stage = "resource-group-ready"
	StageLogWorkspaceReady   Stage = "log-workspace-ready"
	StageHostingEnvReady     Stage = "hosting-environment-ready"
	StageDatabaseServerReady Stage = "database-server-ready"
	StageDatabaseReady       Stage = "database-ready"
	StageAppReady            Stage = "app-ready"
	StageDone                Stage = "done"
)

var stageAfter = map[Kind]Stage{
	KindResourceGroup:  StageResourceGroupReady,
	KindLogWorkspace:   StageLogWorkspaceReady,
	KindEnvironment:    StageHostingEnvReady,
	KindDatabaseServer: StageDatabaseServerReady,
	KindDatabase:       StageDatabaseReady,
	KindContainerApp:   StageAppReady,
}

// Record tracks one resource touched by a run. CreatedByRun is set only
// right after a successful create call and is the sole input to rollback.
type Record struct {
	Kind             Kind   `yaml:"kind"`
	Name             string `yaml:"name"`
	ExistedBeforeRun bool   `yaml:"existedBeforeRun"`
	CreatedByRun     bool   `yaml:"createdByRun"`
}

// State holds the shared results of provisioning steps.
// It is progressively populated as each step completes and is read by
// later steps that consume earlier outputs.
type State struct {
	Stage Stage

	// Log workspace outputs, consumed by the managed environment.
	WorkspaceCustomerID string
	WorkspaceSharedKey  string

	// Managed environment output, consumed by the container app.
	EnvironmentID string

	// Database server output, consumed by the container app.
	DatabaseFQDN string

	// Container app output.
	AppFQDN string

	Records []*Record
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{Stage: StageNotStarted}
}

// Track returns the record for kind, adding one named name if the run has
// not touched the kind yet.
func (s *State) Track(kind Kind, name string) *Record {
	if r := s.Record(kind); r != nil {
		return r
	}
	r := &Record{Kind: kind, Name: name}
	s.Records = append(s.Records, r)
	return r
}

// Record returns the record for kind, or nil.
func (s *State) Record(kind Kind) *Record {
	for _, r := range s.Records {
		if r.Kind == kind {
			return r
		}
	}
	return nil
}

// Created returns the records of resources this run created, in order.
func (s *State) Created() []*Record {
	var out []*Record
	for _, r := range s.Records {
		if r.CreatedByRun {
			out = append(out, r)
		}
	}
	return out
}

// Advance moves the stage past kind.
func (s *State) Advance(kind Kind) {
	if next, ok := stageAfter[kind]; ok {
		s.Stage = next
	}
}
