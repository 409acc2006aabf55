package azure

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FakeCloud is an in-memory CloudManager. It records every call and can
// be told to fail specific methods. Deletes take effect immediately,
// including the Begin variants.
type FakeCloud struct {
	mu sync.Mutex

	Groups        map[string]map[string]string // name -> tags
	Workspaces    map[string]*Workspace        // rg/name
	Environments  map[string]*Environment      // rg/name
	Servers       map[string]*DatabaseServer   // rg/name
	FirewallRules map[string]FirewallRuleSpec  // rg/server/name
	Databases     map[string]bool              // rg/server/name
	Apps          map[string]*ContainerApp     // rg/name
	AppSpecs      map[string]ContainerAppSpec  // rg/name, last spec applied

	calls  []string
	errors map[string]error
}

var _ CloudManager = (*FakeCloud)(nil)

// NewFakeCloud returns an empty fake subscription.
func NewFakeCloud() *FakeCloud {
	return &FakeCloud{
		Groups:        make(map[string]map[string]string),
		Workspaces:    make(map[string]*Workspace),
		Environments:  make(map[string]*Environment),
		Servers:       make(map[string]*DatabaseServer),
		FirewallRules: make(map[string]FirewallRuleSpec),
		Databases:     make(map[string]bool),
		Apps:          make(map[string]*ContainerApp),
		AppSpecs:      make(map[string]ContainerAppSpec),
		errors:        make(map[string]error),
	}
}

// FailOn makes every call to method return err.
func (f *FakeCloud) FailOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[method] = err
}

// Calls returns the recorded calls as "Method name" strings in call order.
func (f *FakeCloud) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how often method was called.
func (f *FakeCloud) CallCount(method string) int {
	return f.countMatching(func(m string) bool { return m == method })
}

// CreateCalls returns the number of Create* calls.
func (f *FakeCloud) CreateCalls() int {
	return f.countMatching(func(m string) bool { return strings.HasPrefix(m, "Create") })
}

// UpdateCalls returns the number of Update* calls.
func (f *FakeCloud) UpdateCalls() int {
	return f.countMatching(func(m string) bool { return strings.HasPrefix(m, "Update") })
}

// DeleteCalls returns the number of Delete* and BeginDelete* calls.
func (f *FakeCloud) DeleteCalls() int {
	return f.countMatching(func(m string) bool {
		return strings.HasPrefix(m, "Delete") || strings.HasPrefix(m, "BeginDelete")
	})
}

// ResetCalls clears the call log, keeping resources and injected errors.
func (f *FakeCloud) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeCloud) countMatching(match func(method string) bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		method, _, _ := strings.Cut(c, " ")
		if match(method) {
			n++
		}
	}
	return n
}

// record logs the call and returns the injected error for method, if any.
// Callers hold f.mu.
func (f *FakeCloud) record(method, name string) error {
	f.calls = append(f.calls, method+" "+name)
	return f.errors[method]
}

func (f *FakeCloud) id(kind, rg, name string) string {
	return fmt.Sprintf("/subscriptions/fake/resourceGroups/%s/providers/%s/%s", rg, kind, name)
}

func key(parts ...string) string {
	return strings.Join(parts, "/")
}

func deletePrefix[V any](m map[string]V, prefix string) {
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			delete(m, k)
		}
	}
}

func (f *FakeCloud) ResourceGroupExists(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ResourceGroupExists", name); err != nil {
		return false, err
	}
	_, ok := f.Groups[name]
	return ok, nil
}

func (f *FakeCloud) CreateResourceGroup(_ context.Context, name, _ string, tags map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateResourceGroup", name); err != nil {
		return err
	}
	f.Groups[name] = tags
	return nil
}

func (f *FakeCloud) BeginDeleteResourceGroup(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BeginDeleteResourceGroup", name); err != nil {
		return err
	}
	delete(f.Groups, name)
	prefix := name + "/"
	deletePrefix(f.Workspaces, prefix)
	deletePrefix(f.Environments, prefix)
	deletePrefix(f.Servers, prefix)
	deletePrefix(f.FirewallRules, prefix)
	deletePrefix(f.Databases, prefix)
	deletePrefix(f.Apps, prefix)
	deletePrefix(f.AppSpecs, prefix)
	return nil
}

func (f *FakeCloud) GetWorkspace(_ context.Context, rg, name string) (*Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetWorkspace", name); err != nil {
		return nil, err
	}
	if w, ok := f.Workspaces[key(rg, name)]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (f *FakeCloud) CreateWorkspace(_ context.Context, rg, name, _ string, _ map[string]string) (*Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateWorkspace", name); err != nil {
		return nil, err
	}
	if _, ok := f.Groups[rg]; !ok {
		return nil, fmt.Errorf("resource group %q not found", rg)
	}
	w := &Workspace{
		ID:         f.id("Microsoft.OperationalInsights/workspaces", rg, name),
		Name:       name,
		CustomerID: fmt.Sprintf("customer-%s", name),
	}
	f.Workspaces[key(rg, name)] = w
	cp := *w
	return &cp, nil
}

func (f *FakeCloud) GetWorkspaceSharedKey(_ context.Context, rg, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetWorkspaceSharedKey", name); err != nil {
		return "", err
	}
	if _, ok := f.Workspaces[key(rg, name)]; !ok {
		return "", fmt.Errorf("log workspace %q not found", name)
	}
	return "shared-key-" + name, nil
}

func (f *FakeCloud) DeleteWorkspace(_ context.Context, rg, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteWorkspace", name); err != nil {
		return err
	}
	delete(f.Workspaces, key(rg, name))
	return nil
}

func (f *FakeCloud) GetEnvironment(_ context.Context, rg, name string) (*Environment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetEnvironment", name); err != nil {
		return nil, err
	}
	if e, ok := f.Environments[key(rg, name)]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *FakeCloud) CreateEnvironment(_ context.Context, spec EnvironmentSpec) (*Environment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateEnvironment", spec.Name); err != nil {
		return nil, err
	}
	if spec.WorkspaceCustomerID == "" || spec.WorkspaceSharedKey == "" {
		return nil, fmt.Errorf("managed environment %q needs workspace credentials", spec.Name)
	}
	e := &Environment{
		ID:   f.id("Microsoft.App/managedEnvironments", spec.ResourceGroup, spec.Name),
		Name: spec.Name,
	}
	f.Environments[key(spec.ResourceGroup, spec.Name)] = e
	cp := *e
	return &cp, nil
}

func (f *FakeCloud) DeleteEnvironment(_ context.Context, rg, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteEnvironment", name); err != nil {
		return err
	}
	delete(f.Environments, key(rg, name))
	return nil
}

func (f *FakeCloud) ListEnvironmentApps(_ context.Context, rg, environmentID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListEnvironmentApps", rg); err != nil {
		return nil, err
	}
	var names []string
	for k, app := range f.Apps {
		if strings.HasPrefix(k, rg+"/") && app.EnvironmentID == environmentID {
			names = append(names, app.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *FakeCloud) GetDatabaseServer(_ context.Context, rg, name string) (*DatabaseServer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetDatabaseServer", name); err != nil {
		return nil, err
	}
	if s, ok := f.Servers[key(rg, name)]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *FakeCloud) CreateDatabaseServer(_ context.Context, spec DatabaseServerSpec) (*DatabaseServer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateDatabaseServer", spec.Name); err != nil {
		return nil, err
	}
	if spec.AdminPassword == "" {
		return nil, fmt.Errorf("database server %q needs an administrator password", spec.Name)
	}
	s := &DatabaseServer{
		ID:   f.id("Microsoft.DBforPostgreSQL/flexibleServers", spec.ResourceGroup, spec.Name),
		Name: spec.Name,
		FQDN: spec.Name + ".postgres.database.azure.com",
	}
	f.Servers[key(spec.ResourceGroup, spec.Name)] = s
	cp := *s
	return &cp, nil
}

func (f *FakeCloud) BeginDeleteDatabaseServer(_ context.Context, rg, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BeginDeleteDatabaseServer", name); err != nil {
		return err
	}
	delete(f.Servers, key(rg, name))
	prefix := key(rg, name) + "/"
	deletePrefix(f.FirewallRules, prefix)
	deletePrefix(f.Databases, prefix)
	return nil
}

func (f *FakeCloud) FirewallRuleExists(_ context.Context, rg, server, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("FirewallRuleExists", name); err != nil {
		return false, err
	}
	_, ok := f.FirewallRules[key(rg, server, name)]
	return ok, nil
}

func (f *FakeCloud) CreateFirewallRule(_ context.Context, rg, server string, rule FirewallRuleSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateFirewallRule", rule.Name); err != nil {
		return err
	}
	if _, ok := f.Servers[key(rg, server)]; !ok {
		return fmt.Errorf("database server %q not found", server)
	}
	f.FirewallRules[key(rg, server, rule.Name)] = rule
	return nil
}

func (f *FakeCloud) DatabaseExists(_ context.Context, rg, server, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DatabaseExists", name); err != nil {
		return false, err
	}
	return f.Databases[key(rg, server, name)], nil
}

func (f *FakeCloud) CreateDatabase(_ context.Context, rg, server, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateDatabase", name); err != nil {
		return err
	}
	if _, ok := f.Servers[key(rg, server)]; !ok {
		return fmt.Errorf("database server %q not found", server)
	}
	f.Databases[key(rg, server, name)] = true
	return nil
}

func (f *FakeCloud) GetContainerApp(_ context.Context, rg, name string) (*ContainerApp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetContainerApp", name); err != nil {
		return nil, err
	}
	if a, ok := f.Apps[key(rg, name)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *FakeCloud) CreateContainerApp(_ context.Context, spec ContainerAppSpec) (*ContainerApp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateContainerApp", spec.Name); err != nil {
		return nil, err
	}
	a := &ContainerApp{
		ID:            f.id("Microsoft.App/containerApps", spec.ResourceGroup, spec.Name),
		Name:          spec.Name,
		EnvironmentID: spec.EnvironmentID,
		Image:         spec.Image,
		FQDN:          spec.Name + ".fake.azurecontainerapps.io",
	}
	f.Apps[key(spec.ResourceGroup, spec.Name)] = a
	f.AppSpecs[key(spec.ResourceGroup, spec.Name)] = spec
	cp := *a
	return &cp, nil
}

func (f *FakeCloud) UpdateContainerApp(_ context.Context, spec ContainerAppSpec) (*ContainerApp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateContainerApp", spec.Name); err != nil {
		return nil, err
	}
	a, ok := f.Apps[key(spec.ResourceGroup, spec.Name)]
	if !ok {
		return nil, fmt.Errorf("container app %q not found", spec.Name)
	}
	a.Image = spec.Image
	a.EnvironmentID = spec.EnvironmentID
	f.AppSpecs[key(spec.ResourceGroup, spec.Name)] = spec
	cp := *a
	return &cp, nil
}

func (f *FakeCloud) DeleteContainerApp(_ context.Context, rg, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteContainerApp", name); err != nil {
		return err
	}
	delete(f.Apps, key(rg, name))
	delete(f.AppSpecs, key(rg, name))
	return nil
}
