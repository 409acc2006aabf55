package destroy

import (
	"fmt"
	"time"

	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/provisioning/infrastructure"
)

const phaseName = "teardown"

// Options configure a teardown run.
type Options struct {
	// DeleteResourceGroup deletes the group after its resources. The
	// Confirmer must approve it.
	DeleteResourceGroup bool

	Confirmer provisioning.Confirmer
}

// Provisioner walks the deployment in reverse creation order and deletes
// what it finds.
type Provisioner struct {
	opts   Options
	steps  []provisioning.Handler
	group  *infrastructure.ResourceGroup
	report *Report
}

// NewProvisioner creates a teardown provisioner.
func NewProvisioner(opts Options) *Provisioner {
	return &Provisioner{
		opts:  opts,
		steps: infrastructure.Teardown(),
		group: &infrastructure.ResourceGroup{},
	}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface. Failed steps do
// not fail the phase; they are in Report.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	report, err := p.Run(ctx)
	p.report = report
	return err
}

// Report returns the report of the last Provision call.
func (p *Provisioner) Report() *Report {
	if p.report == nil {
		return &Report{}
	}
	return p.report
}

// Run performs the teardown. It only returns an error when the resource
// group itself cannot be looked up; every other failure is collected in
// the report and the walk continues.
func (p *Provisioner) Run(ctx *provisioning.Context) (*Report, error) {
	report := &Report{}
	rg := ctx.Config.ResourceGroup

	exists, err := p.group.Exists(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to check resource group %q: %w", rg, err)
	}
	if !exists {
		ctx.Observer.Printf("[Teardown] Resource group %s does not exist, nothing to delete", rg)
		report.Add(string(provisioning.KindResourceGroup), rg, StatusAbsent, "")
		return report, nil
	}

	ctx.Observer.Printf("[Teardown] Tearing down %s in resource group %s", ctx.Config.AppName, rg)
	for i, h := range p.steps {
		p.deleteStep(ctx, report, h)
		ctx.Observer.Progress(phaseName, i+1, len(p.steps))
	}
	p.deleteGroup(ctx, report)

	return report, nil
}

func (p *Provisioner) deleteStep(ctx *provisioning.Context, report *Report, h provisioning.Handler) {
	kind := h.Kind()
	name := h.ResourceName(ctx)
	start := time.Now()

	err := func() error {
		exists, err := h.Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			provisioning.LogResourceSkipped(ctx.Observer, phaseName, kind, name, "not found")
			report.Add(string(kind), name, StatusAbsent, "")
			return nil
		}

		if g, ok := h.(provisioning.DeletionGuard); ok {
			ok, reason, err := g.CanDelete(ctx)
			if err != nil {
				return err
			}
			if !ok {
				provisioning.LogResourceSkipped(ctx.Observer, phaseName, kind, name, reason)
				report.Add(string(kind), name, StatusKept, reason)
				return nil
			}
		}

		d, ok := h.(provisioning.Deleter)
		if !ok {
			return fmt.Errorf("%s cannot be deleted", kind)
		}
		provisioning.LogResourceDeleting(ctx.Observer, phaseName, kind, name)
		if err := d.Delete(ctx); err != nil {
			return err
		}
		provisioning.LogResourceDeleted(ctx.Observer, phaseName, kind, name)
		ctx.Metrics.RecordAction(kind, "deleted")
		report.Add(string(kind), name, StatusDeleted, "")
		return nil
	}()

	ctx.Metrics.ObserveStep(kind, err, time.Since(start))
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phaseName, kind, name, err)
		report.Fail(string(kind), name, err)
	}
}

// deleteGroup issues the fire-and-forget group delete when requested and
// confirmed.
func (p *Provisioner) deleteGroup(ctx *provisioning.Context, report *Report) {
	kind := provisioning.KindResourceGroup
	rg := ctx.Config.ResourceGroup
	if !p.opts.DeleteResourceGroup {
		report.Add(string(kind), rg, StatusKept, "not requested")
		return
	}

	approved, err := confirm(p.opts.Confirmer, fmt.Sprintf("Delete resource group %s and everything left in it?", rg))
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phaseName, kind, rg, err)
		report.Fail(string(kind), rg, err)
		return
	}
	if !approved {
		provisioning.LogResourceSkipped(ctx.Observer, phaseName, kind, rg, "not confirmed")
		report.Add(string(kind), rg, StatusDeclined, "")
		return
	}

	provisioning.LogResourceDeleting(ctx.Observer, phaseName, kind, rg)
	if err := p.group.Delete(ctx); err != nil {
		provisioning.LogResourceFailed(ctx.Observer, phaseName, kind, rg, err)
		report.Fail(string(kind), rg, err)
		return
	}
	ctx.Observer.Printf("[Teardown] Deletion of resource group %s requested, it completes in the background", rg)
	ctx.Metrics.RecordAction(kind, "deleted")
	report.Add(string(kind), rg, StatusDeleted, "requested")
}

// confirm treats a missing Confirmer as a refusal.
func confirm(c provisioning.Confirmer, prompt string) (bool, error) {
	if c == nil {
		return false, nil
	}
	return c.Confirm(prompt)
}
