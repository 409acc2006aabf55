package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v2"
)

// appContainerName is the name of the single container in the app template.
const appContainerName = "app"

// GetContainerApp returns the container app, or nil if it does not exist.
func (c *RealClient) GetContainerApp(ctx context.Context, resourceGroup, name string) (*ContainerApp, error) {
	resp, err := (&GetOperation[armappcontainers.ContainerAppsClientGetResponse]{
		ResourceType: "container app",
		Name:         name,
		Get: func(ctx context.Context) (armappcontainers.ContainerAppsClientGetResponse, error) {
			return c.apps.Get(ctx, resourceGroup, name, nil)
		},
	}).Execute(ctx, c.timeouts.Read)
	if err != nil || resp == nil {
		return nil, err
	}
	return appFromSDK(&resp.ContainerApp), nil
}

// CreateContainerApp creates the container app and waits for it.
func (c *RealClient) CreateContainerApp(ctx context.Context, spec ContainerAppSpec) (*ContainerApp, error) {
	resp, err := (&LongRunningOperation[armappcontainers.ContainerAppsClientCreateOrUpdateResponse]{
		ResourceType: "container app",
		Name:         spec.Name,
		Action:       "create",
		Begin: func(ctx context.Context) (*runtime.Poller[armappcontainers.ContainerAppsClientCreateOrUpdateResponse], error) {
			return c.apps.BeginCreateOrUpdate(ctx, spec.ResourceGroup, spec.Name, appToSDK(spec), nil)
		},
	}).Execute(ctx, c.timeouts.Create)
	if err != nil {
		return nil, err
	}
	return appFromSDK(&resp.ContainerApp), nil
}

// UpdateContainerApp patches the existing app to the desired spec and
// returns its state after the update.
func (c *RealClient) UpdateContainerApp(ctx context.Context, spec ContainerAppSpec) (*ContainerApp, error) {
	_, err := (&LongRunningOperation[armappcontainers.ContainerAppsClientUpdateResponse]{
		ResourceType: "container app",
		Name:         spec.Name,
		Action:       "update",
		Begin: func(ctx context.Context) (*runtime.Poller[armappcontainers.ContainerAppsClientUpdateResponse], error) {
			return c.apps.BeginUpdate(ctx, spec.ResourceGroup, spec.Name, appToSDK(spec), nil)
		},
	}).Execute(ctx, c.timeouts.Update)
	if err != nil {
		return nil, err
	}
	return c.GetContainerApp(ctx, spec.ResourceGroup, spec.Name)
}

// DeleteContainerApp deletes the container app and waits for it.
func (c *RealClient) DeleteContainerApp(ctx context.Context, resourceGroup, name string) error {
	return awaitDelete(ctx, c.timeouts.Delete, "container app", name,
		func(ctx context.Context) (*runtime.Poller[armappcontainers.ContainerAppsClientDeleteResponse], error) {
			return c.apps.BeginDelete(ctx, resourceGroup, name, nil)
		})
}

func appToSDK(spec ContainerAppSpec) armappcontainers.ContainerApp {
	secrets := make([]*armappcontainers.Secret, 0, len(spec.Secrets))
	for _, s := range spec.Secrets {
		secrets = append(secrets, &armappcontainers.Secret{
			Name:  to.Ptr(s.Name),
			Value: to.Ptr(s.Value),
		})
	}

	env := make([]*armappcontainers.EnvironmentVar, 0, len(spec.Env))
	for _, e := range spec.Env {
		v := &armappcontainers.EnvironmentVar{Name: to.Ptr(e.Name)}
		if e.SecretRef != "" {
			v.SecretRef = to.Ptr(e.SecretRef)
		} else {
			v.Value = to.Ptr(e.Value)
		}
		env = append(env, v)
	}

	configuration := &armappcontainers.Configuration{
		ActiveRevisionsMode: to.Ptr(armappcontainers.ActiveRevisionsModeSingle),
		Ingress: &armappcontainers.Ingress{
			External:   to.Ptr(true),
			TargetPort: to.Ptr(spec.TargetPort),
			Transport:  to.Ptr(armappcontainers.IngressTransportMethodAuto),
		},
		Secrets: secrets,
	}
	if spec.Registry != nil {
		configuration.Registries = []*armappcontainers.RegistryCredentials{{
			Server:            to.Ptr(spec.Registry.Server),
			Username:          to.Ptr(spec.Registry.Username),
			PasswordSecretRef: to.Ptr(spec.Registry.PasswordSecretRef),
		}}
	}

	return armappcontainers.ContainerApp{
		Location: to.Ptr(spec.Location),
		Tags:     toTags(spec.Tags),
		Properties: &armappcontainers.ContainerAppProperties{
			ManagedEnvironmentID: to.Ptr(spec.EnvironmentID),
			Configuration:        configuration,
			Template: &armappcontainers.Template{
				Containers: []*armappcontainers.Container{{
					Name:  to.Ptr(appContainerName),
					Image: to.Ptr(spec.Image),
					Env:   env,
					Resources: &armappcontainers.ContainerResources{
						CPU:    to.Ptr(spec.CPU),
						Memory: to.Ptr(spec.Memory),
					},
				}},
				Scale: &armappcontainers.Scale{
					MinReplicas: to.Ptr(spec.MinReplicas),
					MaxReplicas: to.Ptr(spec.MaxReplicas),
				},
			},
		},
	}
}

func appFromSDK(app *armappcontainers.ContainerApp) *ContainerApp {
	out := &ContainerApp{
		ID:   deref(app.ID),
		Name: deref(app.Name),
	}
	p := app.Properties
	if p == nil {
		return out
	}
	out.EnvironmentID = appEnvironmentID(p)
	if p.Configuration != nil && p.Configuration.Ingress != nil {
		out.FQDN = deref(p.Configuration.Ingress.Fqdn)
	}
	if p.Template != nil && len(p.Template.Containers) > 0 && p.Template.Containers[0] != nil {
		out.Image = deref(p.Template.Containers[0].Image)
	}
	return out
}
