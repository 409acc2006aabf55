package infrastructure

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/imamik/acadeploy/internal/platform/azure"
	"github.com/imamik/acadeploy/internal/platform/registry"
	"github.com/imamik/acadeploy/internal/provisioning"
	"github.com/imamik/acadeploy/internal/util/naming"
)

// ErrEncryptionKeyRequired is returned when an existing app would be
// updated with a freshly generated encryption key. The key of a running
// app must be supplied on every later run.
var ErrEncryptionKeyRequired = errors.New("container app exists: ENCRYPTION_KEY must be supplied, a generated key would make existing data unreadable")

const postgresPort = 5432

// ContainerApp ensures the application itself. An existing app is updated
// in place to the desired spec on every run.
type ContainerApp struct{}

func (h *ContainerApp) Kind() provisioning.Kind { return provisioning.KindContainerApp }

func (h *ContainerApp) ResourceName(ctx *provisioning.Context) string {
	return ctx.Config.AppName
}

func (h *ContainerApp) Exists(ctx *provisioning.Context) (bool, error) {
	app, err := ctx.Cloud.GetContainerApp(ctx, ctx.Config.ResourceGroup, ctx.Config.AppName)
	return app != nil, err
}

func (h *ContainerApp) Create(ctx *provisioning.Context) error {
	spec, err := AppSpec(ctx)
	if err != nil {
		return err
	}
	_, err = ctx.Cloud.CreateContainerApp(ctx, spec)
	return err
}

func (h *ContainerApp) Update(ctx *provisioning.Context) error {
	if ctx.Config.EncryptionKeyGenerated {
		return ErrEncryptionKeyRequired
	}
	spec, err := AppSpec(ctx)
	if err != nil {
		return err
	}
	_, err = ctx.Cloud.UpdateContainerApp(ctx, spec)
	return err
}

func (h *ContainerApp) ResolveOutputs(ctx *provisioning.Context) error {
	app, err := ctx.Cloud.GetContainerApp(ctx, ctx.Config.ResourceGroup, ctx.Config.AppName)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("container app %q not found after ensure", ctx.Config.AppName)
	}
	ctx.State.AppFQDN = app.FQDN
	return nil
}

func (h *ContainerApp) Delete(ctx *provisioning.Context) error {
	return ctx.Cloud.DeleteContainerApp(ctx, ctx.Config.ResourceGroup, ctx.Config.AppName)
}

// AppSpec builds the desired container app from the config and the
// outputs of earlier steps. Credentials are only ever passed as secrets.
func AppSpec(ctx *provisioning.Context) (azure.ContainerAppSpec, error) {
	cfg := ctx.Config
	if ctx.State.EnvironmentID == "" {
		return azure.ContainerAppSpec{}, errors.New("managed environment id is missing")
	}
	if ctx.State.DatabaseFQDN == "" {
		return azure.ContainerAppSpec{}, errors.New("database server host is missing")
	}
	if cfg.EncryptionKey == "" {
		return azure.ContainerAppSpec{}, errors.New("encryption key is missing")
	}

	secrets := []azure.Secret{
		{Name: naming.SecretDatabasePassword, Value: cfg.DatabasePassword},
		{Name: naming.SecretEncryptionKey, Value: cfg.EncryptionKey},
	}
	env := []azure.EnvVar{
		{Name: naming.EnvDatabaseHost, Value: ctx.State.DatabaseFQDN},
		{Name: naming.EnvDatabasePort, Value: strconv.Itoa(postgresPort)},
		{Name: naming.EnvDatabaseName, Value: cfg.DatabaseName},
		{Name: naming.EnvDatabaseUser, Value: cfg.DatabaseUser},
		{Name: naming.EnvDatabasePassword, SecretRef: naming.SecretDatabasePassword},
		{Name: naming.EnvDatabaseSSLMode, Value: "require"},
		{Name: naming.EnvEncryptionKey, SecretRef: naming.SecretEncryptionKey},
		{Name: naming.EnvAuthEnabled, Value: strconv.FormatBool(cfg.AuthEnabled)},
	}
	if cfg.AuthEnabled {
		secrets = append(secrets, azure.Secret{Name: naming.SecretAuthPassword, Value: cfg.AuthPassword})
		env = append(env,
			azure.EnvVar{Name: naming.EnvAuthUsername, Value: cfg.AuthUsername},
			azure.EnvVar{Name: naming.EnvAuthPassword, SecretRef: naming.SecretAuthPassword},
		)
	}

	spec := azure.ContainerAppSpec{
		ResourceGroup: cfg.ResourceGroup,
		Name:          cfg.AppName,
		Location:      cfg.Location,
		EnvironmentID: ctx.State.EnvironmentID,
		Image:         cfg.Image,
		CPU:           cfg.CPU,
		Memory:        cfg.Memory,
		MinReplicas:   int32(cfg.MinReplicas),
		MaxReplicas:   int32(cfg.MaxReplicas),
		TargetPort:    int32(cfg.TargetPort),
		Env:           env,
		Tags:          resourceTags(ctx, provisioning.KindContainerApp),
	}

	creds := registry.Credentials{Username: cfg.RegistryUsername, Password: cfg.RegistryPassword}
	if creds.IsSet() && registry.Matches(cfg.RegistryPattern, cfg.Image) {
		host, err := registry.Host(cfg.Image)
		if err != nil {
			return azure.ContainerAppSpec{}, err
		}
		secrets = append(secrets, azure.Secret{Name: naming.SecretRegistryPassword, Value: creds.Password})
		spec.Registry = &azure.RegistryCredential{
			Server:            host,
			Username:          creds.Username,
			PasswordSecretRef: naming.SecretRegistryPassword,
		}
	}
	spec.Secrets = secrets
	return spec, nil
}
