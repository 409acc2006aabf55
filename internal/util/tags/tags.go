package tags

// Standard tag keys for Azure resources.
const (
	// KeyApp identifies which deployment a resource belongs to
	KeyApp = "acadeploy-app"

	// KeyComponent identifies the resource kind within the deployment
	KeyComponent = "acadeploy-component"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "managed-by"
)

// ManagedByAcadeploy is the value of KeyManagedBy on created resources.
const ManagedByAcadeploy = "acadeploy"

// TagBuilder provides a fluent interface for building resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a new tag builder with the app name pre-set.
func NewTagBuilder(app string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			KeyApp:       app,
			KeyManagedBy: ManagedByAcadeploy,
		},
	}
}

// WithComponent adds the component tag (e.g., "database-server").
func (tb *TagBuilder) WithComponent(component string) *TagBuilder {
	tb.tags[KeyComponent] = component
	return tb
}

// Merge adds all tags from the provided map.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		tb.tags[k] = v
	}
	return tb
}

// Build returns a copy of the tags map.
func (tb *TagBuilder) Build() map[string]string {
	result := make(map[string]string, len(tb.tags))
	for k, v := range tb.tags {
		result[k] = v
	}
	return result
}

// IsManaged reports whether a tag set marks a resource as created by acadeploy.
func IsManaged(t map[string]string) bool {
	return t[KeyManagedBy] == ManagedByAcadeploy
}
