package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithOnRelease registers fn to run once, after Release has freed the provider's GPU resources.
//
// Parameters:
//   - fn: receives the provider label
//
// Returns:
//   - BindGroupProviderOption: a function that sets the release hook
func WithOnRelease(fn func(label string)) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.onRelease = fn
	}
}
