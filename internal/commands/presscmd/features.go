package presscmd

// FeatureGates exposes runtime feature toggles required by press command
// handlers. Callers supply closures reading from press.Config.Features so
// handlers stay decoupled from configuration while honouring flags.
type FeatureGates struct {
	ImportEnabled func() bool
	SyncEnabled   func() bool
}

func (g FeatureGates) importEnabled() bool {
	if g.ImportEnabled == nil {
		return true
	}
	return g.ImportEnabled()
}

func (g FeatureGates) syncEnabled() bool {
	if g.SyncEnabled == nil {
		return true
	}
	return g.SyncEnabled()
}
