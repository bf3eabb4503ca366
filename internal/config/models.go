package config

import "time"

// Registry represents the entire user configuration file.
// This stores the host-side cache of known bulbs and application
// preferences. Discovered bulbs themselves are never persisted by the
// core; this cache is what feeds reconciliation each cycle.
type Registry struct {
	Version     int              `yaml:"version"`
	Bulbs       map[string]*Bulb `yaml:"bulbs,omitempty"` // Keyed by bulb id
	Preferences *Preferences     `yaml:"preferences,omitempty"`
}

// Bulb represents cached metadata for a single known bulb.
// This is keyed by the bulb's stable id in the Registry.
type Bulb struct {
	Alias    string    `yaml:"alias,omitempty"`     // User-friendly name
	Model    string    `yaml:"model,omitempty"`     // Advertised model (color, mono, ...)
	Location string    `yaml:"location,omitempty"`  // Last known control endpoint
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ScanWindowMS     int    `yaml:"scan_window_ms"`            // Discovery reply window in milliseconds
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`        // Control-channel reply deadline in milliseconds
	TransitionMS     int    `yaml:"transition_ms"`             // Smooth power transition in milliseconds
	MulticastGroup   string `yaml:"multicast_group,omitempty"` // Override for the probe group "host:port"
}

// Default preference values, matching the wire-protocol defaults.
const (
	DefaultScanWindowMS     = 1000
	DefaultCommandTimeoutMS = 5000
	DefaultTransitionMS     = 500
)

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Bulbs:   make(map[string]*Bulb),
		Preferences: &Preferences{
			ScanWindowMS:     DefaultScanWindowMS,
			CommandTimeoutMS: DefaultCommandTimeoutMS,
			TransitionMS:     DefaultTransitionMS,
		},
	}
}

// GetBulb retrieves cached bulb metadata by id.
// Returns nil if the bulb isn't in the registry.
func (r *Registry) GetBulb(id string) *Bulb {
	return r.Bulbs[id]
}

// EnsureBulb ensures a bulb entry exists in the registry.
// If the bulb doesn't exist, creates a new entry with default values.
// Returns the entry (existing or newly created).
func (r *Registry) EnsureBulb(id string) *Bulb {
	if r.Bulbs == nil {
		r.Bulbs = make(map[string]*Bulb)
	}

	if bulb, exists := r.Bulbs[id]; exists {
		return bulb
	}

	bulb := &Bulb{}
	r.Bulbs[id] = bulb
	return bulb
}

// UpdateBulbSeen refreshes the cached location, model, and last-seen
// time for a bulb after a discovery cycle.
func (r *Registry) UpdateBulbSeen(id, location, model string) {
	bulb := r.EnsureBulb(id)
	bulb.Location = location
	bulb.Model = model
	bulb.LastSeen = time.Now()
}

// SetBulbAlias sets a user-friendly alias for a bulb.
func (r *Registry) SetBulbAlias(id, alias string) {
	bulb := r.EnsureBulb(id)
	bulb.Alias = alias
}

// ResolveAlias returns the bulb id for an alias, or the input unchanged
// if no alias matches (so ids always work directly).
func (r *Registry) ResolveAlias(name string) string {
	for id, bulb := range r.Bulbs {
		if bulb.Alias == name {
			return id
		}
	}
	return name
}

// ScanWindow returns the discovery window as a duration, falling back
// to the default when unset.
func (p *Preferences) ScanWindow() time.Duration {
	if p == nil || p.ScanWindowMS <= 0 {
		return DefaultScanWindowMS * time.Millisecond
	}
	return time.Duration(p.ScanWindowMS) * time.Millisecond
}

// CommandTimeout returns the control deadline as a duration, falling
// back to the default when unset.
func (p *Preferences) CommandTimeout() time.Duration {
	if p == nil || p.CommandTimeoutMS <= 0 {
		return DefaultCommandTimeoutMS * time.Millisecond
	}
	return time.Duration(p.CommandTimeoutMS) * time.Millisecond
}

// Transition returns the power transition as a duration, falling back
// to the default when unset.
func (p *Preferences) Transition() time.Duration {
	if p == nil || p.TransitionMS <= 0 {
		return DefaultTransitionMS * time.Millisecond
	}
	return time.Duration(p.TransitionMS) * time.Millisecond
}
