package di

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/xraph/crucible/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ServiceInfo contains diagnostic information about one registration.
type ServiceInfo struct {
	Capability   string            `json:"capability"`
	Qualifier    string            `json:"qualifier,omitempty"`
	Type         string            `json:"type,omitempty"`
	Lifetime     string            `json:"lifetime"`
	Dependencies []DepInfo         `json:"dependencies,omitempty"`
	Groups       []string          `json:"groups,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Resolved     bool              `json:"resolved"`
	Started      bool              `json:"started"`
	Healthy      bool              `json:"healthy"`
}

// DepInfo describes one declared dependency edge.
type DepInfo struct {
	Key  string `json:"key"`
	Mode string `json:"mode"`
}

// Inspect returns diagnostic information about an unqualified capability.
func (c *containerImpl) Inspect(capability string) (ServiceInfo, error) {
	return c.InspectKey(NewKey(capability))
}

// InspectKey returns diagnostic information about a key.
func (c *containerImpl) InspectKey(key Key) (ServiceInfo, error) {
	reg := c.lookup(key)
	if reg == nil {
		info := ServiceInfo{Capability: key.Capability, Qualifier: key.Qualifier}
		return info, errors.ErrUnregisteredDependency(key.String())
	}
	return c.describeRegistration(reg), nil
}

// Describe returns diagnostic information for every registration in
// registration order.
func (c *containerImpl) Describe() []ServiceInfo {
	keys := c.Keys()
	infos := make([]ServiceInfo, 0, len(keys))
	for _, key := range keys {
		if reg := c.lookup(key); reg != nil {
			infos = append(infos, c.describeRegistration(reg))
		}
	}
	return infos
}

// WriteJSON writes the Describe output as indented JSON.
func (c *containerImpl) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(c.Describe(), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (c *containerImpl) describeRegistration(reg *registration) ServiceInfo {
	reg.mu.RLock()
	instance := reg.instance
	resolved := reg.resolved
	started := reg.started
	reg.mu.RUnlock()

	typeName := ""
	if resolved && instance != nil {
		typeName = fmt.Sprintf("%T", instance)
	}

	// A resolved instance without a health check counts as healthy.
	healthy := resolved
	if checker, ok := instance.(HealthChecker); ok && resolved {
		healthy = checker.Health(context.Background()) == nil
	}

	deps := make([]DepInfo, 0, len(reg.deps))
	for _, dep := range reg.deps {
		deps = append(deps, DepInfo{Key: dep.Key.String(), Mode: dep.Mode.String()})
	}

	return ServiceInfo{
		Capability:   reg.key.Capability,
		Qualifier:    reg.key.Qualifier,
		Type:         typeName,
		Lifetime:     reg.lifetime.String(),
		Dependencies: deps,
		Groups:       reg.groups,
		Metadata:     reg.metadata,
		Resolved:     resolved,
		Started:      started,
		Healthy:      healthy,
	}
}
