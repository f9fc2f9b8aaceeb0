// Package discovery supplies the ordered list of deployed ESS/WFE instances
// the readiness sweep operates on.
//
// On a production host the list comes from the IIS enumerator; everywhere
// else (and in tests) it comes from a YAML inventory file. Both satisfy the
// Provider interface.
package discovery

import "strings"

// InstanceKind distinguishes the self-service application from its workflow
// engine companion.
type InstanceKind string

const (
	// KindESS is the self-service web application.
	KindESS InstanceKind = "ESS"
	// KindWFE is the workflow engine instance.
	KindWFE InstanceKind = "WFE"
)

// Instance is the identity snapshot of one deployed application.
// It is immutable once produced by discovery.
type Instance struct {
	SiteName        string `yaml:"site_name" json:"site_name"`
	ApplicationPath string `yaml:"application_path" json:"application_path"`
	PhysicalPath    string `yaml:"physical_path" json:"physical_path"`
	ApplicationPool string `yaml:"application_pool" json:"application_pool"`
	DatabaseServer  string `yaml:"database_server" json:"database_server"`
	DatabaseName    string `yaml:"database_name" json:"database_name"`
	TenantID        string `yaml:"tenant_id" json:"tenant_id"`

	// Version is the installed product version when discovery can read it.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// ID returns the identifier used to scope validation records to this
// instance.
func (i Instance) ID() string {
	if i.SiteName == "" {
		return i.ApplicationPath
	}
	return i.SiteName + i.normalizedPath()
}

// Kind infers whether the instance is the ESS application or a WFE instance
// from its application path and site name.
func (i Instance) Kind() InstanceKind {
	probe := strings.ToLower(i.ApplicationPath + " " + i.SiteName)
	if strings.Contains(probe, "wfe") || strings.Contains(probe, "workflow") {
		return KindWFE
	}
	return KindESS
}

func (i Instance) normalizedPath() string {
	p := strings.Trim(i.ApplicationPath, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
